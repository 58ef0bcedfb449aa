package unit

import (
	"time"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/segment"
)

// segCtl exposes fields backed by one segment.
type segCtl struct {
	entry    segment.Entry
	fields   []field
	measured bool
}

type fieldRef struct {
	ctl   *segCtl
	field field
}

// segModel is a ctl.Model over register segments. Writes go through
// UpdateSegment so only changed quadlets reach the device.
type segModel struct {
	med      *segment.Mediator
	registry *segment.Registry
	timeout  time.Duration
	ctls     []*segCtl
	fields   map[ctl.ElemID]fieldRef
}

// newSegModel builds a model over ctls. The registry holds exactly the
// segments the controls use, so notifications for other segments are
// ignored.
func newSegModel(name string, med *segment.Mediator, timeout time.Duration, ctls ...*segCtl) (*segModel, error) {
	var entries []segment.Entry
	seen := make(map[segment.Entry]bool)
	for _, c := range ctls {
		if !seen[c.entry] {
			seen[c.entry] = true
			entries = append(entries, c.entry)
		}
	}
	registry, err := segment.NewRegistry(name, entries...)
	if err != nil {
		return nil, err
	}

	m := &segModel{
		med:      med,
		registry: registry,
		timeout:  timeout,
		ctls:     ctls,
		fields:   make(map[ctl.ElemID]fieldRef),
	}
	for _, c := range ctls {
		for _, f := range c.fields {
			m.fields[f.info.ID] = fieldRef{ctl: c, field: f}
		}
	}
	return m, nil
}

// Registry returns the segments the model reads and writes.
func (m *segModel) Registry() *segment.Registry {
	return m.registry
}

// Load implements ctl.Model.
func (m *segModel) Load(card ctl.Card) error {
	if err := m.med.ReadAll(m.registry, m.timeout); err != nil {
		return err
	}
	for _, c := range m.ctls {
		for _, f := range c.fields {
			if err := f.register(card); err != nil {
				return err
			}
		}
	}
	return nil
}

// Read implements ctl.Model.
func (m *segModel) Read(id ctl.ElemID, v *ctl.ElemValue) (bool, error) {
	ref, ok := m.fields[id]
	if !ok {
		return false, nil
	}
	ref.field.read(v)
	return true, nil
}

// Write implements ctl.Model. On failure the segment is re-read so the data
// matches the device again; when the re-read fails too, the data falls back
// to the cached image of what was written.
func (m *segModel) Write(id ctl.ElemID, _, new ctl.ElemValue) (bool, error) {
	ref, ok := m.fields[id]
	if !ok || ref.field.write == nil {
		return false, nil
	}
	ref.field.write(new)
	entry := ref.ctl.entry
	if err := m.med.UpdateSegment(entry, m.timeout); err != nil {
		if m.med.ReadSegment(entry, m.timeout) != nil {
			_ = entry.Parse(entry.Raw())
		}
		return false, err
	}
	return true, nil
}

// NotifiedElems implements ctl.Notifier.
func (m *segModel) NotifiedElems() []ctl.ElemID {
	var ids []ctl.ElemID
	for _, c := range m.ctls {
		if c.measured || !c.entry.Descriptor().Notifiable() {
			continue
		}
		for _, f := range c.fields {
			ids = append(ids, f.info.ID)
		}
	}
	return ids
}

// ParseNotification implements ctl.Notifier.
func (m *segModel) ParseNotification(mask uint32) error {
	_, err := m.med.DispatchNotification(m.registry, mask, m.timeout)
	return err
}

// MeasuredElems implements ctl.Measurer.
func (m *segModel) MeasuredElems() []ctl.ElemID {
	var ids []ctl.ElemID
	for _, c := range m.ctls {
		if !c.measured {
			continue
		}
		for _, f := range c.fields {
			ids = append(ids, f.info.ID)
		}
	}
	return ids
}

// MeasureStates implements ctl.Measurer.
func (m *segModel) MeasureStates() error {
	var entries []segment.Entry
	for _, c := range m.ctls {
		if c.measured {
			entries = append(entries, c.entry)
		}
	}
	return m.med.ReadEntries(entries, m.timeout)
}
