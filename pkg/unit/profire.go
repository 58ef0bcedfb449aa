package unit

import (
	"time"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/maudio"
)

var (
	knobAssignID = mixer("knob-assign-targets")
	optIfaceBID  = mixer("optical-iface-b-mode")
	standaloneID = mixer("standalone-converter-mode")
)

// profireModel controls the application section of M-Audio ProFire units.
// The device sends no notification for these registers; the cached values
// are the last ones read or written.
type profireModel struct {
	proto   *maudio.Protocol
	timeout time.Duration
	hasOpt  bool

	knobs [maudio.KnobCount]bool
	optB  maudio.OptIfaceMode
	conv  maudio.StandaloneConverterMode
}

func newProFire(d Deps, hasOpt bool) *profireModel {
	return &profireModel{
		proto:   maudio.New(d.Transport, d.Base),
		timeout: d.timeout(),
		hasOpt:  hasOpt,
	}
}

func (m *profireModel) Load(card ctl.Card) error {
	var err error
	if m.knobs, err = m.proto.ReadKnobAssign(m.timeout); err != nil {
		return err
	}
	if err := card.AddBoolElems(knobAssignID, maudio.KnobCount, true); err != nil {
		return err
	}

	if m.hasOpt {
		if m.optB, err = m.proto.ReadOptIfaceBMode(m.timeout); err != nil {
			return err
		}
		if err := card.AddEnumElems(optIfaceBID, 1, labelsOf(maudio.OptIfaceModes), true); err != nil {
			return err
		}
	}

	if m.conv, err = m.proto.ReadStandaloneConverterMode(m.timeout); err != nil {
		return err
	}
	return card.AddEnumElems(standaloneID, 1, labelsOf(maudio.StandaloneConverterModes), true)
}

func (m *profireModel) Read(id ctl.ElemID, v *ctl.ElemValue) (bool, error) {
	switch {
	case id == knobAssignID:
		v.Bools = append([]bool(nil), m.knobs[:]...)
	case id == optIfaceBID && m.hasOpt:
		v.Enums = []uint32{uint32(indexOf(maudio.OptIfaceModes, m.optB))}
	case id == standaloneID:
		v.Enums = []uint32{uint32(indexOf(maudio.StandaloneConverterModes, m.conv))}
	default:
		return false, nil
	}
	return true, nil
}

func (m *profireModel) Write(id ctl.ElemID, _, new ctl.ElemValue) (bool, error) {
	switch {
	case id == knobAssignID:
		var knobs [maudio.KnobCount]bool
		copy(knobs[:], new.Bools)
		if err := m.proto.WriteKnobAssign(knobs, m.timeout); err != nil {
			return false, err
		}
		m.knobs = knobs
	case id == optIfaceBID && m.hasOpt:
		mode := maudio.OptIfaceModes[new.Enums[0]]
		if err := m.proto.WriteOptIfaceBMode(mode, m.timeout); err != nil {
			return false, err
		}
		m.optB = mode
	case id == standaloneID:
		mode := maudio.StandaloneConverterModes[new.Enums[0]]
		if err := m.proto.WriteStandaloneConverterMode(mode, m.timeout); err != nil {
			return false, err
		}
		m.conv = mode
	default:
		return false, nil
	}
	return true, nil
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}
