package ctl

import (
	"fmt"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/log"
)

// Model is the control logic of one device model.
//
// Read and Write report false when the element does not belong to the
// model; Dispatcher then treats the element as unknown.
type Model interface {
	// Load reads the initial device state and registers elements on card.
	Load(card Card) error

	// Read fills v with the cached value of id.
	Read(id ElemID, v *ElemValue) (bool, error)

	// Write applies new to the device. old is the value the card held.
	Write(id ElemID, old, new ElemValue) (bool, error)
}

// Notifier is implemented by models whose state changes out of band.
type Notifier interface {
	// NotifiedElems lists the elements that may change on a notification.
	NotifiedElems() []ElemID

	// ParseNotification refreshes the state addressed by mask.
	ParseNotification(mask uint32) error
}

// Measurer is implemented by models with polled state such as meters.
type Measurer interface {
	// MeasuredElems lists the elements refreshed by MeasureStates.
	MeasuredElems() []ElemID

	// MeasureStates polls the device.
	MeasureStates() error
}

// Dispatcher routes element operations to a Model and keeps a MemoryCard
// in sync with it. It is not safe for concurrent use.
type Dispatcher struct {
	model   Model
	card    *MemoryCard
	tracer  log.Logger
	session string
	name    string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTracer records element changes to tracer.
func WithTracer(tracer log.Logger, session, model string) DispatcherOption {
	return func(d *Dispatcher) {
		d.tracer = tracer
		d.session = session
		d.name = model
	}
}

// NewDispatcher binds model to card.
func NewDispatcher(model Model, card *MemoryCard, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{model: model, card: card, tracer: log.NoopLogger{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Card returns the card the dispatcher keeps in sync.
func (d *Dispatcher) Card() *MemoryCard {
	return d.card
}

// Load loads the model and publishes the initial value of every element.
func (d *Dispatcher) Load() error {
	if err := d.model.Load(d.card); err != nil {
		return err
	}
	for _, info := range d.card.Elements() {
		if _, err := d.refresh(info.ID); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the current value of id.
func (d *Dispatcher) Get(id ElemID) (ElemValue, error) {
	return d.card.Value(id)
}

// Set validates v, writes it through the model and stores it on success.
func (d *Dispatcher) Set(id ElemID, v ElemValue) error {
	info, err := d.card.Info(id)
	if err != nil {
		return err
	}
	if !info.Writable {
		return fmt.Errorf("%w: %s", ErrElemNotWritable, id)
	}
	if err := info.Validate(v); err != nil {
		return err
	}

	old, err := d.card.Value(id)
	if err != nil {
		return err
	}
	handled, err := d.model.Write(id, old, v)
	if err != nil {
		// Part of the value may have reached the device.
		_, _ = d.refresh(id)
		return fmt.Errorf("write %s: %w", id, err)
	}
	if !handled {
		return fmt.Errorf("%w: %s", ErrElemNotFound, id)
	}
	if err := d.card.Store(id, v); err != nil {
		return err
	}
	d.trace(info, v, log.DirectionOut)
	return nil
}

// Notify lets the model handle a notification mask and returns the
// notified elements whose value changed. Models that do not implement
// Notifier ignore notifications.
func (d *Dispatcher) Notify(mask uint32) ([]ElemID, error) {
	n, ok := d.model.(Notifier)
	if !ok {
		return nil, nil
	}
	if err := n.ParseNotification(mask); err != nil {
		return nil, err
	}
	return d.refreshAll(n.NotifiedElems())
}

// Measure polls the model and returns the measured elements whose value
// changed. Models that do not implement Measurer have nothing to poll.
func (d *Dispatcher) Measure() ([]ElemID, error) {
	m, ok := d.model.(Measurer)
	if !ok {
		return nil, nil
	}
	if err := m.MeasureStates(); err != nil {
		return nil, err
	}
	return d.refreshAll(m.MeasuredElems())
}

// Measures reports whether the model has polled elements.
func (d *Dispatcher) Measures() bool {
	m, ok := d.model.(Measurer)
	return ok && len(m.MeasuredElems()) > 0
}

func (d *Dispatcher) refreshAll(ids []ElemID) ([]ElemID, error) {
	var changed []ElemID
	for _, id := range ids {
		ok, err := d.refresh(id)
		if err != nil {
			return changed, err
		}
		if ok {
			changed = append(changed, id)
		}
	}
	return changed, nil
}

// refresh reads id from the model into the card and reports whether the
// value changed.
func (d *Dispatcher) refresh(id ElemID) (bool, error) {
	info, err := d.card.Info(id)
	if err != nil {
		return false, err
	}
	old, err := d.card.Value(id)
	if err != nil {
		return false, err
	}
	v := old.Clone()
	handled, err := d.model.Read(id, &v)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", id, err)
	}
	if !handled || v.Equal(old) {
		return false, nil
	}
	if err := d.card.Store(id, v); err != nil {
		return false, err
	}
	d.trace(info, v, log.DirectionIn)
	return true, nil
}

func (d *Dispatcher) trace(info ElemInfo, v ElemValue, dir log.Direction) {
	d.tracer.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: d.session,
		Direction: dir,
		Layer:     log.LayerControl,
		Category:  log.CategoryElement,
		Model:     d.name,
		Element: &log.ElementEvent{
			Name:   info.ID.Name,
			Index:  info.ID.Index,
			Values: v.Int64s(info.Kind),
		},
	})
}
