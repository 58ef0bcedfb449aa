package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/transport"
)

type requestOp uint8

const (
	opGet requestOp = iota
	opSet
)

type request struct {
	op    requestOp
	id    ctl.ElemID
	value ctl.ElemValue
	reply chan result
}

type result struct {
	value ctl.ElemValue
	err   error
}

// Service runs the control loop of one unit.
type Service struct {
	mu sync.RWMutex

	config   Config
	disp     *ctl.Dispatcher
	notifier transport.Notifier
	state    ServiceState

	requests chan request

	subscribers []*subscriber

	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a service for model. The model's elements are added to card
// by Start. notifier may be nil for units that never push notifications.
func New(model ctl.Model, card *ctl.MemoryCard, notifier transport.Notifier, config Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var opts []ctl.DispatcherOption
	if config.Tracer != nil {
		opts = append(opts, ctl.WithTracer(config.Tracer, config.Session, config.Name))
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Name != "" {
		logger = logger.With("unit", config.Name)
	}

	return &Service{
		config:   config,
		disp:     ctl.NewDispatcher(model, card, opts...),
		notifier: notifier,
		state:    StateIdle,
		requests: make(chan request, config.RequestQueue),
		logger:   logger,
	}, nil
}

// State returns the current service state.
func (s *Service) State() ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnEvent registers an event handler. Each handler runs on its own
// goroutine and sees events in the order the control loop emitted them.
// Handlers registered after Stop are never called.
func (s *Service) OnEvent(handler EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return
	}
	sub := newSubscriber(handler)
	s.subscribers = append(s.subscribers, sub)
	go sub.run()
}

// Start loads the model and starts the control loop. The loop runs until
// Stop is called or ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.state = StateStarting
	s.mu.Unlock()

	if err := s.disp.Load(); err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return fmt.Errorf("service: load: %w", err)
	}

	elems := s.disp.Card().Elements()
	s.logger.Info("model loaded", "elements", len(elems), "measures", s.disp.Measures())

	loopCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = StateRunning
	s.mu.Unlock()

	go s.run(loopCtx)
	return nil
}

// Stop stops the control loop and waits for it to exit. The notifier is
// not closed.
func (s *Service) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.state = StateStopping
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	s.state = StateStopped
	subs := s.subscribers
	s.subscribers = nil
	s.mu.Unlock()
	for _, sub := range subs {
		sub.close()
	}

	s.logger.Info("service stopped")
	return nil
}

// Done returns a channel that is closed when the control loop exited. It
// is nil before Start.
func (s *Service) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Elements returns the infos of every element in registration order.
func (s *Service) Elements() []ctl.ElemInfo {
	return s.disp.Card().Elements()
}

// Info returns the info of one element.
func (s *Service) Info(id ctl.ElemID) (ctl.ElemInfo, error) {
	return s.disp.Card().Info(id)
}

// Get returns the current value of an element.
func (s *Service) Get(ctx context.Context, id ctl.ElemID) (ctl.ElemValue, error) {
	res, err := s.do(ctx, request{op: opGet, id: id})
	if err != nil {
		return ctl.ElemValue{}, err
	}
	return res.value, res.err
}

// Set writes an element value to the unit.
func (s *Service) Set(ctx context.Context, id ctl.ElemID, v ctl.ElemValue) error {
	res, err := s.do(ctx, request{op: opSet, id: id, value: v.Clone()})
	if err != nil {
		return err
	}
	return res.err
}

// do hands req to the control loop and waits for the reply.
func (s *Service) do(ctx context.Context, req request) (result, error) {
	s.mu.RLock()
	running := s.state == StateRunning
	done := s.done
	s.mu.RUnlock()
	if !running {
		return result{}, ErrNotStarted
	}

	req.reply = make(chan result, 1)
	select {
	case s.requests <- req:
	case <-done:
		return result{}, ErrNotStarted
	case <-ctx.Done():
		return result{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res, nil
	case <-done:
		return result{}, ErrNotStarted
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
}

// run is the control loop. It is the only goroutine touching the model.
func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	var tick <-chan time.Time
	if s.config.MeasureInterval > 0 && s.disp.Measures() {
		ticker := time.NewTicker(s.config.MeasureInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var masks <-chan uint32
	if s.notifier != nil {
		masks = s.notifier.Notifications()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case req := <-s.requests:
			req.reply <- s.handle(req)

		case mask, ok := <-masks:
			if !ok {
				masks = nil
				s.logger.Warn("notification channel closed")
				s.emitEvent(Event{Type: EventNotifierClosed, Source: SourceNotification})
				continue
			}
			s.handleNotification(mask)

		case <-tick:
			s.measure()
		}
	}
}

func (s *Service) handle(req request) result {
	switch req.op {
	case opGet:
		v, err := s.disp.Get(req.id)
		return result{value: v, err: err}
	case opSet:
		if err := s.disp.Set(req.id, req.value); err != nil {
			s.logger.Debug("element write failed", "elem", req.id, "error", err)
			return result{err: err}
		}
		s.emitChanged(SourceWrite, 0, []ctl.ElemID{req.id})
		return result{}
	default:
		return result{err: fmt.Errorf("service: unknown request %d", req.op)}
	}
}

// handleNotification re-reads the segments named by mask. A failure is
// reported and the loop keeps running.
func (s *Service) handleNotification(mask uint32) {
	changed, err := s.disp.Notify(mask)
	if err != nil {
		s.logger.Warn("notification failed", "mask", fmt.Sprintf("%#08x", mask), "error", err)
		s.emitEvent(Event{Type: EventNotifyFailed, Source: SourceNotification, Mask: mask, Error: err})
	}
	s.emitChanged(SourceNotification, mask, changed)
}

func (s *Service) measure() {
	changed, err := s.disp.Measure()
	if err != nil {
		s.logger.Debug("measure failed", "error", err)
		s.emitEvent(Event{Type: EventMeasureFailed, Source: SourceMeasure, Error: err})
	}
	s.emitChanged(SourceMeasure, 0, changed)
}

func (s *Service) emitChanged(src Source, mask uint32, ids []ctl.ElemID) {
	for _, id := range ids {
		v, err := s.disp.Get(id)
		if err != nil {
			continue
		}
		s.emitEvent(Event{Type: EventValueChanged, Source: src, Elem: id, Value: v, Mask: mask})
	}
}

// emitEvent queues an event for every registered handler. It never blocks
// on a handler.
func (s *Service) emitEvent(event Event) {
	s.mu.RLock()
	subs := s.subscribers
	s.mu.RUnlock()
	for _, sub := range subs {
		sub.push(event)
	}
}

// subscriber delivers events to one handler in order. The queue is
// unbounded so a handler calling back into the service cannot stall the
// control loop.
type subscriber struct {
	handler EventHandler

	mu    sync.Mutex
	queue []Event
	wake  chan struct{}
}

func newSubscriber(handler EventHandler) *subscriber {
	return &subscriber{handler: handler, wake: make(chan struct{}, 1)}
}

func (sub *subscriber) push(event Event) {
	sub.mu.Lock()
	sub.queue = append(sub.queue, event)
	sub.mu.Unlock()
	select {
	case sub.wake <- struct{}{}:
	default:
	}
}

// close stops the delivery goroutine once the queue is drained.
func (sub *subscriber) close() {
	close(sub.wake)
}

func (sub *subscriber) run() {
	for range sub.wake {
		for {
			sub.mu.Lock()
			if len(sub.queue) == 0 {
				sub.mu.Unlock()
				break
			}
			event := sub.queue[0]
			sub.queue = sub.queue[1:]
			sub.mu.Unlock()
			sub.handler(event)
		}
	}
}
