// Package service runs the control loop of one unit.
//
// A Service owns a ctl.Dispatcher. A single goroutine serializes
// everything that touches the model: element reads and writes requested
// through Get and Set, notification masks delivered by the transport, and
// periodic meter polls. Changes are reported to registered handlers.
//
// Example usage:
//
//	model, _ := unit.New(unit.KindKlive, deps)
//	svc, err := service.New(model, ctl.NewMemoryCard(), mem, service.DefaultConfig())
//	svc.OnEvent(func(ev service.Event) { ... })
//	svc.Start(ctx)
//	defer svc.Stop()
//
//	err = svc.Set(ctx, ctl.MixerID("mixer-output-volume"), ctl.IntValue(-120))
//
// # Events
//
//   - EventValueChanged: an element changed by a write, a notification or a poll
//   - EventNotifyFailed: reading the segments of a notification failed
//   - EventMeasureFailed: a meter poll failed
//   - EventNotifierClosed: the notification channel was closed
package service
