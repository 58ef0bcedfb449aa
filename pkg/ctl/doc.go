// Package ctl is the control element surface of a device daemon.
//
// A Model registers its elements on a Card at load time and then answers
// reads and writes addressed by ElemID. Elements have a kind (boolean,
// integer or enumerated), a fixed value count and access metadata.
//
// # Dispatch
//
// Dispatcher binds a Model to a MemoryCard. It validates element writes
// against the registered ElemInfo, forwards them to the model, and after
// a notification mask or a measure poll re-reads the affected elements
// and reports the ones whose value changed:
//
//	card := ctl.NewMemoryCard()
//	d := ctl.NewDispatcher(model, card)
//	if err := d.Load(); err != nil { ... }
//	changed, err := d.Notify(mask)
//
// Models may additionally implement Notifier to refresh state on
// notification masks and Measurer to poll meters.
//
// Neither Dispatcher nor the models are safe for concurrent use; a single
// goroutine owns them. MemoryCard itself is safe for concurrent reads.
package ctl
