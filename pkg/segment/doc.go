// Package segment maps typed device state onto fixed windows of a node's
// register space.
//
// A Segment pairs a Descriptor (name, offset, size and an optional
// notification flag) with a Data value that knows how to build itself into,
// and parse itself from, exactly Size bytes. Segments of one device model
// are collected in a Registry, which checks at construction that windows are
// quadlet aligned, non-empty, uniquely named and never overlap.
//
// # Transactions
//
// The Mediator moves segments across a transport.Transport:
//
//	m := segment.NewMediator(node, segment.WithBase(base))
//	if err := m.ReadAll(reg, timeout); err != nil { ... }
//
//	seg.Data.Bypass = true
//	if err := m.WriteSegment(seg, timeout); err != nil {
//	    // device state unknown: re-read before trusting seg.Data
//	}
//
// Each ReadSegment and WriteSegment is exactly one transport transaction;
// the mediator never retries. UpdateSegment is the quadlet-granular variant
// that writes only the quadlets whose encoding changed.
//
// # Notifications
//
// DispatchNotification re-reads every registry entry whose notification
// flag is set in the mask. Entries without a flag are never touched.
//
// # Cached image
//
// A segment keeps the last image read from or written to the device. Build
// starts from that image, so bytes the codec does not own (reserved fields,
// undocumented bits of packed quadlets) are written back as the device
// reported them.
//
// # Concurrency
//
// A Mediator, its Registry and its segments must be driven from a single
// goroutine. Interleaving requests from several goroutines breaks the
// read-modify-write discipline on shared register windows. The service
// package owns this loop.
package segment
