// Package shell defines the register layouts of the TC Electronic Konnekt
// series built on the "shell" firmware: Konnekt Live, Impact Twin and
// Konnekt 8.
//
// Every model exposes its state as a set of segments in the DICE
// application space. The composites in this package encode the parts the
// models share (mixer, hardware state, knobs, meters) and the per-model
// files assemble them into segment registries usable by a
// segment.Mediator.
package shell

//go:generate go run ../../../cmd/fwctl-layoutgen -package shell -models konnekt-live=klive,impact-twin=itwin,konnekt-8=k8 -o layout_gen.go
