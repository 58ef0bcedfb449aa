// Package desktop defines the register layout of the TC Electronic Desktop
// Konnekt 6.
package desktop

//go:generate go run ../../../cmd/fwctl-layoutgen -package desktop -models desktop-konnekt-6=desktop -o layout_gen.go
