// Package persistence stores snapshots of segment images.
//
// A snapshot holds the cached raw image of every segment of a registry so
// a simulated unit can start from the register contents a real one had.
// Snapshots are CBOR encoded.
package persistence
