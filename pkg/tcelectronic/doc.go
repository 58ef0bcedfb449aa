// Package tcelectronic provides the state codecs shared by the TC Electronic
// Konnekt family of DICE based interfaces.
//
// TC Electronic firmware exposes its state as fixed segments of the DICE
// application space. The composites in this package appear, byte for byte,
// inside segments of several models: the reverb effect, the channel strip
// effect (compressor, de-esser, equalizer, limiter), the loaded program,
// the standalone sampling rate, the MIDI sender and the FireWire LED.
//
// Every composite has a Size constant and a Build/Parse pair operating on
// exactly that many bytes. Both panic with a *quadlet.SizeError when handed
// a buffer of another length; segment.Segment turns that into an error.
//
// Enumerations decode through a Decode function that maps unknown values to
// the documented default, so firmware variants never fail a whole read.
//
// Model specific segments live in the shell and desktop sub-packages.
package tcelectronic
