// Package avc encodes and decodes AV/C audio subunit FUNCTION BLOCK
// commands for feature function blocks (volume and mute) and carries them
// over an FCP transaction.
//
// A volume of NegInfinity on the wire means the channel is muted. On the
// control surface that value is represented by CtlValueMute, and numeric
// volumes are never allowed to encode to the sentinel.
package avc
