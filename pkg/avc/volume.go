package avc

import "fmt"

// CtlValueMute is the control surface value of a muted volume.
const CtlValueMute int32 = -9999999

// Numeric volume limits on the control surface. The lower limit is one
// above NegInfinity so a numeric value never encodes to the sentinel.
const (
	CtlVolumeMin int32 = -0x7fff
	CtlVolumeMax int32 = 0x7fff
)

// VolumeToCtl maps a wire volume to the control surface. NegInfinity
// becomes CtlValueMute.
func VolumeToCtl(v int16) int32 {
	if v == NegInfinity {
		return CtlValueMute
	}
	return int32(v)
}

// CtlToVolume maps a control surface value to the wire. CtlValueMute
// becomes NegInfinity; other values must lie in [CtlVolumeMin, CtlVolumeMax].
func CtlToVolume(v int32) (int16, error) {
	if v == CtlValueMute {
		return NegInfinity, nil
	}
	if v < CtlVolumeMin || v > CtlVolumeMax {
		return 0, fmt.Errorf("%w: %d", ErrVolumeRange, v)
	}
	return int16(v), nil
}
