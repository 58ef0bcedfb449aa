package avc

import (
	"encoding/binary"
	"fmt"
)

// CType is the command type of an AV/C frame.
type CType uint8

// Command types.
const (
	CTypeControl CType = 0x00
	CTypeStatus  CType = 0x01
)

// RCode is the response code of an AV/C frame.
type RCode uint8

// Response codes.
const (
	RCodeNotImplemented RCode = 0x08
	RCodeAccepted       RCode = 0x09
	RCodeRejected       RCode = 0x0a
	RCodeInTransition   RCode = 0x0b
	RCodeImplemented    RCode = 0x0c
	RCodeChanged        RCode = 0x0d
	RCodeInterim        RCode = 0x0f
)

func (r RCode) String() string {
	switch r {
	case RCodeNotImplemented:
		return "NOT_IMPLEMENTED"
	case RCodeAccepted:
		return "ACCEPTED"
	case RCodeRejected:
		return "REJECTED"
	case RCodeInTransition:
		return "IN_TRANSITION"
	case RCodeImplemented:
		return "IMPLEMENTED/STABLE"
	case RCodeChanged:
		return "CHANGED"
	case RCodeInterim:
		return "INTERIM"
	default:
		return fmt.Sprintf("rcode(%#02x)", uint8(r))
	}
}

// AudioSubunit0 is the subunit address of the first audio subunit.
const AudioSubunit0 uint8 = 0x08

const (
	opcodeFunctionBlock uint8 = 0xb8
	featureFBType       uint8 = 0x81
	selectorLength      uint8 = 0x02

	// header is ctype, address, opcode, fb type, fb id, attribute,
	// selector length, channel, control selector, data length.
	headerLen = 10
)

// CtlAttr is the control attribute addressed by a command.
type CtlAttr uint8

// Control attributes.
const (
	AttrResolution CtlAttr = 0x01
	AttrMinimum    CtlAttr = 0x02
	AttrMaximum    CtlAttr = 0x03
	AttrDefault    CtlAttr = 0x04
	AttrCurrent    CtlAttr = 0x10
)

// AudioCh is an audio channel number inside a function block.
type AudioCh uint8

// AudioChAll addresses the master channel of a function block.
const AudioChAll AudioCh = 0xff

// Channel returns the AudioCh for channel index i.
func Channel(i int) AudioCh {
	return AudioCh(i)
}

// Control selectors.
const (
	SelectorMute   uint8 = 0x01
	SelectorVolume uint8 = 0x02
)

// NegInfinity is the volume encoding for a muted channel.
const NegInfinity int16 = -0x8000

const (
	muteOn  uint8 = 0x70
	muteOff uint8 = 0x60
)

// FeatureCtl is the payload of a feature function block command. It is
// implemented by *VolumeCtl and *MuteCtl only.
type FeatureCtl interface {
	Selector() uint8
	encode() []byte
	decode(data []byte, frame []byte) error
}

// VolumeCtl carries signed 16 bit volumes in units of 1/256 dB.
type VolumeCtl struct {
	Values []int16
}

// Selector returns SelectorVolume.
func (c *VolumeCtl) Selector() uint8 { return SelectorVolume }

func (c *VolumeCtl) encode() []byte {
	data := make([]byte, len(c.Values)*2)
	for i, v := range c.Values {
		binary.BigEndian.PutUint16(data[i*2:], uint16(v))
	}
	return data
}

func (c *VolumeCtl) decode(data []byte, frame []byte) error {
	if len(data) != len(c.Values)*2 {
		return decodeErr(frame, "volume data length %d, want %d", len(data), len(c.Values)*2)
	}
	for i := range c.Values {
		c.Values[i] = int16(binary.BigEndian.Uint16(data[i*2:]))
	}
	return nil
}

// MuteCtl carries mute switches.
type MuteCtl struct {
	Values []bool
}

// Selector returns SelectorMute.
func (c *MuteCtl) Selector() uint8 { return SelectorMute }

func (c *MuteCtl) encode() []byte {
	data := make([]byte, len(c.Values))
	for i, v := range c.Values {
		if v {
			data[i] = muteOn
		} else {
			data[i] = muteOff
		}
	}
	return data
}

func (c *MuteCtl) decode(data []byte, frame []byte) error {
	if len(data) != len(c.Values) {
		return decodeErr(frame, "mute data length %d, want %d", len(data), len(c.Values))
	}
	for i, b := range data {
		switch b {
		case muteOn:
			c.Values[i] = true
		case muteOff:
			c.Values[i] = false
		default:
			return decodeErr(frame, "unknown mute encoding %#02x", b)
		}
	}
	return nil
}

// AudioFeature is a FUNCTION BLOCK command addressed to a feature
// function block.
type AudioFeature struct {
	FBID uint8
	Attr CtlAttr
	Ch   AudioCh
	Ctl  FeatureCtl
}

// NewVolume returns a single channel volume operation.
func NewVolume(fbID uint8, attr CtlAttr, ch AudioCh, v int16) *AudioFeature {
	return &AudioFeature{FBID: fbID, Attr: attr, Ch: ch, Ctl: &VolumeCtl{Values: []int16{v}}}
}

// NewMute returns a single channel mute operation.
func NewMute(fbID uint8, attr CtlAttr, ch AudioCh, on bool) *AudioFeature {
	return &AudioFeature{FBID: fbID, Attr: attr, Ch: ch, Ctl: &MuteCtl{Values: []bool{on}}}
}

// Frame encodes the command for the subunit at addr.
func (f *AudioFeature) Frame(ctype CType, addr uint8) []byte {
	data := f.Ctl.encode()
	frame := make([]byte, 0, headerLen+len(data))
	frame = append(frame,
		uint8(ctype), addr, opcodeFunctionBlock, featureFBType, f.FBID,
		uint8(f.Attr), selectorLength, uint8(f.Ch), f.Ctl.Selector(), uint8(len(data)))
	return append(frame, data...)
}

// parseResponse checks that resp echoes the command header and, when
// decode is set, fills Ctl from the response data. The response code is
// checked by the caller.
func (f *AudioFeature) parseResponse(resp []byte, addr uint8, decode bool) error {
	if len(resp) < headerLen {
		return decodeErr(resp, "short frame of %d bytes", len(resp))
	}
	switch {
	case resp[1] != addr:
		return decodeErr(resp, "subunit address %#02x, want %#02x", resp[1], addr)
	case resp[2] != opcodeFunctionBlock:
		return decodeErr(resp, "opcode %#02x", resp[2])
	case resp[3] != featureFBType:
		return decodeErr(resp, "function block type %#02x", resp[3])
	case resp[4] != f.FBID:
		return decodeErr(resp, "function block id %d, want %d", resp[4], f.FBID)
	case resp[5] != uint8(f.Attr):
		return decodeErr(resp, "control attribute %#02x, want %#02x", resp[5], uint8(f.Attr))
	case resp[6] != selectorLength:
		return decodeErr(resp, "selector length %d", resp[6])
	case resp[7] != uint8(f.Ch):
		return decodeErr(resp, "audio channel %d, want %d", resp[7], uint8(f.Ch))
	case resp[8] != f.Ctl.Selector():
		return decodeErr(resp, "control selector %#02x, want %#02x", resp[8], f.Ctl.Selector())
	}

	length := int(resp[9])
	if len(resp) < headerLen+length {
		return decodeErr(resp, "data length %d exceeds frame", length)
	}
	if !decode {
		return nil
	}
	return f.Ctl.decode(resp[headerLen:headerLen+length], resp)
}
