package tcelectronic

import "github.com/fwaudio/fwctl-go/pkg/quadlet"

// LoadedProgram is the program slot currently loaded.
type LoadedProgram uint8

// Program slots.
const (
	ProgramP0 LoadedProgram = iota
	ProgramP1
	ProgramP2
)

// LoadedProgramMask selects the program bits of the knob quadlet.
const LoadedProgramMask = 0x00000003

// LoadedPrograms lists the program slots in encoding order.
var LoadedPrograms = []LoadedProgram{ProgramP0, ProgramP1, ProgramP2}

// String returns the slot label.
func (p LoadedProgram) String() string {
	switch p {
	case ProgramP1:
		return "P2"
	case ProgramP2:
		return "P3"
	default:
		return "P1"
	}
}

// Encode returns the wire value.
func (p LoadedProgram) Encode() uint32 {
	if p > ProgramP2 {
		return uint32(ProgramP0)
	}
	return uint32(p)
}

// DecodeLoadedProgram maps the masked wire value to a slot. Unknown values
// decode as ProgramP0.
func DecodeLoadedProgram(v uint32) LoadedProgram {
	switch v {
	case 1:
		return ProgramP1
	case 2:
		return ProgramP2
	default:
		return ProgramP0
	}
}

// BuildLoadedProgram writes p into the program bits of raw, keeping the
// other bits.
func BuildLoadedProgram(raw []byte, p LoadedProgram) {
	quadlet.BuildEnumBits(raw, LoadedProgramMask, p)
}

// ParseLoadedProgram reads the program bits of raw.
func ParseLoadedProgram(raw []byte) LoadedProgram {
	return quadlet.ParseEnumBits(raw, LoadedProgramMask, DecodeLoadedProgram)
}

// StandaloneClkRate is the sampling rate used without a host.
type StandaloneClkRate uint8

// Standalone rates.
const (
	StandaloneRate44100 StandaloneClkRate = iota
	StandaloneRate48000
	StandaloneRate88200
	StandaloneRate96000
)

// StandaloneClkRates lists the rates in encoding order.
var StandaloneClkRates = []StandaloneClkRate{
	StandaloneRate44100, StandaloneRate48000, StandaloneRate88200, StandaloneRate96000,
}

// String returns the rate label.
func (r StandaloneClkRate) String() string {
	switch r {
	case StandaloneRate48000:
		return "48000"
	case StandaloneRate88200:
		return "88200"
	case StandaloneRate96000:
		return "96000"
	default:
		return "44100"
	}
}

// Encode returns the wire value.
func (r StandaloneClkRate) Encode() uint32 {
	if r > StandaloneRate96000 {
		return uint32(StandaloneRate44100)
	}
	return uint32(r)
}

// DecodeStandaloneClkRate maps a wire value to a rate. Unknown values
// decode as 44.1 kHz.
func DecodeStandaloneClkRate(v uint32) StandaloneClkRate {
	if v > uint32(StandaloneRate96000) {
		return StandaloneRate44100
	}
	return StandaloneClkRate(v)
}

// FireWireLedState is the state of the FireWire LED on the front panel.
type FireWireLedState uint8

// LED states.
const (
	LedOff FireWireLedState = iota
	LedOn
	LedBlinkFast
	LedBlinkSlow
)

// FireWireLedStates lists the LED states in encoding order.
var FireWireLedStates = []FireWireLedState{LedOff, LedOn, LedBlinkFast, LedBlinkSlow}

// String returns the state label.
func (s FireWireLedState) String() string {
	switch s {
	case LedOn:
		return "On"
	case LedBlinkFast:
		return "Blink-fast"
	case LedBlinkSlow:
		return "Blink-slow"
	default:
		return "Off"
	}
}

// Encode returns the wire value.
func (s FireWireLedState) Encode() uint32 {
	if s > LedBlinkSlow {
		return uint32(LedOff)
	}
	return uint32(s)
}

// DecodeFireWireLedState maps a wire value to an LED state. Unknown values
// decode as LedOff.
func DecodeFireWireLedState(v uint32) FireWireLedState {
	if v > uint32(LedBlinkSlow) {
		return LedOff
	}
	return FireWireLedState(v)
}

// MidiMsgParamsSize is the encoded size of MidiMsgParams.
const MidiMsgParamsSize = 16

// MidiMsgParams describes the control change message sent by a panel
// control.
type MidiMsgParams struct {
	Ch    uint8
	CC    uint8
	Lower uint8
	Upper uint8
}

// Build encodes the parameters, one quadlet each.
func (p *MidiMsgParams) Build(raw []byte) {
	quadlet.MustSize(raw, MidiMsgParamsSize, "midi message parameters")
	quadlet.BuildU32(raw[0:4], uint32(p.Ch))
	quadlet.BuildU32(raw[4:8], uint32(p.CC))
	quadlet.BuildU32(raw[8:12], uint32(p.Lower))
	quadlet.BuildU32(raw[12:16], uint32(p.Upper))
}

// Parse decodes the parameters. Only the low byte of each quadlet is used.
func (p *MidiMsgParams) Parse(raw []byte) {
	quadlet.MustSize(raw, MidiMsgParamsSize, "midi message parameters")
	p.Ch = uint8(quadlet.ParseU32(raw[0:4]))
	p.CC = uint8(quadlet.ParseU32(raw[4:8]))
	p.Lower = uint8(quadlet.ParseU32(raw[8:12]))
	p.Upper = uint8(quadlet.ParseU32(raw[12:16]))
}

// MidiSenderSize is the encoded size of MidiSender.
const MidiSenderSize = 36

// MidiSender is the configuration of MIDI messages emitted by the panel.
type MidiSender struct {
	Normal         MidiMsgParams
	Pushed         MidiMsgParams
	SendInitAtLoad bool
}

// Build encodes the sender configuration.
func (s *MidiSender) Build(raw []byte) {
	quadlet.MustSize(raw, MidiSenderSize, "midi sender")
	s.Normal.Build(raw[0:16])
	s.Pushed.Build(raw[16:32])
	quadlet.BuildBool(raw[32:36], s.SendInitAtLoad)
}

// Parse decodes the sender configuration.
func (s *MidiSender) Parse(raw []byte) {
	quadlet.MustSize(raw, MidiSenderSize, "midi sender")
	s.Normal.Parse(raw[0:16])
	s.Pushed.Parse(raw[16:32])
	s.SendInitAtLoad = quadlet.ParseBool(raw[32:36])
}
