package tcelectronic

import "github.com/fwaudio/fwctl-go/pkg/quadlet"

// ChStripSrcType is the source preset of the channel strip effect.
type ChStripSrcType uint8

// Channel strip source types.
const (
	ChStripFemaleVocal ChStripSrcType = iota
	ChStripMaleVocal
	ChStripGuitar
	ChStripPiano
	ChStripSpeak
	ChStripChoir
	ChStripHorns
	ChStripBass
	ChStripKick
	ChStripSnare
	ChStripMixRock
	ChStripMixSoft
	ChStripMixUrban
)

// ChStripSrcTypes lists the source types in encoding order.
var ChStripSrcTypes = []ChStripSrcType{
	ChStripFemaleVocal, ChStripMaleVocal, ChStripGuitar, ChStripPiano,
	ChStripSpeak, ChStripChoir, ChStripHorns, ChStripBass, ChStripKick,
	ChStripSnare, ChStripMixRock, ChStripMixSoft, ChStripMixUrban,
}

// String returns the source type label.
func (t ChStripSrcType) String() string {
	switch t {
	case ChStripFemaleVocal:
		return "Female-vocal"
	case ChStripMaleVocal:
		return "Male-vocal"
	case ChStripGuitar:
		return "Guitar"
	case ChStripPiano:
		return "Piano"
	case ChStripSpeak:
		return "Speak"
	case ChStripChoir:
		return "Choir"
	case ChStripHorns:
		return "Horns"
	case ChStripBass:
		return "Bass"
	case ChStripKick:
		return "Kick"
	case ChStripSnare:
		return "Snare"
	case ChStripMixRock:
		return "Mix-rock"
	case ChStripMixSoft:
		return "Mix-soft"
	case ChStripMixUrban:
		return "Mix-urban"
	default:
		return "Unknown"
	}
}

// Encode returns the wire value.
func (t ChStripSrcType) Encode() uint32 {
	if t > ChStripMixUrban {
		return uint32(ChStripFemaleVocal)
	}
	return uint32(t)
}

// DecodeChStripSrcType maps a wire value to a source type. Unknown values
// decode as ChStripFemaleVocal.
func DecodeChStripSrcType(v uint32) ChStripSrcType {
	if v > uint32(ChStripMixUrban) {
		return ChStripFemaleVocal
	}
	return ChStripSrcType(v)
}

// CompState is the compressor stage. Ctl and Level hold the low, mid and
// high bands.
type CompState struct {
	InputGain       uint32
	MakeUpGain      uint32
	FullBandEnabled bool
	Ctl             [3]uint32
	Level           [3]uint32
}

// DeesserState is the de-esser stage.
type DeesserState struct {
	Ratio  uint32
	Bypass bool
}

// EqState is one equalizer band.
type EqState struct {
	Enabled   bool
	Bandwidth uint32
	Gain      uint32
	Freq      uint32
}

// ChStripEqBands is the number of equalizer bands.
const ChStripEqBands = 4

// LimitterState is the limiter stage.
type LimitterState struct {
	Threshold uint32
}

// ChStripStateSize is the encoded size of ChStripState.
const ChStripStateSize = 144

// ChStripState is the state of one channel strip effect.
type ChStripState struct {
	SrcType  ChStripSrcType
	Comp     CompState
	Deesser  DeesserState
	Eq       [ChStripEqBands]EqState
	Limitter LimitterState
	Bypass   bool
}

// Build encodes the state. Bytes 120..144 are reserved and left untouched.
func (s *ChStripState) Build(raw []byte) {
	quadlet.MustSize(raw, ChStripStateSize, "channel strip state")
	quadlet.BuildEnum(raw[0:4], s.SrcType)

	quadlet.BuildU32(raw[4:8], s.Comp.InputGain)
	quadlet.BuildU32(raw[8:12], s.Comp.MakeUpGain)
	quadlet.BuildBool(raw[12:16], s.Comp.FullBandEnabled)
	quadlet.BuildU32Block(raw[16:28], s.Comp.Ctl[:])
	quadlet.BuildU32Block(raw[28:40], s.Comp.Level[:])

	quadlet.BuildU32(raw[40:44], s.Deesser.Ratio)
	quadlet.BuildBool(raw[44:48], s.Deesser.Bypass)

	for i := range s.Eq {
		eq := raw[48+i*16 : 64+i*16]
		quadlet.BuildBool(eq[0:4], s.Eq[i].Enabled)
		quadlet.BuildU32(eq[4:8], s.Eq[i].Bandwidth)
		quadlet.BuildU32(eq[8:12], s.Eq[i].Gain)
		quadlet.BuildU32(eq[12:16], s.Eq[i].Freq)
	}

	quadlet.BuildU32(raw[112:116], s.Limitter.Threshold)
	quadlet.BuildBool(raw[116:120], s.Bypass)
}

// Parse decodes the state.
func (s *ChStripState) Parse(raw []byte) {
	quadlet.MustSize(raw, ChStripStateSize, "channel strip state")
	s.SrcType = quadlet.ParseEnum(raw[0:4], DecodeChStripSrcType)

	s.Comp.InputGain = quadlet.ParseU32(raw[4:8])
	s.Comp.MakeUpGain = quadlet.ParseU32(raw[8:12])
	s.Comp.FullBandEnabled = quadlet.ParseBool(raw[12:16])
	quadlet.ParseU32Block(raw[16:28], s.Comp.Ctl[:])
	quadlet.ParseU32Block(raw[28:40], s.Comp.Level[:])

	s.Deesser.Ratio = quadlet.ParseU32(raw[40:44])
	s.Deesser.Bypass = quadlet.ParseBool(raw[44:48])

	for i := range s.Eq {
		eq := raw[48+i*16 : 64+i*16]
		s.Eq[i].Enabled = quadlet.ParseBool(eq[0:4])
		s.Eq[i].Bandwidth = quadlet.ParseU32(eq[4:8])
		s.Eq[i].Gain = quadlet.ParseU32(eq[8:12])
		s.Eq[i].Freq = quadlet.ParseU32(eq[12:16])
	}

	s.Limitter.Threshold = quadlet.ParseU32(raw[112:116])
	s.Bypass = quadlet.ParseBool(raw[116:120])
}

// ChStripMeterSize is the encoded size of ChStripMeter.
const ChStripMeterSize = 28

// ChStripMeter holds the meters of one channel strip effect.
type ChStripMeter struct {
	Input  int32
	Limit  int32
	Output int32
	Gains  [3]int32
}

// Build encodes the meter. Bytes 24..28 are reserved.
func (m *ChStripMeter) Build(raw []byte) {
	quadlet.MustSize(raw, ChStripMeterSize, "channel strip meter")
	quadlet.BuildI32(raw[0:4], m.Input)
	quadlet.BuildI32(raw[4:8], m.Limit)
	quadlet.BuildI32(raw[8:12], m.Output)
	quadlet.BuildI32Block(raw[12:24], m.Gains[:])
}

// Parse decodes the meter.
func (m *ChStripMeter) Parse(raw []byte) {
	quadlet.MustSize(raw, ChStripMeterSize, "channel strip meter")
	m.Input = quadlet.ParseI32(raw[0:4])
	m.Limit = quadlet.ParseI32(raw[4:8])
	m.Output = quadlet.ParseI32(raw[8:12])
	quadlet.ParseI32Block(raw[12:24], m.Gains[:])
}

// ChStripStates is an array of channel strip states laid out back to back
// and followed by one reserved quadlet.
type ChStripStates []ChStripState

// NewChStripStates returns n zeroed states.
func NewChStripStates(n int) ChStripStates {
	return make(ChStripStates, n)
}

// Size returns the encoded size including the trailing reserved quadlet.
func (s ChStripStates) Size() int {
	return len(s)*ChStripStateSize + quadlet.Size
}

// Build encodes element i at i*ChStripStateSize. The trailing quadlet is
// left untouched.
func (s ChStripStates) Build(raw []byte) {
	quadlet.MustSize(raw, s.Size(), "channel strip states")
	for i := range s {
		s[i].Build(raw[i*ChStripStateSize : (i+1)*ChStripStateSize])
	}
}

// Parse decodes every element.
func (s ChStripStates) Parse(raw []byte) {
	quadlet.MustSize(raw, s.Size(), "channel strip states")
	for i := range s {
		s[i].Parse(raw[i*ChStripStateSize : (i+1)*ChStripStateSize])
	}
}

// ChStripMeters is an array of channel strip meters followed by one
// reserved quadlet.
type ChStripMeters []ChStripMeter

// NewChStripMeters returns n zeroed meters.
func NewChStripMeters(n int) ChStripMeters {
	return make(ChStripMeters, n)
}

// Size returns the encoded size including the trailing reserved quadlet.
func (m ChStripMeters) Size() int {
	return len(m)*ChStripMeterSize + quadlet.Size
}

// Build encodes element i at i*ChStripMeterSize.
func (m ChStripMeters) Build(raw []byte) {
	quadlet.MustSize(raw, m.Size(), "channel strip meters")
	for i := range m {
		m[i].Build(raw[i*ChStripMeterSize : (i+1)*ChStripMeterSize])
	}
}

// Parse decodes every element.
func (m ChStripMeters) Parse(raw []byte) {
	quadlet.MustSize(raw, m.Size(), "channel strip meters")
	for i := range m {
		m[i].Parse(raw[i*ChStripMeterSize : (i+1)*ChStripMeterSize])
	}
}
