package shell

import (
	"fmt"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
)

// MonitorSrcParamSize is the encoded size of MonitorSrcParam.
const MonitorSrcParamSize = 12

// MonitorSrcParam is the mixer input parameter of one channel.
type MonitorSrcParam struct {
	InputGain int32
	Volume    int32
	Pan       int32
}

// Build encodes the parameter.
func (p *MonitorSrcParam) Build(raw []byte) {
	quadlet.MustSize(raw, MonitorSrcParamSize, "monitor source parameter")
	quadlet.BuildI32(raw[0:4], p.InputGain)
	quadlet.BuildI32(raw[4:8], p.Volume)
	quadlet.BuildI32(raw[8:12], p.Pan)
}

// Parse decodes the parameter.
func (p *MonitorSrcParam) Parse(raw []byte) {
	quadlet.MustSize(raw, MonitorSrcParamSize, "monitor source parameter")
	p.InputGain = quadlet.ParseI32(raw[0:4])
	p.Volume = quadlet.ParseI32(raw[4:8])
	p.Pan = quadlet.ParseI32(raw[8:12])
}

// MonitorSrcPairSize is the encoded size of MonitorSrcPair.
const MonitorSrcPairSize = 28

// MonitorSrcPair is a stereo pair of mixer inputs.
type MonitorSrcPair struct {
	StereoLink bool
	Left       MonitorSrcParam
	Right      MonitorSrcParam
}

// Build encodes the pair.
func (p *MonitorSrcPair) Build(raw []byte) {
	quadlet.MustSize(raw, MonitorSrcPairSize, "monitor source pair")
	quadlet.BuildBool(raw[0:4], p.StereoLink)
	p.Left.Build(raw[4:16])
	p.Right.Build(raw[16:28])
}

// Parse decodes the pair.
func (p *MonitorSrcPair) Parse(raw []byte) {
	quadlet.MustSize(raw, MonitorSrcPairSize, "monitor source pair")
	p.StereoLink = quadlet.ParseBool(raw[0:4])
	p.Left.Parse(raw[4:16])
	p.Right.Parse(raw[16:28])
}

// MonitorSrcType tells what is wired to a mixer slot.
type MonitorSrcType uint8

// Slot types. MonitorSrcNone marks a slot the model does not use.
const (
	MonitorSrcNone MonitorSrcType = iota
	MonitorSrcStream
	MonitorSrcAnalog
	MonitorSrcSpdif
	MonitorSrcAdat
	MonitorSrcAdatSpdif
)

func (t MonitorSrcType) digital() bool {
	return t == MonitorSrcSpdif || t == MonitorSrcAdat || t == MonitorSrcAdatSpdif
}

// MonitorSrcSlots is the number of slots in the mixer segment.
const MonitorSrcSlots = 10

// MonitorSrcMap assigns a source type to every mixer slot.
type MonitorSrcMap [MonitorSrcSlots]MonitorSrcType

// Counts returns the number of analog and digital pairs in the map.
func (m MonitorSrcMap) Counts() (analog, digital int) {
	for _, t := range m {
		switch {
		case t == MonitorSrcAnalog:
			analog++
		case t.digital():
			digital++
		}
	}
	return analog, digital
}

// MixerStateSize is the encoded size of MixerState.
const MixerStateSize = 316

// Bits of the mute quadlet.
const (
	muteStreamFlag   uint32 = 0x00000001
	muteAnalogShift         = 8
	muteDigitalShift        = 16
)

// MixerState is the monitor mixer shared by shell models.
//
// The segment holds ten slots of MonitorSrcPairSize bytes; the model's
// MonitorSrcMap decides which slot backs the stream pair and which back the
// analog and digital pairs. Unused slots are never written.
//
//	0..280  slots
//	280     mutes (bit 0 stream, bit 8+i analog pair i, bit 16+i digital pair i)
//	284     output volume
//	288     output dim enabled
//	292     output dim volume
//	296     reserved
type MixerState struct {
	srcMap MonitorSrcMap

	Stream  MonitorSrcPair
	Analog  []MonitorSrcPair
	Digital []MonitorSrcPair

	MuteStream  bool
	MuteAnalog  []bool
	MuteDigital []bool

	OutputVolume     int32
	OutputDimEnabled bool
	OutputDimVolume  int32
}

// NewMixerState sizes the pair and mute slices from m.
func NewMixerState(m MonitorSrcMap) MixerState {
	analog, digital := m.Counts()
	if analog > 8 || digital > 8 {
		panic(fmt.Sprintf("shell: monitor source map has %d analog and %d digital pairs", analog, digital))
	}
	return MixerState{
		srcMap:      m,
		Analog:      make([]MonitorSrcPair, analog),
		Digital:     make([]MonitorSrcPair, digital),
		MuteAnalog:  make([]bool, analog),
		MuteDigital: make([]bool, digital),
	}
}

// SrcMap returns the slot assignment.
func (s *MixerState) SrcMap() MonitorSrcMap {
	return s.srcMap
}

func slot(raw []byte, i int) []byte {
	return raw[i*MonitorSrcPairSize : (i+1)*MonitorSrcPairSize]
}

// Build encodes the mixer. Bits of the mute quadlet that do not belong to a
// pair are kept.
func (s *MixerState) Build(raw []byte) {
	quadlet.MustSize(raw, MixerStateSize, "shell mixer state")

	a, d := 0, 0
	for i, t := range s.srcMap {
		switch {
		case t == MonitorSrcStream:
			s.Stream.Build(slot(raw, i))
		case t == MonitorSrcAnalog:
			s.Analog[a].Build(slot(raw, i))
			a++
		case t.digital():
			s.Digital[d].Build(slot(raw, i))
			d++
		}
	}

	mutes := raw[280:284]
	quadlet.BuildFlag(mutes, muteStreamFlag, s.MuteStream)
	for i, m := range s.MuteAnalog {
		quadlet.BuildFlag(mutes, 1<<(muteAnalogShift+i), m)
	}
	for i, m := range s.MuteDigital {
		quadlet.BuildFlag(mutes, 1<<(muteDigitalShift+i), m)
	}

	quadlet.BuildI32(raw[284:288], s.OutputVolume)
	quadlet.BuildBool(raw[288:292], s.OutputDimEnabled)
	quadlet.BuildI32(raw[292:296], s.OutputDimVolume)
}

// Parse decodes the mixer.
func (s *MixerState) Parse(raw []byte) {
	quadlet.MustSize(raw, MixerStateSize, "shell mixer state")

	a, d := 0, 0
	for i, t := range s.srcMap {
		switch {
		case t == MonitorSrcStream:
			s.Stream.Parse(slot(raw, i))
		case t == MonitorSrcAnalog:
			s.Analog[a].Parse(slot(raw, i))
			a++
		case t.digital():
			s.Digital[d].Parse(slot(raw, i))
			d++
		}
	}

	mutes := raw[280:284]
	s.MuteStream = quadlet.ParseFlag(mutes, muteStreamFlag)
	for i := range s.MuteAnalog {
		s.MuteAnalog[i] = quadlet.ParseFlag(mutes, 1<<(muteAnalogShift+i))
	}
	for i := range s.MuteDigital {
		s.MuteDigital[i] = quadlet.ParseFlag(mutes, 1<<(muteDigitalShift+i))
	}

	s.OutputVolume = quadlet.ParseI32(raw[284:288])
	s.OutputDimEnabled = quadlet.ParseBool(raw[288:292])
	s.OutputDimVolume = quadlet.ParseI32(raw[292:296])
}

// ReverbReturnSize is the encoded size of ReverbReturn.
const ReverbReturnSize = 12

// ReverbReturn is the return path of the reverb effect into the mixer.
type ReverbReturn struct {
	PluginMode bool
	ReturnGain int32
	ReturnMute bool
}

// Build encodes the return.
func (r *ReverbReturn) Build(raw []byte) {
	quadlet.MustSize(raw, ReverbReturnSize, "reverb return")
	quadlet.BuildBool(raw[0:4], r.PluginMode)
	quadlet.BuildI32(raw[4:8], r.ReturnGain)
	quadlet.BuildBool(raw[8:12], r.ReturnMute)
}

// Parse decodes the return.
func (r *ReverbReturn) Parse(raw []byte) {
	quadlet.MustSize(raw, ReverbReturnSize, "reverb return")
	r.PluginMode = quadlet.ParseBool(raw[0:4])
	r.ReturnGain = quadlet.ParseI32(raw[4:8])
	r.ReturnMute = quadlet.ParseBool(raw[8:12])
}

// MixerMeterSize is the encoded size of MixerMeter.
const MixerMeterSize = 92

// MaxMeterInputs bounds the analog and digital meter counts.
const MaxMeterInputs = 8

// MixerMeter holds the mixer level meters.
//
//	0   stream inputs[2]
//	8   analog inputs[<=8]
//	40  digital inputs[<=8]
//	72  main outputs[2]
//	80  reserved
type MixerMeter struct {
	StreamInputs  [2]int32
	AnalogInputs  []int32
	DigitalInputs []int32
	MainOutputs   [2]int32
}

// NewMixerMeter returns a meter with the given input counts.
func NewMixerMeter(analog, digital int) MixerMeter {
	if analog > MaxMeterInputs || digital > MaxMeterInputs {
		panic(fmt.Sprintf("shell: meter counts %d/%d exceed %d", analog, digital, MaxMeterInputs))
	}
	return MixerMeter{
		AnalogInputs:  make([]int32, analog),
		DigitalInputs: make([]int32, digital),
	}
}

// Build encodes the meter.
func (m *MixerMeter) Build(raw []byte) {
	quadlet.MustSize(raw, MixerMeterSize, "shell mixer meter")
	quadlet.BuildI32Block(raw[0:8], m.StreamInputs[:])
	quadlet.BuildI32Block(raw[8:8+len(m.AnalogInputs)*4], m.AnalogInputs)
	quadlet.BuildI32Block(raw[40:40+len(m.DigitalInputs)*4], m.DigitalInputs)
	quadlet.BuildI32Block(raw[72:80], m.MainOutputs[:])
}

// Parse decodes the meter.
func (m *MixerMeter) Parse(raw []byte) {
	quadlet.MustSize(raw, MixerMeterSize, "shell mixer meter")
	quadlet.ParseI32Block(raw[0:8], m.StreamInputs[:])
	quadlet.ParseI32Block(raw[8:8+len(m.AnalogInputs)*4], m.AnalogInputs)
	quadlet.ParseI32Block(raw[40:40+len(m.DigitalInputs)*4], m.DigitalInputs)
	quadlet.ParseI32Block(raw[72:80], m.MainOutputs[:])
}
