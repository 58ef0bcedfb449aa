package desktop

import (
	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic"
)

// Model is the Desktop Konnekt 6 identifier used in registries and traces.
const Model = "desktop-konnekt-6"

// Notification flags.
const (
	ConfigNotifyFlag  uint32 = 0x00010000
	HwStateNotifyFlag uint32 = 0x00020000
	PanelNotifyFlag   uint32 = 0x00080000
)

// Segment sizes.
const (
	ConfigSize  = 8
	HwStateSize = 20
	PanelSize   = 28
	MeterSize   = 32
)

// Config is the configuration segment.
type Config struct {
	StandaloneRate tcelectronic.StandaloneClkRate
}

// Build encodes the configuration. The second quadlet is reserved and left
// untouched.
func (c *Config) Build(raw []byte) {
	quadlet.MustSize(raw, ConfigSize, "desktop config")
	quadlet.BuildEnum(raw[0:4], c.StandaloneRate)
}

// Parse decodes the configuration.
func (c *Config) Parse(raw []byte) {
	quadlet.MustSize(raw, ConfigSize, "desktop config")
	c.StandaloneRate = quadlet.ParseEnum(raw[0:4], tcelectronic.DecodeStandaloneClkRate)
}

// MeterTarget is the signal point shown by the level meters.
type MeterTarget uint8

// Meter targets.
const (
	MeterInput MeterTarget = iota
	MeterPre
	MeterPost
)

// MeterTargets lists the targets in encoding order.
var MeterTargets = []MeterTarget{MeterInput, MeterPre, MeterPost}

// String returns the label shown for the target.
func (t MeterTarget) String() string {
	switch t {
	case MeterPre:
		return "Pre"
	case MeterPost:
		return "Post"
	default:
		return "Input"
	}
}

// Encode returns the wire value of the target.
func (t MeterTarget) Encode() uint32 {
	if t > MeterPost {
		return uint32(MeterInput)
	}
	return uint32(t)
}

// DecodeMeterTarget maps a wire value to a target. Unknown values decode as
// MeterInput.
func DecodeMeterTarget(v uint32) MeterTarget {
	if v > uint32(MeterPost) {
		return MeterInput
	}
	return MeterTarget(v)
}

// HwState is the hardware state segment.
//
//	0   meter target
//	4   mixer output monaural
//	8   knob assigned to headphone
//	12  dim enabled
//	16  dim volume
type HwState struct {
	MeterTarget         MeterTarget
	MixerOutputMonaural bool
	KnobToHeadphone     bool
	DimEnabled          bool
	DimVolume           int32
}

// Build encodes the state.
func (s *HwState) Build(raw []byte) {
	quadlet.MustSize(raw, HwStateSize, "desktop hw state")
	quadlet.BuildEnum(raw[0:4], s.MeterTarget)
	quadlet.BuildBool(raw[4:8], s.MixerOutputMonaural)
	quadlet.BuildBool(raw[8:12], s.KnobToHeadphone)
	quadlet.BuildBool(raw[12:16], s.DimEnabled)
	quadlet.BuildI32(raw[16:20], s.DimVolume)
}

// Parse decodes the state.
func (s *HwState) Parse(raw []byte) {
	quadlet.MustSize(raw, HwStateSize, "desktop hw state")
	s.MeterTarget = quadlet.ParseEnum(raw[0:4], DecodeMeterTarget)
	s.MixerOutputMonaural = quadlet.ParseBool(raw[4:8])
	s.KnobToHeadphone = quadlet.ParseBool(raw[8:12])
	s.DimEnabled = quadlet.ParseBool(raw[12:16])
	s.DimVolume = quadlet.ParseI32(raw[16:20])
}

// Panel is the front panel segment. The device updates it when a knob is
// turned or a button is pushed.
//
//	0   panel button count
//	4   main knob value
//	8   phone knob value
//	12  mix knob value
//	16  reverb LED
//	20  reverb knob value
//	24  FireWire LED
type Panel struct {
	PanelButtonCount uint32
	MainKnobValue    int32
	PhoneKnobValue   int32
	MixKnobValue     uint32
	ReverbLedOn      bool
	ReverbKnobValue  int32
	FireWireLed      tcelectronic.FireWireLedState
}

// Build encodes the panel.
func (p *Panel) Build(raw []byte) {
	quadlet.MustSize(raw, PanelSize, "desktop panel")
	quadlet.BuildU32(raw[0:4], p.PanelButtonCount)
	quadlet.BuildI32(raw[4:8], p.MainKnobValue)
	quadlet.BuildI32(raw[8:12], p.PhoneKnobValue)
	quadlet.BuildU32(raw[12:16], p.MixKnobValue)
	quadlet.BuildBool(raw[16:20], p.ReverbLedOn)
	quadlet.BuildI32(raw[20:24], p.ReverbKnobValue)
	quadlet.BuildEnum(raw[24:28], p.FireWireLed)
}

// Parse decodes the panel.
func (p *Panel) Parse(raw []byte) {
	quadlet.MustSize(raw, PanelSize, "desktop panel")
	p.PanelButtonCount = quadlet.ParseU32(raw[0:4])
	p.MainKnobValue = quadlet.ParseI32(raw[4:8])
	p.PhoneKnobValue = quadlet.ParseI32(raw[8:12])
	p.MixKnobValue = quadlet.ParseU32(raw[12:16])
	p.ReverbLedOn = quadlet.ParseBool(raw[16:20])
	p.ReverbKnobValue = quadlet.ParseI32(raw[20:24])
	p.FireWireLed = quadlet.ParseEnum(raw[24:28], tcelectronic.DecodeFireWireLedState)
}

// Meter holds the level meters.
type Meter struct {
	AnalogInputs [2]int32
	MixerOutputs [2]int32
	StreamInputs [4]int32
}

// Build encodes the meters.
func (m *Meter) Build(raw []byte) {
	quadlet.MustSize(raw, MeterSize, "desktop meter")
	quadlet.BuildI32Block(raw[0:8], m.AnalogInputs[:])
	quadlet.BuildI32Block(raw[8:16], m.MixerOutputs[:])
	quadlet.BuildI32Block(raw[16:32], m.StreamInputs[:])
}

// Parse decodes the meters.
func (m *Meter) Parse(raw []byte) {
	quadlet.MustSize(raw, MeterSize, "desktop meter")
	quadlet.ParseI32Block(raw[0:8], m.AnalogInputs[:])
	quadlet.ParseI32Block(raw[8:16], m.MixerOutputs[:])
	quadlet.ParseI32Block(raw[16:32], m.StreamInputs[:])
}

// Segments holds every segment of Desktop Konnekt 6.
type Segments struct {
	Config  *segment.Segment[*Config]
	HwState *segment.Segment[*HwState]
	Panel   *segment.Segment[*Panel]
	Meter   *segment.Segment[*Meter]

	Registry *segment.Registry
}

// NewSegments builds the Desktop Konnekt 6 segment set.
func NewSegments() *Segments {
	s := &Segments{
		Config: segment.New(segment.Descriptor{
			Name: "config", Offset: desktopConfigOffset, Size: ConfigSize, NotifyFlag: ConfigNotifyFlag,
		}, &Config{}),
		HwState: segment.New(segment.Descriptor{
			Name: "hw-state", Offset: desktopHwStateOffset, Size: HwStateSize, NotifyFlag: HwStateNotifyFlag,
		}, &HwState{}),
		Panel: segment.New(segment.Descriptor{
			Name: "panel", Offset: desktopPanelOffset, Size: PanelSize, NotifyFlag: PanelNotifyFlag,
		}, &Panel{}),
		Meter: segment.New(segment.Descriptor{
			Name: "meter", Offset: desktopMeterOffset, Size: MeterSize,
		}, &Meter{}),
	}
	s.Registry = segment.MustRegistry(Model, s.Config, s.HwState, s.Panel, s.Meter)
	return s
}
