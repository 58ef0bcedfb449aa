package shell

import (
	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic"
)

// Konnekt Live model identifier used in registries and traces.
const KliveModel = "konnekt-live"

// Konnekt Live knob tables.
var (
	KliveKnobTargetLabels  = KnobTargetLabels(false, false)
	KliveKnob2TargetLabels = []string{
		"Stream-1/2", "Analog-1/2", "Analog-3/4",
		"Digital-1/2", "Digital-3/4", "Digital-5/6", "Digital-7/8",
		"Reverb", "Channel-strip",
	}
)

// KliveStreamSrcPairCount is the number of stream pairs selectable as the
// mixer stream source.
const KliveStreamSrcPairCount = 6

// KliveKnob is the knob segment of Konnekt Live.
//
//	0   knob target
//	4   knob 2 target
//	8   loaded program
//	12  output impedance[2]
//	20  reserved
type KliveKnob struct {
	Target       uint32
	Knob2Target  uint32
	Prog         tcelectronic.LoadedProgram
	OutImpedance [2]OutputImpedance
}

// Build encodes the knob state.
func (k *KliveKnob) Build(raw []byte) {
	BuildIndex(raw[0:4], k.Target, len(KliveKnobTargetLabels))
	BuildIndex(raw[4:8], k.Knob2Target, len(KliveKnob2TargetLabels))
	tcelectronic.BuildLoadedProgram(raw[8:12], k.Prog)
	for i, imp := range k.OutImpedance {
		quadlet.BuildEnum(raw[12+i*4:16+i*4], imp)
	}
}

// Parse decodes the knob state.
func (k *KliveKnob) Parse(raw []byte) {
	k.Target = ParseIndex(raw[0:4], len(KliveKnobTargetLabels))
	k.Knob2Target = ParseIndex(raw[4:8], len(KliveKnob2TargetLabels))
	k.Prog = tcelectronic.ParseLoadedProgram(raw[8:12])
	for i := range k.OutImpedance {
		k.OutImpedance[i] = quadlet.ParseEnum(raw[12+i*4:16+i*4], DecodeOutputImpedance)
	}
}

// KliveStandaloneSrcs are the standalone clock sources of Konnekt Live.
var KliveStandaloneSrcs = []StandaloneClkSrc{
	StandaloneSrcOptical, StandaloneSrcCoaxial, StandaloneSrcInternal,
}

// KliveConfig is the configuration segment of Konnekt Live.
//
//	0    optical interface
//	12   coaxial output source
//	16   output 1/2 source
//	20   output 3/4 source
//	24   mixer stream source pair
//	28   standalone clock source
//	32   standalone clock rate
//	36   reserved
//	84   MIDI sender
//	120  reserved
type KliveConfig struct {
	Opt                OptIfaceConfig
	CoaxOutSrc         PhysOutSrc
	Out01Src           PhysOutSrc
	Out23Src           PhysOutSrc
	MixerStreamSrcPair uint32
	StandaloneSrc      StandaloneClkSrc
	StandaloneRate     tcelectronic.StandaloneClkRate
	MidiSender         tcelectronic.MidiSender
}

// Build encodes the configuration.
func (c *KliveConfig) Build(raw []byte) {
	c.Opt.Build(raw[0:12])
	quadlet.BuildEnum(raw[12:16], c.CoaxOutSrc)
	quadlet.BuildEnum(raw[16:20], c.Out01Src)
	quadlet.BuildEnum(raw[20:24], c.Out23Src)
	BuildIndex(raw[24:28], c.MixerStreamSrcPair, KliveStreamSrcPairCount)
	quadlet.BuildEnum(raw[28:32], c.StandaloneSrc)
	quadlet.BuildEnum(raw[32:36], c.StandaloneRate)
	c.MidiSender.Build(raw[84:120])
}

// Parse decodes the configuration.
func (c *KliveConfig) Parse(raw []byte) {
	c.Opt.Parse(raw[0:12])
	c.CoaxOutSrc = quadlet.ParseEnum(raw[12:16], DecodePhysOutSrc)
	c.Out01Src = quadlet.ParseEnum(raw[16:20], DecodePhysOutSrc)
	c.Out23Src = quadlet.ParseEnum(raw[20:24], DecodePhysOutSrc)
	c.MixerStreamSrcPair = ParseIndex(raw[24:28], KliveStreamSrcPairCount)
	c.StandaloneSrc = quadlet.ParseEnum(raw[28:32], DecodeStandaloneClkSrc)
	c.StandaloneRate = quadlet.ParseEnum(raw[32:36], tcelectronic.DecodeStandaloneClkRate)
	c.MidiSender.Parse(raw[84:120])
}

// ChStripSrc is the input of the channel strip effect.
type ChStripSrc uint8

// Channel strip sources.
const (
	ChStripSrcStream01 ChStripSrc = iota
	ChStripSrcAnalog01
	ChStripSrcAnalog23
	ChStripSrcDigital01
	ChStripSrcDigital23
	ChStripSrcDigital45
	ChStripSrcDigital67
	ChStripSrcMixerOutput
	ChStripSrcNone
)

// ChStripSrcs lists the sources in label order.
var ChStripSrcs = []ChStripSrc{
	ChStripSrcStream01, ChStripSrcAnalog01, ChStripSrcAnalog23,
	ChStripSrcDigital01, ChStripSrcDigital23, ChStripSrcDigital45,
	ChStripSrcDigital67, ChStripSrcMixerOutput, ChStripSrcNone,
}

// String returns the source label.
func (s ChStripSrc) String() string {
	switch s {
	case ChStripSrcStream01:
		return "Stream-1/2"
	case ChStripSrcAnalog01:
		return "Analog-1/2"
	case ChStripSrcAnalog23:
		return "Analog-3/4"
	case ChStripSrcDigital01:
		return "Digital-1/2"
	case ChStripSrcDigital23:
		return "Digital-3/4"
	case ChStripSrcDigital45:
		return "Digital-5/6"
	case ChStripSrcDigital67:
		return "Digital-7/8"
	case ChStripSrcMixerOutput:
		return "Mixer-output-1/2"
	default:
		return "None"
	}
}

// Encode returns the wire value. The wire values are not contiguous.
func (s ChStripSrc) Encode() uint32 {
	switch s {
	case ChStripSrcStream01:
		return 0
	case ChStripSrcAnalog01:
		return 4
	case ChStripSrcAnalog23:
		return 5
	case ChStripSrcDigital01:
		return 6
	case ChStripSrcDigital23:
		return 7
	case ChStripSrcDigital45:
		return 8
	case ChStripSrcDigital67:
		return 9
	case ChStripSrcMixerOutput:
		return 10
	default:
		return 11
	}
}

// DecodeChStripSrc maps a wire value to a source. Unknown values decode as
// ChStripSrcNone.
func DecodeChStripSrc(v uint32) ChStripSrc {
	switch v {
	case 0:
		return ChStripSrcStream01
	case 4:
		return ChStripSrcAnalog01
	case 5:
		return ChStripSrcAnalog23
	case 6:
		return ChStripSrcDigital01
	case 7:
		return ChStripSrcDigital23
	case 8:
		return ChStripSrcDigital45
	case 9:
		return ChStripSrcDigital67
	case 10:
		return ChStripSrcMixerOutput
	default:
		return ChStripSrcNone
	}
}

// ChStripMode is the flavour of the channel strip effect.
type ChStripMode uint8

// Channel strip modes.
const (
	ChStripModeFabrikC ChStripMode = iota
	ChStripModeRIAA1964
	ChStripModeRIAA1987
)

// ChStripModes lists the modes in encoding order.
var ChStripModes = []ChStripMode{ChStripModeFabrikC, ChStripModeRIAA1964, ChStripModeRIAA1987}

// String returns the mode label.
func (m ChStripMode) String() string {
	switch m {
	case ChStripModeRIAA1964:
		return "RIAA-1964"
	case ChStripModeRIAA1987:
		return "RIAA-1987"
	default:
		return "FabrikC"
	}
}

// Encode returns the wire value.
func (m ChStripMode) Encode() uint32 {
	if m > ChStripModeRIAA1987 {
		return uint32(ChStripModeFabrikC)
	}
	return uint32(m)
}

// DecodeChStripMode maps a wire value to a mode. Unknown values decode as
// ChStripModeFabrikC.
func DecodeChStripMode(v uint32) ChStripMode {
	if v > uint32(ChStripModeRIAA1987) {
		return ChStripModeFabrikC
	}
	return ChStripMode(v)
}

// KliveMonitorSrcMap is the mixer slot assignment of Konnekt Live.
var KliveMonitorSrcMap = MonitorSrcMap{
	MonitorSrcStream,
	MonitorSrcNone,
	MonitorSrcNone,
	MonitorSrcSpdif,
	MonitorSrcAnalog,
	MonitorSrcAnalog,
	MonitorSrcAdatSpdif,
	MonitorSrcAdat,
	MonitorSrcAdat,
	MonitorSrcAdat,
}

// KliveMixerSize is the size of the Konnekt Live mixer segment.
const KliveMixerSize = MixerStateSize + 48

// KliveMixerState is the mixer segment of Konnekt Live.
//
//	0    shell mixer
//	316  reverb return
//	328  use channel strip as plugin
//	332  channel strip source
//	336  channel strip mode
//	340  use reverb at mid rate
//	344  mixer enabled
//	348  reserved
type KliveMixerState struct {
	Mixer              MixerState
	ReverbReturn       ReverbReturn
	UseChStripAsPlugin bool
	ChStripSrc         ChStripSrc
	ChStripMode        ChStripMode
	UseReverbAtMidRate bool
	Enabled            bool
}

// NewKliveMixerState returns a mixer sized for Konnekt Live.
func NewKliveMixerState() *KliveMixerState {
	return &KliveMixerState{
		Mixer:      NewMixerState(KliveMonitorSrcMap),
		ChStripSrc: ChStripSrcNone,
	}
}

// Build encodes the mixer segment.
func (s *KliveMixerState) Build(raw []byte) {
	s.Mixer.Build(raw[:MixerStateSize])
	s.ReverbReturn.Build(raw[316:328])
	quadlet.BuildBool(raw[328:332], s.UseChStripAsPlugin)
	quadlet.BuildEnum(raw[332:336], s.ChStripSrc)
	quadlet.BuildEnum(raw[336:340], s.ChStripMode)
	quadlet.BuildBool(raw[340:344], s.UseReverbAtMidRate)
	quadlet.BuildBool(raw[344:348], s.Enabled)
}

// Parse decodes the mixer segment.
func (s *KliveMixerState) Parse(raw []byte) {
	s.Mixer.Parse(raw[:MixerStateSize])
	s.ReverbReturn.Parse(raw[316:328])
	s.UseChStripAsPlugin = quadlet.ParseBool(raw[328:332])
	s.ChStripSrc = quadlet.ParseEnum(raw[332:336], DecodeChStripSrc)
	s.ChStripMode = quadlet.ParseEnum(raw[336:340], DecodeChStripMode)
	s.UseReverbAtMidRate = quadlet.ParseBool(raw[340:344])
	s.Enabled = quadlet.ParseBool(raw[344:348])
}

// Konnekt Live meter input counts.
const (
	KliveMeterAnalogInputs  = 4
	KliveMeterDigitalInputs = 8
)

// KliveSegments holds every segment of Konnekt Live.
type KliveSegments struct {
	Knob         *segment.Segment[*KliveKnob]
	Config       *segment.Segment[*KliveConfig]
	Mixer        *segment.Segment[*KliveMixerState]
	Reverb       *segment.Segment[*tcelectronic.ReverbState]
	ChStrip      *segment.Segment[tcelectronic.ChStripStates]
	HwState      *segment.Segment[*HwState]
	MixerMeter   *segment.Segment[*MixerMeter]
	ReverbMeter  *segment.Segment[*tcelectronic.ReverbMeter]
	ChStripMeter *segment.Segment[tcelectronic.ChStripMeters]

	Registry *segment.Registry
}

// NewKliveSegments builds the Konnekt Live segment set.
func NewKliveSegments() *KliveSegments {
	chStrip := tcelectronic.NewChStripStates(ChStripCount)
	chStripMeter := tcelectronic.NewChStripMeters(ChStripCount)
	meter := NewMixerMeter(KliveMeterAnalogInputs, KliveMeterDigitalInputs)

	s := &KliveSegments{
		Knob: segment.New(segment.Descriptor{
			Name: "knob", Offset: kliveKnobOffset, Size: kliveKnobSize, NotifyFlag: KnobNotifyFlag,
		}, &KliveKnob{}),
		Config: segment.New(segment.Descriptor{
			Name: "config", Offset: kliveConfigOffset, Size: kliveConfigSize, NotifyFlag: ConfigNotifyFlag,
		}, &KliveConfig{StandaloneSrc: StandaloneSrcInternal}),
		Mixer: segment.New(segment.Descriptor{
			Name: "mixer", Offset: kliveMixerOffset, Size: KliveMixerSize, NotifyFlag: MixerNotifyFlag,
		}, NewKliveMixerState()),
		Reverb: segment.New(segment.Descriptor{
			Name: "reverb", Offset: kliveReverbOffset, Size: tcelectronic.ReverbStateSize, NotifyFlag: ReverbNotifyFlag,
		}, &tcelectronic.ReverbState{}),
		ChStrip: segment.New(segment.Descriptor{
			Name: "ch-strip", Offset: kliveChStripOffset, Size: chStrip.Size(), NotifyFlag: ChStripNotifyFlag,
		}, chStrip),
		HwState: segment.New(segment.Descriptor{
			Name: "hw-state", Offset: kliveHwStateOffset, Size: HwStateSize, NotifyFlag: HwStateNotifyFlag,
		}, &HwState{}),
		MixerMeter: segment.New(segment.Descriptor{
			Name: "mixer-meter", Offset: kliveMixerMeterOffset, Size: MixerMeterSize,
		}, &meter),
		ReverbMeter: segment.New(segment.Descriptor{
			Name: "reverb-meter", Offset: kliveReverbMeterOffset, Size: tcelectronic.ReverbMeterSize,
		}, &tcelectronic.ReverbMeter{}),
		ChStripMeter: segment.New(segment.Descriptor{
			Name: "ch-strip-meter", Offset: kliveChStripMeterOffset, Size: chStripMeter.Size(),
		}, chStripMeter),
	}
	s.Registry = segment.MustRegistry(KliveModel,
		s.Knob, s.Config, s.Mixer, s.Reverb, s.ChStrip,
		s.HwState, s.MixerMeter, s.ReverbMeter, s.ChStripMeter)
	return s
}
