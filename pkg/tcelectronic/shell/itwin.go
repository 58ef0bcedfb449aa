package shell

import (
	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic"
)

// Impact Twin model identifier used in registries and traces.
const ItwinModel = "impact-twin"

// ListeningMode is the monitoring mode of the analog outputs.
type ListeningMode uint8

// Listening modes.
const (
	ListeningMonaural ListeningMode = iota
	ListeningStereo
	ListeningSide
)

// ListeningModeMask selects the mode bits in the hardware state.
const ListeningModeMask = 0x00000003

// ListeningModes lists the modes in encoding order.
var ListeningModes = []ListeningMode{ListeningMonaural, ListeningStereo, ListeningSide}

// String returns the mode label.
func (m ListeningMode) String() string {
	switch m {
	case ListeningStereo:
		return "Stereo"
	case ListeningSide:
		return "Side"
	default:
		return "Monaural"
	}
}

// Encode returns the wire value.
func (m ListeningMode) Encode() uint32 {
	if m > ListeningSide {
		return uint32(ListeningMonaural)
	}
	return uint32(m)
}

// DecodeListeningMode maps the masked wire value to a mode. Unknown values
// decode as ListeningMonaural.
func DecodeListeningMode(v uint32) ListeningMode {
	switch v & ListeningModeMask {
	case 1:
		return ListeningStereo
	case 2:
		return ListeningSide
	default:
		return ListeningMonaural
	}
}

// ItwinHwState is the hardware state of Impact Twin. The listening mode
// occupies the low bits of the first reserved quadlet of HwState.
type ItwinHwState struct {
	HwState
	ListeningMode ListeningMode
}

// Build encodes the state. Bits of the listening mode quadlet outside
// ListeningModeMask are kept.
func (s *ItwinHwState) Build(raw []byte) {
	s.HwState.Build(raw)
	quadlet.BuildEnumBits(raw[8:12], ListeningModeMask, s.ListeningMode)
}

// Parse decodes the state.
func (s *ItwinHwState) Parse(raw []byte) {
	s.HwState.Parse(raw)
	s.ListeningMode = quadlet.ParseEnumBits(raw[8:12], ListeningModeMask, DecodeListeningMode)
}

// ItwinSegments holds every segment of Impact Twin.
type ItwinSegments struct {
	Reverb       *segment.Segment[*tcelectronic.ReverbState]
	ChStrip      *segment.Segment[tcelectronic.ChStripStates]
	HwState      *segment.Segment[*ItwinHwState]
	ReverbMeter  *segment.Segment[*tcelectronic.ReverbMeter]
	ChStripMeter *segment.Segment[tcelectronic.ChStripMeters]

	Registry *segment.Registry
}

// NewItwinSegments builds the Impact Twin segment set.
func NewItwinSegments() *ItwinSegments {
	chStrip := tcelectronic.NewChStripStates(ChStripCount)
	chStripMeter := tcelectronic.NewChStripMeters(ChStripCount)

	s := &ItwinSegments{
		Reverb: segment.New(segment.Descriptor{
			Name: "reverb", Offset: itwinReverbOffset, Size: tcelectronic.ReverbStateSize, NotifyFlag: ReverbNotifyFlag,
		}, &tcelectronic.ReverbState{}),
		ChStrip: segment.New(segment.Descriptor{
			Name: "ch-strip", Offset: itwinChStripOffset, Size: chStrip.Size(), NotifyFlag: ChStripNotifyFlag,
		}, chStrip),
		HwState: segment.New(segment.Descriptor{
			Name: "hw-state", Offset: itwinHwStateOffset, Size: HwStateSize, NotifyFlag: HwStateNotifyFlag,
		}, &ItwinHwState{}),
		ReverbMeter: segment.New(segment.Descriptor{
			Name: "reverb-meter", Offset: itwinReverbMeterOffset, Size: tcelectronic.ReverbMeterSize,
		}, &tcelectronic.ReverbMeter{}),
		ChStripMeter: segment.New(segment.Descriptor{
			Name: "ch-strip-meter", Offset: itwinChStripMeterOffset, Size: chStripMeter.Size(),
		}, chStripMeter),
	}
	s.Registry = segment.MustRegistry(ItwinModel,
		s.Reverb, s.ChStrip, s.HwState, s.ReverbMeter, s.ChStripMeter)
	return s
}
