package shell

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic"
	"github.com/fwaudio/fwctl-go/pkg/transport"
)

const (
	testBase    = 0xffffe0a01000
	testTimeout = 20 * time.Millisecond
)

func TestOutputImpedanceDecodesNonzeroAsBalance(t *testing.T) {
	assert.Equal(t, ImpedanceUnbalance, DecodeOutputImpedance(0))
	assert.Equal(t, ImpedanceBalance, DecodeOutputImpedance(1))
	assert.Equal(t, ImpedanceBalance, DecodeOutputImpedance(7))

	assert.Equal(t, uint32(1), ImpedanceBalance.Encode())
	assert.Equal(t, uint32(0), ImpedanceUnbalance.Encode())
}

func TestAnalogJackState(t *testing.T) {
	raw := make([]byte, 4)
	for i, s := range AnalogJackStates {
		quadlet.BuildEnum(raw, s)
		assert.Equal(t, uint32(0x05+i), quadlet.ParseU32(raw))
		assert.Equal(t, s, quadlet.ParseEnum(raw, DecodeAnalogJackState))
	}
	assert.Equal(t, JackFrontSelected, DecodeAnalogJackState(0))
	assert.Equal(t, JackFrontSelected, DecodeAnalogJackState(0x0a))
}

func TestHwStateKeepsReservedBytes(t *testing.T) {
	raw := bytes.Repeat([]byte{0xa5}, HwStateSize)
	s := HwState{
		AnalogJackStates: [2]AnalogJackState{JackRearInserted, JackFrontInserted},
		FireWireLed:      tcelectronic.LedBlinkSlow,
	}
	s.Build(raw)

	assert.Equal(t, uint32(0x09), quadlet.ParseU32(raw[0:4]))
	assert.Equal(t, uint32(0x06), quadlet.ParseU32(raw[4:8]))
	assert.Equal(t, bytes.Repeat([]byte{0xa5}, 12), raw[8:20])
	assert.Equal(t, uint32(3), quadlet.ParseU32(raw[20:24]))
	assert.Equal(t, bytes.Repeat([]byte{0xa5}, 4), raw[24:28])

	var got HwState
	got.Parse(raw)
	assert.Equal(t, s, got)
}

func TestItwinListeningModeKeepsOtherBits(t *testing.T) {
	raw := make([]byte, HwStateSize)
	quadlet.BuildU32(raw[8:12], 0x000000f4)

	s := ItwinHwState{ListeningMode: ListeningSide}
	s.Build(raw)
	assert.Equal(t, uint32(0x000000f6), quadlet.ParseU32(raw[8:12]))

	var got ItwinHwState
	got.Parse(raw)
	assert.Equal(t, ListeningSide, got.ListeningMode)

	assert.Equal(t, ListeningMonaural, DecodeListeningMode(3))
	assert.Equal(t, ListeningStereo, DecodeListeningMode(0x05))
}

func TestKnobTargetOutOfRange(t *testing.T) {
	raw := make([]byte, 36)
	quadlet.BuildU32(raw[0:4], 4)
	quadlet.BuildU32(raw[4:8], 9)
	quadlet.BuildU32(raw[8:12], 0x00000102)
	quadlet.BuildU32(raw[16:20], 7)

	var k KliveKnob
	k.Parse(raw)
	assert.Equal(t, uint32(0), k.Target, "only 4 knob targets on Konnekt Live")
	assert.Equal(t, uint32(0), k.Knob2Target)
	assert.Equal(t, tcelectronic.ProgramP2, k.Prog)
	assert.Equal(t, [2]OutputImpedance{ImpedanceUnbalance, ImpedanceBalance}, k.OutImpedance)

	k.Target = 3
	k.Knob2Target = 20
	k.Prog = tcelectronic.ProgramP1
	k.Build(raw)
	assert.Equal(t, uint32(3), quadlet.ParseU32(raw[0:4]))
	assert.Equal(t, uint32(0), quadlet.ParseU32(raw[4:8]))
	assert.Equal(t, uint32(0x00000101), quadlet.ParseU32(raw[8:12]), "program bits only")
	assert.Equal(t, uint32(1), quadlet.ParseU32(raw[16:20]))
}

func TestMixerSlotMapping(t *testing.T) {
	raw := bytes.Repeat([]byte{0xee}, MixerStateSize)
	m := NewMixerState(KliveMonitorSrcMap)
	require.Len(t, m.Analog, 2)
	require.Len(t, m.Digital, 5)

	m.Stream.Left.Volume = 100
	for i := range m.Analog {
		m.Analog[i].Right.Pan = int32(10 + i)
	}
	for i := range m.Digital {
		m.Digital[i].Left.InputGain = int32(20 + i)
	}
	m.MuteStream = true
	m.MuteAnalog[1] = true
	m.MuteDigital[4] = true
	m.OutputVolume = -300
	m.OutputDimEnabled = true
	m.OutputDimVolume = -600
	m.Build(raw)

	assert.Equal(t, int32(100), quadlet.ParseI32(raw[4+4:4+8]))
	// Slots 1 and 2 are not used by Konnekt Live.
	assert.Equal(t, bytes.Repeat([]byte{0xee}, 2*MonitorSrcPairSize), raw[28:84])

	// Analog pairs live in slots 4 and 5.
	assert.Equal(t, int32(10), quadlet.ParseI32(raw[4*28+24:4*28+28]))
	assert.Equal(t, int32(11), quadlet.ParseI32(raw[5*28+24:5*28+28]))

	// Digital pairs fill slots 3, 6, 7, 8, 9 in order.
	for i, slot := range []int{3, 6, 7, 8, 9} {
		assert.Equal(t, int32(20+i), quadlet.ParseI32(raw[slot*28+4:slot*28+8]), "slot %d", slot)
	}

	mutes := quadlet.ParseU32(raw[280:284])
	assert.Equal(t, uint32(1|1<<9|1<<20), mutes&(1|0x3<<8|0x1f<<16))
	assert.Equal(t, int32(-300), quadlet.ParseI32(raw[284:288]))
	assert.True(t, quadlet.ParseBool(raw[288:292]))
	assert.Equal(t, int32(-600), quadlet.ParseI32(raw[292:296]))
	assert.Equal(t, bytes.Repeat([]byte{0xee}, 20), raw[296:316])

	got := NewMixerState(KliveMonitorSrcMap)
	got.Parse(raw)
	assert.Equal(t, m, got)
}

func TestMixerMeter(t *testing.T) {
	m := NewMixerMeter(KliveMeterAnalogInputs, KliveMeterDigitalInputs)
	m.StreamInputs = [2]int32{-1, -2}
	m.AnalogInputs[3] = -40
	m.DigitalInputs[7] = -80
	m.MainOutputs = [2]int32{-5, -6}

	raw := make([]byte, MixerMeterSize)
	m.Build(raw)
	assert.Equal(t, int32(-40), quadlet.ParseI32(raw[20:24]))
	assert.Equal(t, int32(-80), quadlet.ParseI32(raw[68:72]))
	assert.Equal(t, int32(-6), quadlet.ParseI32(raw[76:80]))

	got := NewMixerMeter(KliveMeterAnalogInputs, KliveMeterDigitalInputs)
	got.Parse(raw)
	assert.Equal(t, m, got)

	assert.Panics(t, func() { NewMixerMeter(9, 0) })
}

func TestChStripSrcWireValues(t *testing.T) {
	raw := make([]byte, 4)
	for _, s := range ChStripSrcs {
		quadlet.BuildEnum(raw, s)
		assert.Equal(t, s, quadlet.ParseEnum(raw, DecodeChStripSrc), s.String())
	}
	assert.Equal(t, uint32(11), ChStripSrcNone.Encode())
	for _, v := range []uint32{1, 2, 3, 12} {
		assert.Equal(t, ChStripSrcNone, DecodeChStripSrc(v))
	}
}

func TestKliveConfigMidiSenderPlacement(t *testing.T) {
	raw := make([]byte, 132)
	c := KliveConfig{
		Opt:                OptIfaceConfig{InputFormat: OptInSpdif6to7, OutputFormat: OptOutSpdif, OutputSrc: OutSrcMixerOut23},
		MixerStreamSrcPair: 5,
		StandaloneSrc:      StandaloneSrcCoaxial,
		StandaloneRate:     tcelectronic.StandaloneRate96000,
	}
	c.MidiSender.Normal.CC = 7
	c.MidiSender.SendInitAtLoad = true
	c.Build(raw)

	assert.Equal(t, uint32(2), quadlet.ParseU32(raw[0:4]))
	assert.Equal(t, uint32(5), quadlet.ParseU32(raw[24:28]))
	assert.Equal(t, uint32(7), quadlet.ParseU32(raw[88:92]))
	assert.True(t, quadlet.ParseBool(raw[116:120]))

	var got KliveConfig
	got.Parse(raw)
	assert.Equal(t, c, got)
}

func TestRegistries(t *testing.T) {
	klive := NewKliveSegments()
	assert.Len(t, klive.Registry.Entries(), 9)
	assert.Equal(t, 364, klive.Mixer.Size())
	assert.Equal(t, 292, klive.ChStrip.Size())
	assert.Equal(t, 60, klive.ChStripMeter.Size())

	var names []string
	for _, e := range klive.Registry.Notified(MixerNotifyFlag | HwStateNotifyFlag) {
		names = append(names, e.Descriptor().Name)
	}
	assert.Equal(t, []string{"mixer", "hw-state"}, names)

	itwin := NewItwinSegments()
	assert.Len(t, itwin.Registry.Entries(), 5)
	assert.Empty(t, itwin.Registry.Notified(KnobNotifyFlag))

	k8 := NewK8Segments()
	assert.Len(t, k8.Registry.Entries(), 1)
}

func TestKliveMixerThroughMediator(t *testing.T) {
	klive := NewKliveSegments()
	start, end := klive.Registry.Span()
	mem := transport.NewMemory(testBase+start, int(end-start))
	med := segment.NewMediator(mem, segment.WithBase(testBase))

	require.NoError(t, med.ReadAll(klive.Registry, testTimeout))

	klive.Mixer.Data.Enabled = true
	klive.Mixer.Data.ChStripSrc = ChStripSrcDigital45
	require.NoError(t, med.UpdateSegment(klive.Mixer, testTimeout))

	raw := mem.Load(testBase+0x00ac, KliveMixerSize)
	assert.Equal(t, uint32(8), quadlet.ParseU32(raw[332:336]))
	assert.True(t, quadlet.ParseBool(raw[344:348]))

	// A device side change is picked up on notification.
	quadlet.BuildU32(raw[336:340], 2)
	mem.Store(testBase+0x00ac, raw)
	names, err := med.DispatchNotification(klive.Registry, MixerNotifyFlag, testTimeout)
	require.NoError(t, err)
	assert.Equal(t, []string{"mixer"}, names)
	assert.Equal(t, ChStripModeRIAA1987, klive.Mixer.Data.ChStripMode)
}
