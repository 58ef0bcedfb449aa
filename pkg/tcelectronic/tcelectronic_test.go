package tcelectronic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
)

func TestEnumRoundTrip(t *testing.T) {
	raw := make([]byte, 4)

	for _, a := range ReverbAlgorithms {
		quadlet.BuildEnum(raw, a)
		assert.Equal(t, a, quadlet.ParseEnum(raw, DecodeReverbAlgorithm), a.String())
	}
	for _, s := range ChStripSrcTypes {
		quadlet.BuildEnum(raw, s)
		assert.Equal(t, s, quadlet.ParseEnum(raw, DecodeChStripSrcType), s.String())
	}
	for _, r := range StandaloneClkRates {
		quadlet.BuildEnum(raw, r)
		assert.Equal(t, r, quadlet.ParseEnum(raw, DecodeStandaloneClkRate), r.String())
	}
	for _, l := range FireWireLedStates {
		quadlet.BuildEnum(raw, l)
		assert.Equal(t, l, quadlet.ParseEnum(raw, DecodeFireWireLedState), l.String())
	}
	for _, p := range LoadedPrograms {
		BuildLoadedProgram(raw, p)
		assert.Equal(t, p, ParseLoadedProgram(raw), p.String())
	}
}

func TestEnumUnknownDecodesToDefault(t *testing.T) {
	for _, v := range []uint32{14, 100, 0xffffffff} {
		assert.Equal(t, ReverbLive1, DecodeReverbAlgorithm(v))
	}
	for _, v := range []uint32{13, 0x80000000} {
		assert.Equal(t, ChStripFemaleVocal, DecodeChStripSrcType(v))
	}
	assert.Equal(t, StandaloneRate44100, DecodeStandaloneClkRate(4))
	assert.Equal(t, LedOff, DecodeFireWireLedState(7))
	assert.Equal(t, ProgramP0, DecodeLoadedProgram(3))

	// Out of range values never encode outside the documented domain.
	assert.Equal(t, uint32(0), ReverbAlgorithm(200).Encode())
	assert.Equal(t, "Unknown", ReverbAlgorithm(200).String())
}

func TestLoadedProgramKeepsOtherBits(t *testing.T) {
	raw := []byte{0x12, 0x34, 0x56, 0x7c}
	BuildLoadedProgram(raw, ProgramP2)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x7e}, raw)
	assert.Equal(t, ProgramP2, ParseLoadedProgram(raw))
}

func TestReverbState(t *testing.T) {
	state := ReverbState{
		InputLevel:      -12,
		Bypass:          true,
		KillDry:         true,
		OutputLevel:     6,
		TimeDecay:       200,
		TimePreDecay:    50,
		ColorLow:        3,
		ColorHigh:       9,
		ColorHighFactor: 2,
		ModRate:         4,
		ModDepth:        5,
		LevelEarly:      -3,
		LevelReverb:     -6,
		LevelDry:        -9,
		Algorithm:       ReverbCathedral,
	}

	raw := make([]byte, ReverbStateSize)
	copy(raw[28:32], []byte{0xaa, 0xbb, 0xcc, 0xdd})
	state.Build(raw)

	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xf4}, raw[0:4])
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc, 0xdd}, raw[28:32], "reserved quadlet untouched")
	assert.Equal(t, []byte{0, 0, 0, 5}, raw[64:68])

	var parsed ReverbState
	parsed.Parse(raw)
	assert.Equal(t, state, parsed)

	again := make([]byte, ReverbStateSize)
	copy(again, raw)
	parsed.Build(again)
	assert.Equal(t, raw, again, "build of parsed state is idempotent")
}

func TestReverbStateSizeMismatchPanics(t *testing.T) {
	var state ReverbState
	assert.Panics(t, func() { state.Build(make([]byte, ReverbStateSize-4)) })
	assert.Panics(t, func() { state.Parse(make([]byte, ReverbStateSize+4)) })
}

func TestReverbMeter(t *testing.T) {
	meter := ReverbMeter{Outputs: [2]int32{-1, -2}, Inputs: [2]int32{-3, -4}}
	raw := make([]byte, ReverbMeterSize)
	meter.Build(raw)

	var parsed ReverbMeter
	parsed.Parse(raw)
	assert.Equal(t, meter, parsed)
}

func sampleChStrip(seed uint32) ChStripState {
	s := ChStripState{
		SrcType: DecodeChStripSrcType(seed % 13),
		Comp: CompState{
			InputGain:       seed + 1,
			MakeUpGain:      seed + 2,
			FullBandEnabled: seed%2 == 0,
			Ctl:             [3]uint32{seed + 3, seed + 4, seed + 5},
			Level:           [3]uint32{seed + 6, seed + 7, seed + 8},
		},
		Deesser:  DeesserState{Ratio: seed + 9, Bypass: true},
		Limitter: LimitterState{Threshold: seed + 10},
		Bypass:   seed%3 == 0,
	}
	for i := range s.Eq {
		s.Eq[i] = EqState{Enabled: i%2 == 1, Bandwidth: seed + uint32(i), Gain: seed * 2, Freq: seed * 3}
	}
	return s
}

func TestChStripStateRoundTrip(t *testing.T) {
	state := sampleChStrip(7)
	raw := make([]byte, ChStripStateSize)
	state.Build(raw)

	assert.Equal(t, uint32(7), quadlet.ParseU32(raw[0:4]))
	assert.Equal(t, uint32(8), quadlet.ParseU32(raw[4:8]), "comp input gain")
	assert.Equal(t, uint32(16), quadlet.ParseU32(raw[40:44]), "deesser ratio")
	assert.Equal(t, uint32(17), quadlet.ParseU32(raw[112:116]), "limitter threshold")

	var parsed ChStripState
	parsed.Parse(raw)
	assert.Equal(t, state, parsed)
}

func TestChStripStatesElementIsolation(t *testing.T) {
	states := NewChStripStates(4)
	for i := range states {
		states[i] = sampleChStrip(uint32(i * 10))
	}
	require.Equal(t, 4*ChStripStateSize+4, states.Size())

	raw := make([]byte, states.Size())
	copy(raw[len(raw)-4:], []byte{1, 2, 3, 4})
	states.Build(raw)
	before := append([]byte(nil), raw...)

	states[2].SrcType = ChStripSnare
	states.Build(raw)

	elem := func(buf []byte, i int) []byte {
		return buf[i*ChStripStateSize : (i+1)*ChStripStateSize]
	}
	for _, i := range []int{0, 1, 3} {
		assert.True(t, bytes.Equal(elem(before, i), elem(raw, i)), "element %d changed", i)
	}
	assert.False(t, bytes.Equal(elem(before, 2), elem(raw, 2)))
	assert.Equal(t, []byte{1, 2, 3, 4}, raw[len(raw)-4:], "trailing reserved quadlet kept")

	parsed := NewChStripStates(4)
	parsed.Parse(raw)
	assert.Equal(t, ChStripSnare, parsed[2].SrcType)
	assert.Equal(t, states, parsed)
}

func TestChStripMeters(t *testing.T) {
	meters := NewChStripMeters(2)
	meters[0] = ChStripMeter{Input: -1, Limit: -2, Output: -3, Gains: [3]int32{-4, -5, -6}}
	meters[1] = ChStripMeter{Input: 1, Limit: 2, Output: 3, Gains: [3]int32{4, 5, 6}}
	require.Equal(t, 60, meters.Size())

	raw := make([]byte, meters.Size())
	meters.Build(raw)
	parsed := NewChStripMeters(2)
	parsed.Parse(raw)
	assert.Equal(t, meters, parsed)
	assert.Equal(t, int32(1), quadlet.ParseI32(raw[28:32]), "second element starts at 28")
}

func TestMidiSender(t *testing.T) {
	sender := MidiSender{
		Normal:         MidiMsgParams{Ch: 1, CC: 7, Lower: 0, Upper: 127},
		Pushed:         MidiMsgParams{Ch: 2, CC: 10, Lower: 10, Upper: 100},
		SendInitAtLoad: true,
	}
	raw := make([]byte, MidiSenderSize)
	sender.Build(raw)
	assert.Equal(t, []byte{0, 0, 0, 127}, raw[12:16])
	assert.Equal(t, []byte{0, 0, 0, 1}, raw[32:36])

	var parsed MidiSender
	parsed.Parse(raw)
	assert.Equal(t, sender, parsed)
}
