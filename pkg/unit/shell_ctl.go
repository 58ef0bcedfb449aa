package unit

import (
	"fmt"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic/shell"
)

var (
	levelRange = intRange{min: -1000, max: 0, step: 1, db: &ctl.DBRange{Min: -9400, Max: 0}}
	panRange   = intRange{min: -50, max: 50, step: 1}
	meterRange = intRange{min: -1000, max: 0, step: 1}
)

var mixer = ctl.MixerID

func hwStateFields(s *shell.HwState) []field {
	return []field{
		enumsField(mixer("analog-jack-state"), len(s.AnalogJackStates),
			shell.AnalogJackStates, labelsOf(shell.AnalogJackStates),
			func(i int) shell.AnalogJackState { return s.AnalogJackStates[i] }, nil),
		enumField(mixer("firewire-led-state"), tcelectronic.FireWireLedStates, &s.FireWireLed, true),
	}
}

func hwStateCtl[T segment.Data](seg *segment.Segment[T], s *shell.HwState, extra ...field) *segCtl {
	return &segCtl{entry: seg, fields: append(hwStateFields(s), extra...)}
}

var (
	reverbInputRange  = intRange{min: -24, max: 0, step: 1}
	reverbOutputRange = intRange{min: -24, max: 12, step: 1}
	reverbDecayRange  = intRange{min: 1, max: 290, step: 1}
	reverbPreRange    = intRange{min: 0, max: 100, step: 1}
	reverbColorRange  = intRange{min: -50, max: 50, step: 1}
	reverbFactorRange = intRange{min: -25, max: 25, step: 1}
	reverbModRange    = intRange{min: -25, max: 25, step: 1}
	reverbLevelRange  = intRange{min: -48, max: 0, step: 1}
)

func reverbCtl(seg *segment.Segment[*tcelectronic.ReverbState]) *segCtl {
	s := seg.Data
	return &segCtl{entry: seg, fields: []field{
		intField(mixer("reverb-input-level"), &s.InputLevel, reverbInputRange, true),
		boolField(mixer("reverb-bypass"), &s.Bypass, true),
		boolField(mixer("reverb-kill-wet"), &s.KillWet, true),
		boolField(mixer("reverb-kill-dry"), &s.KillDry, true),
		intField(mixer("reverb-output-level"), &s.OutputLevel, reverbOutputRange, true),
		uintField(mixer("reverb-time-decay"), &s.TimeDecay, reverbDecayRange, true),
		uintField(mixer("reverb-time-pre-decay"), &s.TimePreDecay, reverbPreRange, true),
		uintField(mixer("reverb-color-low"), &s.ColorLow, reverbColorRange, true),
		uintField(mixer("reverb-color-high"), &s.ColorHigh, reverbColorRange, true),
		uintField(mixer("reverb-color-high-factor"), &s.ColorHighFactor, reverbFactorRange, true),
		uintField(mixer("reverb-mod-rate"), &s.ModRate, reverbModRange, true),
		uintField(mixer("reverb-mod-depth"), &s.ModDepth, reverbModRange, true),
		intField(mixer("reverb-level-early"), &s.LevelEarly, reverbLevelRange, true),
		intField(mixer("reverb-level-reverb"), &s.LevelReverb, reverbLevelRange, true),
		intField(mixer("reverb-level-dry"), &s.LevelDry, reverbLevelRange, true),
		enumField(mixer("reverb-algorithm"), tcelectronic.ReverbAlgorithms, &s.Algorithm, true),
	}}
}

func reverbMeterCtl(seg *segment.Segment[*tcelectronic.ReverbMeter]) *segCtl {
	m := seg.Data
	return &segCtl{entry: seg, measured: true, fields: []field{
		intsField(mixer("reverb-output-meter"), len(m.Outputs), meterRange,
			func(i int) int32 { return m.Outputs[i] }, nil),
		intsField(mixer("reverb-input-meter"), len(m.Inputs), meterRange,
			func(i int) int32 { return m.Inputs[i] }, nil),
	}}
}

var (
	compGainRange    = intRange{min: 0, max: 360, step: 1}
	compMakeUpRange  = intRange{min: 0, max: 600, step: 1}
	compCtlRange     = intRange{min: 0, max: 200, step: 1}
	compLevelRange   = intRange{min: 0, max: 48, step: 1}
	deesserRange     = intRange{min: 0, max: 10, step: 1}
	eqBandwidthRange = intRange{min: 0, max: 39, step: 1}
	eqGainRange      = intRange{min: 0, max: 240, step: 1}
	eqFreqRange      = intRange{min: 0, max: 240, step: 1}
	limitterRange    = intRange{min: 0, max: 72, step: 1}
)

// chStripCtl exposes every strip of s. Per-band values are laid out strip
// by strip.
func chStripCtl(seg *segment.Segment[tcelectronic.ChStripStates]) *segCtl {
	s := seg.Data
	n := len(s)
	bands := len(s[0].Comp.Ctl)
	eqs := tcelectronic.ChStripEqBands

	u32 := func(id ctl.ElemID, r intRange, per int, p func(strip, i int) *uint32) field {
		return intsField(id, n*per, r,
			func(i int) int32 { return int32(*p(i/per, i%per)) },
			func(i int, v int32) { *p(i/per, i%per) = uint32(v) })
	}
	flag := func(id ctl.ElemID, per int, p func(strip, i int) *bool) field {
		return boolsField(id, n*per,
			func(i int) bool { return *p(i/per, i%per) },
			func(i int, b bool) { *p(i/per, i%per) = b })
	}

	return &segCtl{entry: seg, fields: []field{
		enumsField(mixer("ch-strip-source-type"), n, tcelectronic.ChStripSrcTypes,
			labelsOf(tcelectronic.ChStripSrcTypes),
			func(i int) tcelectronic.ChStripSrcType { return s[i].SrcType },
			func(i int, t tcelectronic.ChStripSrcType) { s[i].SrcType = t }),
		u32(mixer("ch-strip-comp-input-gain"), compGainRange, 1,
			func(st, _ int) *uint32 { return &s[st].Comp.InputGain }),
		u32(mixer("ch-strip-comp-make-up-gain"), compMakeUpRange, 1,
			func(st, _ int) *uint32 { return &s[st].Comp.MakeUpGain }),
		flag(mixer("ch-strip-comp-full-band"), 1,
			func(st, _ int) *bool { return &s[st].Comp.FullBandEnabled }),
		u32(mixer("ch-strip-comp-ctl"), compCtlRange, bands,
			func(st, i int) *uint32 { return &s[st].Comp.Ctl[i] }),
		u32(mixer("ch-strip-comp-level"), compLevelRange, bands,
			func(st, i int) *uint32 { return &s[st].Comp.Level[i] }),
		u32(mixer("ch-strip-deesser-ratio"), deesserRange, 1,
			func(st, _ int) *uint32 { return &s[st].Deesser.Ratio }),
		flag(mixer("ch-strip-deesser-bypass"), 1,
			func(st, _ int) *bool { return &s[st].Deesser.Bypass }),
		flag(mixer("ch-strip-eq-enable"), eqs,
			func(st, i int) *bool { return &s[st].Eq[i].Enabled }),
		u32(mixer("ch-strip-eq-bandwidth"), eqBandwidthRange, eqs,
			func(st, i int) *uint32 { return &s[st].Eq[i].Bandwidth }),
		u32(mixer("ch-strip-eq-gain"), eqGainRange, eqs,
			func(st, i int) *uint32 { return &s[st].Eq[i].Gain }),
		u32(mixer("ch-strip-eq-freq"), eqFreqRange, eqs,
			func(st, i int) *uint32 { return &s[st].Eq[i].Freq }),
		u32(mixer("ch-strip-limitter-threshold"), limitterRange, 1,
			func(st, _ int) *uint32 { return &s[st].Limitter.Threshold }),
		flag(mixer("ch-strip-bypass"), 1,
			func(st, _ int) *bool { return &s[st].Bypass }),
	}}
}

func chStripMeterCtl(seg *segment.Segment[tcelectronic.ChStripMeters]) *segCtl {
	m := seg.Data
	n := len(m)
	gains := len(m[0].Gains)
	return &segCtl{entry: seg, measured: true, fields: []field{
		intsField(mixer("ch-strip-input-meter"), n, meterRange,
			func(i int) int32 { return m[i].Input }, nil),
		intsField(mixer("ch-strip-limit-meter"), n, meterRange,
			func(i int) int32 { return m[i].Limit }, nil),
		intsField(mixer("ch-strip-output-meter"), n, meterRange,
			func(i int) int32 { return m[i].Output }, nil),
		intsField(mixer("ch-strip-gain-meter"), n*gains, meterRange,
			func(i int) int32 { return m[i/gains].Gains[i%gains] }, nil),
	}}
}

// pairFields exposes n mixer source pairs. Gain, volume and pan values are
// laid out left, right for each pair.
func pairFields(group string, n int, pair func(i int) *shell.MonitorSrcPair, mute func(i int) *bool) []field {
	param := func(i int) *shell.MonitorSrcParam {
		if i%2 == 0 {
			return &pair(i / 2).Left
		}
		return &pair(i / 2).Right
	}
	name := func(what string) ctl.ElemID {
		return mixer(fmt.Sprintf("mixer-%s-source-%s", group, what))
	}
	return []field{
		boolsField(name("stereo-link"), n,
			func(i int) bool { return pair(i).StereoLink },
			func(i int, b bool) { pair(i).StereoLink = b }),
		intsField(name("gain"), n*2, levelRange,
			func(i int) int32 { return param(i).InputGain },
			func(i int, v int32) { param(i).InputGain = v }),
		intsField(name("volume"), n*2, levelRange,
			func(i int) int32 { return param(i).Volume },
			func(i int, v int32) { param(i).Volume = v }),
		intsField(name("pan"), n*2, panRange,
			func(i int) int32 { return param(i).Pan },
			func(i int, v int32) { param(i).Pan = v }),
		boolsField(name("mute"), n,
			func(i int) bool { return *mute(i) },
			func(i int, b bool) { *mute(i) = b }),
	}
}

func mixerFields(s *shell.MixerState) []field {
	fields := pairFields("stream", 1,
		func(int) *shell.MonitorSrcPair { return &s.Stream },
		func(int) *bool { return &s.MuteStream })
	if n := len(s.Analog); n > 0 {
		fields = append(fields, pairFields("analog", n,
			func(i int) *shell.MonitorSrcPair { return &s.Analog[i] },
			func(i int) *bool { return &s.MuteAnalog[i] })...)
	}
	if n := len(s.Digital); n > 0 {
		fields = append(fields, pairFields("digital", n,
			func(i int) *shell.MonitorSrcPair { return &s.Digital[i] },
			func(i int) *bool { return &s.MuteDigital[i] })...)
	}
	return append(fields,
		intField(mixer("mixer-output-volume"), &s.OutputVolume, levelRange, true),
		boolField(mixer("mixer-output-dim-enable"), &s.OutputDimEnabled, true),
		intField(mixer("mixer-output-dim-volume"), &s.OutputDimVolume, levelRange, true),
	)
}

func mixerMeterCtl(seg *segment.Segment[*shell.MixerMeter]) *segCtl {
	m := seg.Data
	fields := []field{
		intsField(mixer("mixer-stream-input-meters"), len(m.StreamInputs), meterRange,
			func(i int) int32 { return m.StreamInputs[i] }, nil),
	}
	if n := len(m.AnalogInputs); n > 0 {
		fields = append(fields, intsField(mixer("mixer-analog-input-meters"), n, meterRange,
			func(i int) int32 { return m.AnalogInputs[i] }, nil))
	}
	if n := len(m.DigitalInputs); n > 0 {
		fields = append(fields, intsField(mixer("mixer-digital-input-meters"), n, meterRange,
			func(i int) int32 { return m.DigitalInputs[i] }, nil))
	}
	fields = append(fields, intsField(mixer("mixer-main-output-meters"), len(m.MainOutputs), meterRange,
		func(i int) int32 { return m.MainOutputs[i] }, nil))
	return &segCtl{entry: seg, measured: true, fields: fields}
}
