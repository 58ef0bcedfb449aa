package unit

import (
	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic/desktop"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic/shell"
)

func kliveKnobCtl(seg *segment.Segment[*shell.KliveKnob]) *segCtl {
	k := seg.Data
	return &segCtl{entry: seg, fields: []field{
		indexField(mixer("knob-target"), shell.KliveKnobTargetLabels, &k.Target, true),
		indexField(mixer("knob2-target"), shell.KliveKnob2TargetLabels, &k.Knob2Target, true),
		enumField(mixer("loaded-program"), tcelectronic.LoadedPrograms, &k.Prog, true),
		enumsField(mixer("output-impedance"), len(k.OutImpedance),
			shell.OutputImpedances, labelsOf(shell.OutputImpedances),
			func(i int) shell.OutputImpedance { return k.OutImpedance[i] },
			func(i int, v shell.OutputImpedance) { k.OutImpedance[i] = v }),
	}}
}

var midiRange = intRange{min: 0, max: 127, step: 1}

func midiSenderFields(s *tcelectronic.MidiSender) []field {
	params := []*tcelectronic.MidiMsgParams{&s.Normal, &s.Pushed}
	u8 := func(name string, max int32, p func(m *tcelectronic.MidiMsgParams) *uint8) field {
		return intsField(mixer(name), len(params), intRange{min: 0, max: max, step: 1},
			func(i int) int32 { return int32(*p(params[i])) },
			func(i int, v int32) { *p(params[i]) = uint8(v) })
	}
	return []field{
		u8("midi-sender-channel", 15, func(m *tcelectronic.MidiMsgParams) *uint8 { return &m.Ch }),
		u8("midi-sender-cc", midiRange.max, func(m *tcelectronic.MidiMsgParams) *uint8 { return &m.CC }),
		u8("midi-sender-lower", midiRange.max, func(m *tcelectronic.MidiMsgParams) *uint8 { return &m.Lower }),
		u8("midi-sender-upper", midiRange.max, func(m *tcelectronic.MidiMsgParams) *uint8 { return &m.Upper }),
		boolField(mixer("midi-sender-send-init-at-load"), &s.SendInitAtLoad, true),
	}
}

func kliveConfigCtl(seg *segment.Segment[*shell.KliveConfig]) *segCtl {
	c := seg.Data
	fields := []field{
		enumField(mixer("opt-input-format"), shell.OptInFormats, &c.Opt.InputFormat, true),
		enumField(mixer("opt-output-format"), shell.OptOutFormats, &c.Opt.OutputFormat, true),
		enumField(mixer("opt-output-source"), shell.PhysOutSrcs, &c.Opt.OutputSrc, true),
		enumField(mixer("coax-output-source"), shell.PhysOutSrcs, &c.CoaxOutSrc, true),
		enumField(mixer("analog-output-1/2-source"), shell.PhysOutSrcs, &c.Out01Src, true),
		enumField(mixer("analog-output-3/4-source"), shell.PhysOutSrcs, &c.Out23Src, true),
		indexField(mixer("mixer-stream-source-pair"),
			shell.StreamSrcPairLabels(shell.KliveStreamSrcPairCount), &c.MixerStreamSrcPair, true),
		enumField(mixer("standalone-clock-source"), shell.KliveStandaloneSrcs, &c.StandaloneSrc, true),
		enumField(mixer("standalone-clock-rate"), tcelectronic.StandaloneClkRates, &c.StandaloneRate, true),
	}
	return &segCtl{entry: seg, fields: append(fields, midiSenderFields(&c.MidiSender)...)}
}

func kliveMixerCtl(seg *segment.Segment[*shell.KliveMixerState]) *segCtl {
	s := seg.Data
	fields := mixerFields(&s.Mixer)
	fields = append(fields,
		boolField(mixer("reverb-return-plugin-mode"), &s.ReverbReturn.PluginMode, true),
		intField(mixer("reverb-return-gain"), &s.ReverbReturn.ReturnGain, levelRange, true),
		boolField(mixer("reverb-return-mute"), &s.ReverbReturn.ReturnMute, true),
		boolField(mixer("use-ch-strip-as-plugin"), &s.UseChStripAsPlugin, true),
		enumField(mixer("ch-strip-source"), shell.ChStripSrcs, &s.ChStripSrc, true),
		enumField(mixer("ch-strip-mode"), shell.ChStripModes, &s.ChStripMode, true),
		boolField(mixer("use-reverb-at-mid-rate"), &s.UseReverbAtMidRate, true),
		boolField(mixer("mixer-enable"), &s.Enabled, true),
	)
	return &segCtl{entry: seg, fields: fields}
}

func newKlive(d Deps) (*segModel, error) {
	s := shell.NewKliveSegments()
	return newSegModel(shell.KliveModel, d.mediator(), d.timeout(),
		kliveKnobCtl(s.Knob),
		kliveConfigCtl(s.Config),
		kliveMixerCtl(s.Mixer),
		reverbCtl(s.Reverb),
		chStripCtl(s.ChStrip),
		hwStateCtl(s.HwState, s.HwState.Data),
		mixerMeterCtl(s.MixerMeter),
		reverbMeterCtl(s.ReverbMeter),
		chStripMeterCtl(s.ChStripMeter),
	)
}

func newItwin(d Deps) (*segModel, error) {
	s := shell.NewItwinSegments()
	hw := s.HwState.Data
	return newSegModel(shell.ItwinModel, d.mediator(), d.timeout(),
		reverbCtl(s.Reverb),
		chStripCtl(s.ChStrip),
		hwStateCtl(s.HwState, &hw.HwState,
			enumField(mixer("listening-mode"), shell.ListeningModes, &hw.ListeningMode, true)),
		reverbMeterCtl(s.ReverbMeter),
		chStripMeterCtl(s.ChStripMeter),
	)
}

func newK8(d Deps) (*segModel, error) {
	s := shell.NewK8Segments()
	return newSegModel(shell.K8Model, d.mediator(), d.timeout(),
		hwStateCtl(s.HwState, s.HwState.Data),
	)
}

var (
	knobRange    = intRange{min: -1000, max: 0, step: 1}
	mixKnobRange = intRange{min: 0, max: 1000, step: 1}
	countRange   = intRange{min: 0, max: 1<<31 - 1, step: 1}
	desktopMeter = intRange{min: -1000, max: 0, step: 1, db: &ctl.DBRange{Min: -9400, Max: 0}}
)

func desktopPanelCtl(seg *segment.Segment[*desktop.Panel]) *segCtl {
	p := seg.Data
	card := ctl.CardID
	return &segCtl{entry: seg, fields: []field{
		uintField(card("panel-button-count"), &p.PanelButtonCount, countRange, false),
		intField(card("main-knob-value"), &p.MainKnobValue, knobRange, false),
		intField(card("phone-knob-value"), &p.PhoneKnobValue, knobRange, false),
		uintField(card("mix-knob-value"), &p.MixKnobValue, mixKnobRange, false),
		boolField(card("reverb-led-state"), &p.ReverbLedOn, true),
		intField(card("reverb-knob-value"), &p.ReverbKnobValue, knobRange, false),
		enumField(mixer("firewire-led-state"), tcelectronic.FireWireLedStates, &p.FireWireLed, true),
	}}
}

func desktopMeterCtl(seg *segment.Segment[*desktop.Meter]) *segCtl {
	m := seg.Data
	return &segCtl{entry: seg, measured: true, fields: []field{
		intsField(mixer("analog-input-meters"), len(m.AnalogInputs), desktopMeter,
			func(i int) int32 { return m.AnalogInputs[i] }, nil),
		intsField(mixer("mixer-output-meters"), len(m.MixerOutputs), desktopMeter,
			func(i int) int32 { return m.MixerOutputs[i] }, nil),
		intsField(mixer("stream-input-meters"), len(m.StreamInputs), desktopMeter,
			func(i int) int32 { return m.StreamInputs[i] }, nil),
	}}
}

func desktopHwCtl(seg *segment.Segment[*desktop.HwState]) *segCtl {
	h := seg.Data
	return &segCtl{entry: seg, fields: []field{
		enumField(mixer("meter-target"), desktop.MeterTargets, &h.MeterTarget, true),
		boolField(mixer("mixer-output-monaural"), &h.MixerOutputMonaural, true),
		boolField(mixer("knob-assign-to-headphone"), &h.KnobToHeadphone, true),
		boolField(mixer("output-dim-enable"), &h.DimEnabled, true),
		intField(mixer("output-dim-volume"), &h.DimVolume, levelRange, true),
	}}
}

func desktopConfigCtl(seg *segment.Segment[*desktop.Config]) *segCtl {
	return &segCtl{entry: seg, fields: []field{
		enumField(mixer("standalone-clock-rate"), tcelectronic.StandaloneClkRates, &seg.Data.StandaloneRate, true),
	}}
}

func newDesktop(d Deps) (*segModel, error) {
	s := desktop.NewSegments()
	return newSegModel(desktop.Model, d.mediator(), d.timeout(),
		desktopConfigCtl(s.Config),
		desktopHwCtl(s.HwState),
		desktopPanelCtl(s.Panel),
		desktopMeterCtl(s.Meter),
	)
}
