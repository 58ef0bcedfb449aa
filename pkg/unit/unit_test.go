package unit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/avc"
	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic/desktop"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic/shell"
	"github.com/fwaudio/fwctl-go/pkg/transport"
	"github.com/fwaudio/fwctl-go/pkg/version"
)

const (
	testBase    uint64 = 0xffffe0a01000
	testTimeout        = 20 * time.Millisecond
)

func u32(v uint32) []byte {
	raw := make([]byte, 4)
	quadlet.BuildU32(raw, v)
	return raw
}

func i32(v int32) []byte {
	raw := make([]byte, 4)
	quadlet.BuildI32(raw, v)
	return raw
}

func load(t *testing.T, k Kind, d Deps) *ctl.Dispatcher {
	t.Helper()
	d.Timeout = testTimeout
	m, err := New(k, d)
	require.NoError(t, err)
	disp := ctl.NewDispatcher(m, ctl.NewMemoryCard())
	require.NoError(t, disp.Load())
	return disp
}

func TestDetect(t *testing.T) {
	tests := []struct {
		vendor, model uint32
		want          Kind
	}{
		{0x000166, 0x000023, KindKlive},
		{0x000166, 0x000027, KindItwin},
		{0x000166, 0x000021, KindK8},
		{0x000166, 0x000024, KindDesktopK6},
		{0x000d6c, 0x000010, KindProFire2626},
		{0x00d04b, 0x00f970, KindLacie},
		{0x001292, 0x00f970, KindGriffin},
	}
	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			k, err := Detect(tc.vendor, tc.model)
			require.NoError(t, err)
			assert.Equal(t, tc.want, k)
		})
	}

	_, err := Detect(0x0003db, 0x01eeee)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("ensemble")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = New(Kind(99), Deps{Transport: transport.NewMemory(0, 4)})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = New(KindLacie, Deps{})
	assert.Error(t, err)
	_, err = New(KindKlive, Deps{})
	assert.Error(t, err)
}

func TestKliveLoadAndWrite(t *testing.T) {
	mem := transport.NewMemory(testBase, 0x1200)
	mem.Store(testBase+0x1008, u32(0x07))
	mem.Store(testBase+0x1008+20, u32(2))
	d := load(t, KindKlive, Deps{Transport: mem, Base: testBase})

	v, err := d.Get(ctl.MixerID("analog-jack-state"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 0}, v.Enums)

	v, err = d.Get(ctl.MixerID("firewire-led-state"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, v.Enums)

	// Changing one value touches one quadlet.
	mem.ResetAccesses()
	require.NoError(t, d.Set(ctl.MixerID("mixer-output-volume"), ctl.IntValue(-100)))
	assert.Equal(t, []transport.Access{
		{Op: transport.OpWrite, Offset: testBase + 0x00ac + 284, Length: 4},
	}, mem.Accesses())
	assert.Equal(t, i32(-100), mem.Load(testBase+0x00ac+284, 4))

	// Right channel of the second analog pair, slot 5 of the segment.
	require.NoError(t, d.Set(ctl.MixerID("mixer-analog-source-volume"), ctl.IntValue(0, 0, 0, -5)))
	assert.Equal(t, i32(-5), mem.Load(testBase+0x00ac+5*28+20, 4))

	// Mute of analog pair 0 is bit 8 of the mute quadlet.
	require.NoError(t, d.Set(ctl.MixerID("mixer-analog-source-mute"),
		ctl.BoolValue(true, false)))
	assert.Equal(t, u32(0x00000100), mem.Load(testBase+0x00ac+280, 4))

	require.NoError(t, d.Set(ctl.MixerID("ch-strip-source"), ctl.EnumValue(5)))
	assert.Equal(t, u32(8), mem.Load(testBase+0x00ac+332, 4))
}

func TestKliveWriteFailureKeepsState(t *testing.T) {
	mem := transport.NewMemory(testBase, 0x1200)
	d := load(t, KindKlive, Deps{Transport: mem, Base: testBase})
	id := ctl.MixerID("reverb-bypass")

	mem.FailNext(transport.OpWrite, transport.ErrTimeout)
	err := d.Set(id, ctl.BoolValue(true))
	assert.ErrorIs(t, err, transport.ErrTimeout)

	v, err := d.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, v.Bools)

	// The next write starts from the device image, not the failed one.
	require.NoError(t, d.Set(ctl.MixerID("reverb-kill-wet"), ctl.BoolValue(true)))
	assert.Equal(t, u32(0), mem.Load(testBase+0x0218+4, 4))
	assert.Equal(t, u32(1), mem.Load(testBase+0x0218+8, 4))
}

func TestKlivePartialWriteFollowsDevice(t *testing.T) {
	failSecond := false
	mem := transport.NewMemory(testBase, 0x1200, transport.WithWriteHook(func(m *transport.Memory, _ uint64, _ []byte) {
		if failSecond {
			failSecond = false
			m.FailNext(transport.OpWrite, transport.ErrTimeout)
		}
	}))
	d := load(t, KindKlive, Deps{Transport: mem, Base: testBase})
	id := ctl.MixerID("ch-strip-comp-input-gain")

	failSecond = true
	err := d.Set(id, ctl.IntValue(1, 1))
	assert.ErrorIs(t, err, transport.ErrTimeout)

	// Strip 0 reached the device, strip 1 did not.
	v, err := d.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 0}, v.Ints)

	mem.ResetAccesses()
	require.NoError(t, d.Set(id, ctl.IntValue(0, 0)))
	writes := 0
	for _, a := range mem.Accesses() {
		if a.Op == transport.OpWrite {
			writes++
		}
	}
	assert.Equal(t, 1, writes, "only strip 0 differs from the device")

	fresh := load(t, KindKlive, Deps{Transport: mem, Base: testBase})
	v, err = fresh.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 0}, v.Ints)
}

func TestKliveNotifyAndMeasure(t *testing.T) {
	mem := transport.NewMemory(testBase, 0x1200)
	d := load(t, KindKlive, Deps{Transport: mem, Base: testBase})

	mem.Store(testBase+0x1008, u32(0x09))
	mem.Store(testBase+0x0004, u32(2))
	changed, err := d.Notify(shell.HwStateNotifyFlag)
	require.NoError(t, err)
	assert.Equal(t, []ctl.ElemID{ctl.MixerID("analog-jack-state")}, changed)

	// Knob segment was not flagged.
	v, _ := d.Get(ctl.MixerID("knob-target"))
	assert.Equal(t, []uint32{0}, v.Enums)

	changed, err = d.Notify(shell.KnobNotifyFlag)
	require.NoError(t, err)
	assert.Contains(t, changed, ctl.MixerID("knob-target"))

	assert.True(t, d.Measures())
	mem.Store(testBase+0x1068+72, i32(-30))
	changed, err = d.Measure()
	require.NoError(t, err)
	assert.Equal(t, []ctl.ElemID{ctl.MixerID("mixer-main-output-meters")}, changed)
	v, _ = d.Get(ctl.MixerID("mixer-main-output-meters"))
	assert.Equal(t, []int32{-30, 0}, v.Ints)
}

func TestItwinListeningModeKeepsBits(t *testing.T) {
	mem := transport.NewMemory(testBase, 0x1200)
	mem.Store(testBase+0x1008+8, u32(0xf4))
	d := load(t, KindItwin, Deps{Transport: mem, Base: testBase})

	v, err := d.Get(ctl.MixerID("listening-mode"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, v.Enums)

	require.NoError(t, d.Set(ctl.MixerID("listening-mode"), ctl.EnumValue(2)))
	assert.Equal(t, u32(0xf6), mem.Load(testBase+0x1008+8, 4))

	_, err = d.Get(ctl.MixerID("knob-target"))
	assert.ErrorIs(t, err, ctl.ErrElemNotFound)
}

func TestK8HasOnlyHwState(t *testing.T) {
	mem := transport.NewMemory(testBase, 0x1200)
	d := load(t, KindK8, Deps{Transport: mem, Base: testBase})

	infos := d.Card().Elements()
	require.Len(t, infos, 2)
	assert.Equal(t, "analog-jack-state", infos[0].ID.Name)
	assert.False(t, infos[0].Writable)
	assert.False(t, d.Measures())

	for _, a := range mem.Accesses() {
		assert.Equal(t, testBase+0x1008, a.Offset)
	}
}

func TestDesktopPanel(t *testing.T) {
	mem := transport.NewMemory(testBase, 0x200)
	mem.Store(testBase+0x0040, u32(3))
	mem.Store(testBase+0x0040+4, i32(-200))
	d := load(t, KindDesktopK6, Deps{Transport: mem, Base: testBase})

	v, err := d.Get(ctl.CardID("panel-button-count"))
	require.NoError(t, err)
	assert.Equal(t, []int32{3}, v.Ints)
	v, _ = d.Get(ctl.CardID("main-knob-value"))
	assert.Equal(t, []int32{-200}, v.Ints)

	assert.ErrorIs(t, d.Set(ctl.CardID("main-knob-value"), ctl.IntValue(0)), ctl.ErrElemNotWritable)

	require.NoError(t, d.Set(ctl.CardID("reverb-led-state"), ctl.BoolValue(true)))
	assert.Equal(t, u32(1), mem.Load(testBase+0x0040+16, 4))

	mem.Store(testBase+0x0040, u32(4))
	changed, err := d.Notify(desktop.PanelNotifyFlag)
	require.NoError(t, err)
	assert.Equal(t, []ctl.ElemID{ctl.CardID("panel-button-count")}, changed)

	mem.Store(testBase+0x0140+4, i32(-10))
	changed, err = d.Measure()
	require.NoError(t, err)
	assert.Equal(t, []ctl.ElemID{ctl.MixerID("analog-input-meters")}, changed)
}

func TestProFire(t *testing.T) {
	mem := transport.NewMemory(testBase, 8)
	mem.Store(testBase, u32(0x10))
	d := load(t, KindProFire2626, Deps{Transport: mem, Base: testBase})

	v, err := d.Get(optIfaceBID)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, v.Enums)

	require.NoError(t, d.Set(knobAssignID, ctl.BoolValue(true, false, true, false)))
	assert.Equal(t, u32(0x15), mem.Load(testBase, 4))

	require.NoError(t, d.Set(standaloneID, ctl.EnumValue(1)))
	assert.Equal(t, u32(0x02), mem.Load(testBase+4, 4))

	d610 := load(t, KindProFire610, Deps{Transport: transport.NewMemory(testBase, 8), Base: testBase})
	_, err = d610.Get(optIfaceBID)
	assert.ErrorIs(t, err, ctl.ErrElemNotFound)
}

func TestGriffinWritesChangedChannels(t *testing.T) {
	sim := avc.NewSim()
	sim.AddVolume(0x02, avc.VolumeRange{Min: -0x7f00, Max: 0, Step: 0x100},
		avc.AudioChAll, 0, 1, 2, 3, 4, 5)
	sim.AddMute(0x01, avc.AudioChAll)
	d := load(t, KindGriffin, Deps{FCP: sim})

	info, err := d.Card().Info(pcmVolumeID)
	require.NoError(t, err)
	assert.Equal(t, 6, info.Count)
	assert.Equal(t, int32(-0x7f00), info.Min)

	before := sim.Commands()
	require.NoError(t, d.Set(pcmVolumeID, ctl.IntValue(0, 0, -0x100, 0, 0, 0)))
	assert.Equal(t, 1, sim.Commands()-before)
	assert.Equal(t, int16(-0x100), sim.Volume(0x02, 4))
	assert.Equal(t, int16(0), sim.Volume(0x02, 2))

	require.NoError(t, d.Set(pcmMuteID, ctl.BoolValue(true)))
	assert.True(t, sim.Mute(0x01, avc.AudioChAll))
}

func TestLacie(t *testing.T) {
	sim := avc.NewSim()
	sim.AddVolume(0x01, avc.VolumeRange{Min: -0x6000, Max: 0x0100, Step: 0x80}, avc.AudioChAll)
	sim.AddMute(0x01, avc.AudioChAll)
	d := load(t, KindLacie, Deps{FCP: sim})

	v, err := d.Get(pcmVolumeID)
	require.NoError(t, err)
	assert.Equal(t, []int32{0x0100}, v.Ints)

	require.NoError(t, d.Set(pcmVolumeID, ctl.IntValue(-0x1000)))
	assert.Equal(t, int16(-0x1000), sim.Volume(0x01, avc.AudioChAll))
	assert.ErrorIs(t, d.Set(pcmVolumeID, ctl.IntValue(0x0200)), ctl.ErrValueOutOfRange)
}

func TestScratchampMuteSentinel(t *testing.T) {
	sim := avc.NewSim()
	for _, fb := range scratchampFBs {
		sim.AddVolume(fb, avc.VolumeRange{Min: avc.NegInfinity, Max: 0, Step: scratchampVolStep}, 0, 1)
	}
	d := load(t, KindScratchamp, Deps{FCP: sim})

	require.NoError(t, d.Set(outputVolumeID, ctl.IntValue(avc.CtlValueMute, 0, -0x1000, 0, 0, 0)))
	assert.Equal(t, avc.NegInfinity, sim.Volume(1, 0))
	assert.Equal(t, int16(-0x1000), sim.Volume(2, 0))

	m := &scratchampModel{client: avc.NewClient(sim), timeout: testTimeout}
	var v ctl.ElemValue
	ok, err := m.Read(outputVolumeID, &v)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, avc.CtlValueMute, v.Ints[0])
	assert.Equal(t, int32(-0x1000), v.Ints[2])

	// The wire minimum is not a numeric control value.
	err = d.Set(outputVolumeID, ctl.IntValue(-0x8000, 0, 0, 0, 0, 0))
	assert.ErrorIs(t, err, ctl.ErrValueOutOfRange)
}

func TestRegistriesMatchLayout(t *testing.T) {
	layout, err := version.LoadCurrentLayout()
	require.NoError(t, err)

	for _, k := range []Kind{KindKlive, KindItwin, KindK8, KindDesktopK6} {
		t.Run(k.String(), func(t *testing.T) {
			m, err := New(k, Deps{Transport: transport.NewMemory(testBase, 0x1200), Base: testBase})
			require.NoError(t, err)
			reg, ok := m.(Registrar)
			require.True(t, ok)

			var segs []version.SegmentLayout
			for _, e := range reg.Registry().Entries() {
				d := e.Descriptor()
				segs = append(segs, version.SegmentLayout{
					Name: d.Name, Offset: d.Offset, Size: d.Size, Notify: d.NotifyFlag,
				})
			}
			res := layout.ValidateModel(reg.Registry().Model(), segs)
			assert.True(t, res.Valid, "%v", res.Errors)
		})
	}

	m, err := New(KindLacie, Deps{FCP: avc.NewSim()})
	require.NoError(t, err)
	_, ok := m.(Registrar)
	assert.False(t, ok)
}
