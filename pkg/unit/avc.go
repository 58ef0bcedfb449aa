package unit

import (
	"errors"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/avc"
	"github.com/fwaudio/fwctl-go/pkg/ctl"
)

// Element names shared with the kernel drivers of the AV/C units.
const (
	pcmVolumeName = "PCM Playback Volume"
	pcmMuteName   = "PCM Playback Switch"
)

var (
	pcmVolumeID = mixer(pcmVolumeName)
	pcmMuteID   = mixer(pcmMuteName)
)

// playbackModel exposes a playback volume and mute of an AV/C audio
// subunit. When the kernel driver already provides the elements the model
// stays out of the way.
type playbackModel struct {
	client  *avc.Client
	timeout time.Duration

	volFB  uint8
	muteFB uint8
	chs    []avc.AudioCh

	voluntary bool
}

func newLacie(d Deps) *playbackModel {
	return &playbackModel{
		client:  avc.NewClient(d.FCP),
		timeout: d.fcpTimeout(),
		volFB:   0x01,
		muteFB:  0x01,
		chs:     []avc.AudioCh{avc.AudioChAll},
	}
}

// griffinChannels maps element value positions to the channels of the
// volume function block.
var griffinChannels = []avc.AudioCh{0, 1, 4, 5, 2, 3}

func newGriffin(d Deps) *playbackModel {
	return &playbackModel{
		client:  avc.NewClient(d.FCP),
		timeout: d.fcpTimeout(),
		volFB:   0x02,
		muteFB:  0x01,
		chs:     griffinChannels,
	}
}

func (m *playbackModel) Load(card ctl.Card) error {
	r, err := m.client.ReadVolumeRange(m.volFB, avc.AudioChAll, m.timeout)
	if err != nil {
		return err
	}
	err = card.AddIntElems(pcmVolumeID, len(m.chs), int32(r.Min), int32(r.Max), max(int32(r.Step), 1), nil, true)
	if errors.Is(err, ctl.ErrElemExists) {
		return nil
	}
	if err != nil {
		return err
	}
	m.voluntary = true
	return card.AddBoolElems(pcmMuteID, 1, true)
}

func (m *playbackModel) Read(id ctl.ElemID, v *ctl.ElemValue) (bool, error) {
	if !m.voluntary {
		return false, nil
	}
	switch id {
	case pcmVolumeID:
		vals := make([]int32, len(m.chs))
		for i, ch := range m.chs {
			vol, err := m.client.ReadVolume(m.volFB, ch, m.timeout)
			if err != nil {
				return false, err
			}
			vals[i] = int32(vol)
		}
		v.Ints = vals
	case pcmMuteID:
		on, err := m.client.ReadMute(m.muteFB, avc.AudioChAll, m.timeout)
		if err != nil {
			return false, err
		}
		v.Bools = []bool{on}
	default:
		return false, nil
	}
	return true, nil
}

// Write sends only the channels whose value changed.
func (m *playbackModel) Write(id ctl.ElemID, old, new ctl.ElemValue) (bool, error) {
	if !m.voluntary {
		return false, nil
	}
	switch id {
	case pcmVolumeID:
		for i, ch := range m.chs {
			if i < len(old.Ints) && old.Ints[i] == new.Ints[i] {
				continue
			}
			if err := m.client.WriteVolume(m.volFB, ch, int16(new.Ints[i]), m.timeout); err != nil {
				return false, err
			}
		}
	case pcmMuteID:
		if err := m.client.WriteMute(m.muteFB, avc.AudioChAll, new.Bools[0], m.timeout); err != nil {
			return false, err
		}
	default:
		return false, nil
	}
	return true, nil
}

const outputVolumeName = "output-volume"

var outputVolumeID = mixer(outputVolumeName)

// Stanton ScratchAmp outputs, two channels per function block.
var (
	scratchampFBs    = []uint8{1, 2, 3}
	scratchampLabels = []string{
		"analog-1", "analog-2", "analog-3", "analog-4",
		"headphone-1", "headphone-2",
	}
)

const scratchampVolStep = 0x0080

// scratchampModel exposes the output volumes. A muted output reads as
// avc.CtlValueMute.
type scratchampModel struct {
	client  *avc.Client
	timeout time.Duration
}

func newScratchamp(d Deps) *scratchampModel {
	return &scratchampModel{client: avc.NewClient(d.FCP), timeout: d.fcpTimeout()}
}

func (m *scratchampModel) target(i int) (uint8, avc.AudioCh) {
	return scratchampFBs[i/2], avc.Channel(i % 2)
}

func (m *scratchampModel) Load(card ctl.Card) error {
	return card.AddIntElems(outputVolumeID, len(scratchampLabels),
		avc.CtlVolumeMin, 0, scratchampVolStep,
		&ctl.DBRange{Min: -12800, Max: 0, Mute: true}, true, avc.CtlValueMute)
}

func (m *scratchampModel) Read(id ctl.ElemID, v *ctl.ElemValue) (bool, error) {
	if id != outputVolumeID {
		return false, nil
	}
	vals := make([]int32, len(scratchampLabels))
	for i := range vals {
		fb, ch := m.target(i)
		vol, err := m.client.ReadVolume(fb, ch, m.timeout)
		if err != nil {
			return false, err
		}
		vals[i] = avc.VolumeToCtl(vol)
	}
	v.Ints = vals
	return true, nil
}

func (m *scratchampModel) Write(id ctl.ElemID, old, new ctl.ElemValue) (bool, error) {
	if id != outputVolumeID {
		return false, nil
	}
	for i, n := range new.Ints {
		if i < len(old.Ints) && old.Ints[i] == n {
			continue
		}
		vol, err := avc.CtlToVolume(n)
		if err != nil {
			return false, err
		}
		fb, ch := m.target(i)
		if err := m.client.WriteVolume(fb, ch, vol, m.timeout); err != nil {
			return false, err
		}
	}
	return true, nil
}
