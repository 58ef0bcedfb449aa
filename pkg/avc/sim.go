package avc

import (
	"encoding/binary"
	"errors"
	"sync"
	"time"
)

// ErrShortCommand is returned by Sim for frames too short to carry a
// feature command.
var ErrShortCommand = errors.New("avc: short command frame")

type simKey struct {
	fb  uint8
	sel uint8
	ch  AudioCh
}

// Sim is an in-process audio subunit answering feature function block
// commands. It is safe for concurrent use.
type Sim struct {
	mu       sync.Mutex
	ranges   map[uint8]VolumeRange
	volumes  map[simKey]int16
	mutes    map[simKey]bool
	commands int
}

// NewSim returns a subunit with no function blocks.
func NewSim() *Sim {
	return &Sim{
		ranges:  make(map[uint8]VolumeRange),
		volumes: make(map[simKey]int16),
		mutes:   make(map[simKey]bool),
	}
}

// AddVolume adds a volume function block with the given channels. Every
// channel starts at r.Max.
func (s *Sim) AddVolume(fbID uint8, r VolumeRange, chs ...AudioCh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges[fbID] = r
	for _, ch := range chs {
		s.volumes[simKey{fbID, SelectorVolume, ch}] = r.Max
	}
}

// AddMute adds a mute function block with the given channels.
func (s *Sim) AddMute(fbID uint8, chs ...AudioCh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range chs {
		s.mutes[simKey{fbID, SelectorMute, ch}] = false
	}
}

// Volume returns the current volume of a channel.
func (s *Sim) Volume(fbID uint8, ch AudioCh) int16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volumes[simKey{fbID, SelectorVolume, ch}]
}

// Mute returns the current mute switch of a channel.
func (s *Sim) Mute(fbID uint8, ch AudioCh) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutes[simKey{fbID, SelectorMute, ch}]
}

// Commands returns the number of frames handled.
func (s *Sim) Commands() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands
}

// Transaction implements FCP.
func (s *Sim) Transaction(cmd []byte, _ time.Duration) ([]byte, error) {
	if len(cmd) < headerLen {
		return nil, ErrShortCommand
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands++

	resp := append([]byte(nil), cmd...)
	if cmd[2] != opcodeFunctionBlock || cmd[3] != featureFBType || cmd[6] != selectorLength {
		resp[0] = uint8(RCodeNotImplemented)
		return resp, nil
	}

	ctype := CType(cmd[0])
	key := simKey{fb: cmd[4], sel: cmd[8], ch: AudioCh(cmd[7])}
	attr := CtlAttr(cmd[5])
	data := resp[headerLen:]

	switch key.sel {
	case SelectorVolume:
		resp[0] = uint8(s.volume(ctype, attr, key, data))
	case SelectorMute:
		resp[0] = uint8(s.mute(ctype, attr, key, data))
	default:
		resp[0] = uint8(RCodeNotImplemented)
	}
	return resp, nil
}

func (s *Sim) volume(ctype CType, attr CtlAttr, key simKey, data []byte) RCode {
	cur, ok := s.volumes[key]
	if !ok || len(data) < 2 {
		return RCodeNotImplemented
	}
	r := s.ranges[key.fb]

	if ctype == CTypeStatus {
		var v int16
		switch attr {
		case AttrCurrent:
			v = cur
		case AttrMinimum:
			v = r.Min
		case AttrMaximum:
			v = r.Max
		case AttrResolution:
			v = r.Step
		default:
			return RCodeNotImplemented
		}
		binary.BigEndian.PutUint16(data, uint16(v))
		return RCodeImplemented
	}

	if ctype != CTypeControl || attr != AttrCurrent {
		return RCodeNotImplemented
	}
	v := int16(binary.BigEndian.Uint16(data))
	if v != NegInfinity && (v < r.Min || v > r.Max) {
		return RCodeRejected
	}
	s.volumes[key] = v
	return RCodeAccepted
}

func (s *Sim) mute(ctype CType, attr CtlAttr, key simKey, data []byte) RCode {
	cur, ok := s.mutes[key]
	if !ok || len(data) < 1 || attr != AttrCurrent {
		return RCodeNotImplemented
	}

	switch ctype {
	case CTypeStatus:
		if cur {
			data[0] = muteOn
		} else {
			data[0] = muteOff
		}
		return RCodeImplemented
	case CTypeControl:
		switch data[0] {
		case muteOn:
			s.mutes[key] = true
		case muteOff:
			s.mutes[key] = false
		default:
			return RCodeRejected
		}
		return RCodeAccepted
	default:
		return RCodeNotImplemented
	}
}
