// Package maudio implements the application section protocol of the
// M-Audio ProFire 2626 and 610.
//
// Both models keep their vendor specific settings in two quadlets at the
// start of the DICE application section. Every write is a read-modify-write
// of a single quadlet so that bits owned by the firmware survive.
package maudio

import (
	"fmt"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/transport"
)

// KnobCount is the number of output pairs the master knob can control.
const KnobCount = 4

// Register layout relative to the application section.
const (
	KnobAssignOffset     = 0x00
	StandaloneModeOffset = 0x04

	KnobAssignMask                uint32 = 0x0000000f
	OptIfaceBIsSpdifFlag          uint32 = 0x00000010
	StandaloneConverterADOnlyFlag uint32 = 0x00000002
)

// OptIfaceMode is the frame format of the second optical interface.
type OptIfaceMode uint8

// Optical interface modes.
const (
	OptIfaceAdat OptIfaceMode = iota
	OptIfaceSpdif
)

// OptIfaceModes lists the modes in label order.
var OptIfaceModes = []OptIfaceMode{OptIfaceSpdif, OptIfaceAdat}

func (m OptIfaceMode) String() string {
	if m == OptIfaceSpdif {
		return "S/PDIF"
	}
	return "ADAT"
}

// StandaloneConverterMode is the converter mode used without a host.
type StandaloneConverterMode uint8

// Converter modes.
const (
	ConverterADDA StandaloneConverterMode = iota
	ConverterADOnly
)

// StandaloneConverterModes lists the modes in label order.
var StandaloneConverterModes = []StandaloneConverterMode{ConverterADDA, ConverterADOnly}

func (m StandaloneConverterMode) String() string {
	if m == ConverterADOnly {
		return "A/D-only"
	}
	return "A/D-D/A"
}

// Protocol accesses the application section of one unit.
type Protocol struct {
	t    transport.Transport
	base uint64
}

// New returns a Protocol for the application section at applBase.
func New(t transport.Transport, applBase uint64) *Protocol {
	return &Protocol{t: t, base: applBase}
}

func (p *Protocol) read(offset uint64, timeout time.Duration) ([]byte, error) {
	buf := make([]byte, quadlet.Size)
	if err := p.t.Read(p.base+offset, buf, timeout); err != nil {
		return nil, fmt.Errorf("maudio: read %#x: %w", offset, err)
	}
	return buf, nil
}

func (p *Protocol) write(offset uint64, buf []byte, timeout time.Duration) error {
	if err := p.t.Write(p.base+offset, buf, timeout); err != nil {
		return fmt.Errorf("maudio: write %#x: %w", offset, err)
	}
	return nil
}

// modify reads the quadlet at offset, applies fn and writes it back.
func (p *Protocol) modify(offset uint64, timeout time.Duration, fn func(raw []byte)) error {
	buf, err := p.read(offset, timeout)
	if err != nil {
		return err
	}
	fn(buf)
	return p.write(offset, buf, timeout)
}

// ReadKnobAssign reports which output pairs follow the master knob.
func (p *Protocol) ReadKnobAssign(timeout time.Duration) ([KnobCount]bool, error) {
	var targets [KnobCount]bool
	buf, err := p.read(KnobAssignOffset, timeout)
	if err != nil {
		return targets, err
	}
	bits := quadlet.ParseBits(buf, KnobAssignMask)
	for i := range targets {
		targets[i] = bits&(1<<i) != 0
	}
	return targets, nil
}

// WriteKnobAssign assigns output pairs to the master knob.
func (p *Protocol) WriteKnobAssign(targets [KnobCount]bool, timeout time.Duration) error {
	return p.modify(KnobAssignOffset, timeout, func(raw []byte) {
		for i, on := range targets {
			quadlet.BuildFlag(raw, 1<<i, on)
		}
	})
}

// ReadOptIfaceBMode reads the mode of the second optical interface.
func (p *Protocol) ReadOptIfaceBMode(timeout time.Duration) (OptIfaceMode, error) {
	buf, err := p.read(KnobAssignOffset, timeout)
	if err != nil {
		return OptIfaceAdat, err
	}
	if quadlet.ParseFlag(buf, OptIfaceBIsSpdifFlag) {
		return OptIfaceSpdif, nil
	}
	return OptIfaceAdat, nil
}

// WriteOptIfaceBMode sets the mode of the second optical interface.
func (p *Protocol) WriteOptIfaceBMode(mode OptIfaceMode, timeout time.Duration) error {
	return p.modify(KnobAssignOffset, timeout, func(raw []byte) {
		quadlet.BuildFlag(raw, OptIfaceBIsSpdifFlag, mode == OptIfaceSpdif)
	})
}

// ReadStandaloneConverterMode reads the standalone converter mode.
func (p *Protocol) ReadStandaloneConverterMode(timeout time.Duration) (StandaloneConverterMode, error) {
	buf, err := p.read(StandaloneModeOffset, timeout)
	if err != nil {
		return ConverterADDA, err
	}
	if quadlet.ParseFlag(buf, StandaloneConverterADOnlyFlag) {
		return ConverterADOnly, nil
	}
	return ConverterADDA, nil
}

// WriteStandaloneConverterMode sets the standalone converter mode.
func (p *Protocol) WriteStandaloneConverterMode(mode StandaloneConverterMode, timeout time.Duration) error {
	return p.modify(StandaloneModeOffset, timeout, func(raw []byte) {
		quadlet.BuildFlag(raw, StandaloneConverterADOnlyFlag, mode == ConverterADOnly)
	})
}
