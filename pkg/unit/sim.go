package unit

import (
	"github.com/fwaudio/fwctl-go/pkg/avc"
	"github.com/fwaudio/fwctl-go/pkg/transport"
)

// SimWindow is the size of the register space of a simulated unit. It
// covers every segment of the register models.
const SimWindow = 0x2000

// Simulation is an in-process stand-in for a unit of one kind. Register
// kinds get a Memory, AV/C kinds an audio subunit with the function blocks
// the model addresses.
type Simulation struct {
	Kind   Kind
	Memory *transport.Memory
	FCP    *avc.Sim
}

// NewSimulation creates a simulated unit of kind k whose registers start
// at base.
func NewSimulation(k Kind, base uint64) *Simulation {
	s := &Simulation{Kind: k}
	if !k.IsAVC() {
		s.Memory = transport.NewMemory(base, SimWindow)
		return s
	}

	s.FCP = avc.NewSim()
	switch k {
	case KindLacie:
		s.FCP.AddVolume(0x01, avc.VolumeRange{Min: -0x6000, Max: 0x0100, Step: 0x80}, avc.AudioChAll)
		s.FCP.AddMute(0x01, avc.AudioChAll)
	case KindGriffin:
		s.FCP.AddVolume(0x02, avc.VolumeRange{Min: -0x7f00, Max: 0, Step: 0x100},
			append([]avc.AudioCh{avc.AudioChAll}, griffinChannels...)...)
		s.FCP.AddMute(0x01, avc.AudioChAll)
	case KindScratchamp:
		for _, fb := range scratchampFBs {
			s.FCP.AddVolume(fb, avc.VolumeRange{Min: avc.NegInfinity, Max: 0, Step: scratchampVolStep}, 0, 1)
		}
	}
	return s
}

// Deps returns model dependencies wired to the simulated unit.
func (s *Simulation) Deps(base uint64) Deps {
	d := Deps{Base: base}
	if s.Memory != nil {
		d.Transport = s.Memory
	}
	if s.FCP != nil {
		d.FCP = s.FCP
	}
	return d
}

// Notifier returns the notification source of the simulated unit, or nil
// for AV/C kinds.
func (s *Simulation) Notifier() transport.Notifier {
	if s.Memory == nil {
		return nil
	}
	return s.Memory
}
