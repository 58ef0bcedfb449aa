package tcelectronic

import "github.com/fwaudio/fwctl-go/pkg/quadlet"

// ReverbAlgorithm selects the reverb effect algorithm.
type ReverbAlgorithm uint8

// Reverb algorithms.
const (
	ReverbLive1 ReverbAlgorithm = iota
	ReverbHall
	ReverbPlate
	ReverbClub
	ReverbConcertHall
	ReverbCathedral
	ReverbChurch
	ReverbRoom
	ReverbSmallRoom
	ReverbBox
	ReverbAmbient
	ReverbLive2
	ReverbLive3
	ReverbSpring
)

// ReverbAlgorithms lists the algorithms in encoding order.
var ReverbAlgorithms = []ReverbAlgorithm{
	ReverbLive1, ReverbHall, ReverbPlate, ReverbClub, ReverbConcertHall,
	ReverbCathedral, ReverbChurch, ReverbRoom, ReverbSmallRoom, ReverbBox,
	ReverbAmbient, ReverbLive2, ReverbLive3, ReverbSpring,
}

// String returns the algorithm label.
func (a ReverbAlgorithm) String() string {
	switch a {
	case ReverbLive1:
		return "Live1"
	case ReverbHall:
		return "Hall"
	case ReverbPlate:
		return "Plate"
	case ReverbClub:
		return "Club"
	case ReverbConcertHall:
		return "ConcertHall"
	case ReverbCathedral:
		return "Cathedral"
	case ReverbChurch:
		return "Church"
	case ReverbRoom:
		return "Room"
	case ReverbSmallRoom:
		return "SmallRoom"
	case ReverbBox:
		return "Box"
	case ReverbAmbient:
		return "Ambient"
	case ReverbLive2:
		return "Live2"
	case ReverbLive3:
		return "Live3"
	case ReverbSpring:
		return "Spring"
	default:
		return "Unknown"
	}
}

// Encode returns the wire value.
func (a ReverbAlgorithm) Encode() uint32 {
	if a > ReverbSpring {
		return uint32(ReverbLive1)
	}
	return uint32(a)
}

// DecodeReverbAlgorithm maps a wire value to an algorithm. Unknown values
// decode as ReverbLive1.
func DecodeReverbAlgorithm(v uint32) ReverbAlgorithm {
	if v > uint32(ReverbSpring) {
		return ReverbLive1
	}
	return ReverbAlgorithm(v)
}

// ReverbStateSize is the encoded size of ReverbState.
const ReverbStateSize = 68

// ReverbState is the state of the reverb effect.
type ReverbState struct {
	InputLevel      int32
	Bypass          bool
	KillWet         bool
	KillDry         bool
	OutputLevel     int32
	TimeDecay       uint32
	TimePreDecay    uint32
	ColorLow        uint32
	ColorHigh       uint32
	ColorHighFactor uint32
	ModRate         uint32
	ModDepth        uint32
	LevelEarly      int32
	LevelReverb     int32
	LevelDry        int32
	Algorithm       ReverbAlgorithm
}

// Build encodes the state. Bytes 28..32 are reserved and left untouched.
func (s *ReverbState) Build(raw []byte) {
	quadlet.MustSize(raw, ReverbStateSize, "reverb state")
	quadlet.BuildI32(raw[0:4], s.InputLevel)
	quadlet.BuildBool(raw[4:8], s.Bypass)
	quadlet.BuildBool(raw[8:12], s.KillWet)
	quadlet.BuildBool(raw[12:16], s.KillDry)
	quadlet.BuildI32(raw[16:20], s.OutputLevel)
	quadlet.BuildU32(raw[20:24], s.TimeDecay)
	quadlet.BuildU32(raw[24:28], s.TimePreDecay)
	quadlet.BuildU32(raw[32:36], s.ColorLow)
	quadlet.BuildU32(raw[36:40], s.ColorHigh)
	quadlet.BuildU32(raw[40:44], s.ColorHighFactor)
	quadlet.BuildU32(raw[44:48], s.ModRate)
	quadlet.BuildU32(raw[48:52], s.ModDepth)
	quadlet.BuildI32(raw[52:56], s.LevelEarly)
	quadlet.BuildI32(raw[56:60], s.LevelReverb)
	quadlet.BuildI32(raw[60:64], s.LevelDry)
	quadlet.BuildEnum(raw[64:68], s.Algorithm)
}

// Parse decodes the state.
func (s *ReverbState) Parse(raw []byte) {
	quadlet.MustSize(raw, ReverbStateSize, "reverb state")
	s.InputLevel = quadlet.ParseI32(raw[0:4])
	s.Bypass = quadlet.ParseBool(raw[4:8])
	s.KillWet = quadlet.ParseBool(raw[8:12])
	s.KillDry = quadlet.ParseBool(raw[12:16])
	s.OutputLevel = quadlet.ParseI32(raw[16:20])
	s.TimeDecay = quadlet.ParseU32(raw[20:24])
	s.TimePreDecay = quadlet.ParseU32(raw[24:28])
	s.ColorLow = quadlet.ParseU32(raw[32:36])
	s.ColorHigh = quadlet.ParseU32(raw[36:40])
	s.ColorHighFactor = quadlet.ParseU32(raw[40:44])
	s.ModRate = quadlet.ParseU32(raw[44:48])
	s.ModDepth = quadlet.ParseU32(raw[48:52])
	s.LevelEarly = quadlet.ParseI32(raw[52:56])
	s.LevelReverb = quadlet.ParseI32(raw[56:60])
	s.LevelDry = quadlet.ParseI32(raw[60:64])
	s.Algorithm = quadlet.ParseEnum(raw[64:68], DecodeReverbAlgorithm)
}

// ReverbMeterSize is the encoded size of ReverbMeter.
const ReverbMeterSize = 24

// ReverbMeter holds the reverb effect level meters.
type ReverbMeter struct {
	Outputs [2]int32
	Inputs  [2]int32
}

// Build encodes the meter. Bytes 16..24 are reserved.
func (m *ReverbMeter) Build(raw []byte) {
	quadlet.MustSize(raw, ReverbMeterSize, "reverb meter")
	quadlet.BuildI32Block(raw[0:8], m.Outputs[:])
	quadlet.BuildI32Block(raw[8:16], m.Inputs[:])
}

// Parse decodes the meter.
func (m *ReverbMeter) Parse(raw []byte) {
	quadlet.MustSize(raw, ReverbMeterSize, "reverb meter")
	quadlet.ParseI32Block(raw[0:8], m.Outputs[:])
	quadlet.ParseI32Block(raw[8:16], m.Inputs[:])
}
