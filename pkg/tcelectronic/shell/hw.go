package shell

import (
	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/tcelectronic"
)

// Notification flags raised by the shell firmware.
const (
	KnobNotifyFlag    uint32 = 0x00010000
	ConfigNotifyFlag  uint32 = 0x00020000
	MixerNotifyFlag   uint32 = 0x00040000
	ReverbNotifyFlag  uint32 = 0x00080000
	ChStripNotifyFlag uint32 = 0x00100000
	HwStateNotifyFlag uint32 = 0x01000000
)

// ChStripCount is the number of channel strip effects in shell models.
const ChStripCount = 2

// AnalogJackState reports which analog input jack is in use.
type AnalogJackState uint8

// Jack states.
const (
	JackFrontSelected AnalogJackState = iota
	JackFrontInserted
	JackFrontInsertedAttenuated
	JackRearSelected
	JackRearInserted
)

// AnalogJackStates lists the jack states in encoding order.
var AnalogJackStates = []AnalogJackState{
	JackFrontSelected, JackFrontInserted, JackFrontInsertedAttenuated,
	JackRearSelected, JackRearInserted,
}

// String returns the jack state label.
func (s AnalogJackState) String() string {
	switch s {
	case JackFrontInserted:
		return "Front-inserted"
	case JackFrontInsertedAttenuated:
		return "Front-inserted-attenuated"
	case JackRearSelected:
		return "Rear-selected"
	case JackRearInserted:
		return "Rear-inserted"
	default:
		return "Front-selected"
	}
}

// Encode returns the wire value.
func (s AnalogJackState) Encode() uint32 {
	switch s {
	case JackFrontInserted:
		return 0x06
	case JackFrontInsertedAttenuated:
		return 0x07
	case JackRearSelected:
		return 0x08
	case JackRearInserted:
		return 0x09
	default:
		return 0x05
	}
}

// DecodeAnalogJackState maps a wire value to a jack state. Unknown values
// decode as JackFrontSelected.
func DecodeAnalogJackState(v uint32) AnalogJackState {
	switch v {
	case 0x06:
		return JackFrontInserted
	case 0x07:
		return JackFrontInsertedAttenuated
	case 0x08:
		return JackRearSelected
	case 0x09:
		return JackRearInserted
	default:
		return JackFrontSelected
	}
}

// HwStateSize is the encoded size of HwState.
const HwStateSize = 28

// HwState is the hardware state segment shared by all shell models.
//
//	0..8   analog jack states
//	8..20  reserved
//	20     FireWire LED
//	24     reserved
type HwState struct {
	AnalogJackStates [2]AnalogJackState
	FireWireLed      tcelectronic.FireWireLedState
}

// Build encodes the state.
func (s *HwState) Build(raw []byte) {
	quadlet.MustSize(raw, HwStateSize, "shell hardware state")
	for i, js := range s.AnalogJackStates {
		quadlet.BuildEnum(raw[i*4:i*4+4], js)
	}
	quadlet.BuildEnum(raw[20:24], s.FireWireLed)
}

// Parse decodes the state.
func (s *HwState) Parse(raw []byte) {
	quadlet.MustSize(raw, HwStateSize, "shell hardware state")
	for i := range s.AnalogJackStates {
		s.AnalogJackStates[i] = quadlet.ParseEnum(raw[i*4:i*4+4], DecodeAnalogJackState)
	}
	s.FireWireLed = quadlet.ParseEnum(raw[20:24], tcelectronic.DecodeFireWireLedState)
}

// OutputImpedance is the electrical mode of an analog output pair.
type OutputImpedance uint8

// Impedance modes.
const (
	ImpedanceUnbalance OutputImpedance = iota
	ImpedanceBalance
)

// OutputImpedances lists the modes in encoding order.
var OutputImpedances = []OutputImpedance{ImpedanceUnbalance, ImpedanceBalance}

// String returns the mode label.
func (i OutputImpedance) String() string {
	if i == ImpedanceBalance {
		return "Balance"
	}
	return "Unbalance"
}

// Encode returns 1 for Balance and 0 otherwise.
func (i OutputImpedance) Encode() uint32 {
	if i == ImpedanceBalance {
		return 1
	}
	return 0
}

// DecodeOutputImpedance treats any nonzero value as Balance.
func DecodeOutputImpedance(v uint32) OutputImpedance {
	if v != 0 {
		return ImpedanceBalance
	}
	return ImpedanceUnbalance
}
