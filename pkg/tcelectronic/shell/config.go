package shell

import (
	"fmt"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
)

// BuildIndex writes an index into a table of count entries. Indexes out of
// range are written as 0.
func BuildIndex(raw []byte, idx uint32, count int) {
	if int(idx) >= count {
		idx = 0
	}
	quadlet.BuildU32(raw, idx)
}

// ParseIndex reads an index into a table of count entries. Values out of
// range decode as 0.
func ParseIndex(raw []byte, count int) uint32 {
	idx := quadlet.ParseU32(raw)
	if int64(idx) >= int64(count) {
		return 0
	}
	return idx
}

// KnobTargetLabels returns the targets of the main knob.
func KnobTargetLabels(hasSpdif, hasEffects bool) []string {
	labels := []string{"Analog-1", "Analog-2", "Analog-3/4", "Configurable"}
	if hasSpdif {
		labels = append(labels, "S/PDIF-1/2")
	}
	if hasEffects {
		labels = append(labels, "Reverb-1/2", "Channel-strip-1", "Channel-strip-2")
	}
	return labels
}

// PhysOutSrc selects the signal routed to a physical output pair.
type PhysOutSrc uint8

// Output sources.
const (
	OutSrcStream PhysOutSrc = iota
	OutSrcAnalog01
	OutSrcMixerOut01
	OutSrcMixerOut23
)

// PhysOutSrcs lists the sources in encoding order.
var PhysOutSrcs = []PhysOutSrc{OutSrcStream, OutSrcAnalog01, OutSrcMixerOut01, OutSrcMixerOut23}

// String returns the source label.
func (s PhysOutSrc) String() string {
	switch s {
	case OutSrcAnalog01:
		return "Analog-input-1/2"
	case OutSrcMixerOut01:
		return "Mixer-output-1/2"
	case OutSrcMixerOut23:
		return "Mixer-output-3/4"
	default:
		return "Stream-input"
	}
}

// Encode returns the wire value.
func (s PhysOutSrc) Encode() uint32 {
	if s > OutSrcMixerOut23 {
		return uint32(OutSrcStream)
	}
	return uint32(s)
}

// DecodePhysOutSrc maps a wire value to a source. Unknown values decode as
// OutSrcStream.
func DecodePhysOutSrc(v uint32) PhysOutSrc {
	if v > uint32(OutSrcMixerOut23) {
		return OutSrcStream
	}
	return PhysOutSrc(v)
}

// OptInFormat is the frame format of the optical input.
type OptInFormat uint8

// Optical input formats.
const (
	OptInAdat0to7 OptInFormat = iota
	OptInAdat0to5Spdif6to7
	OptInSpdif6to7
)

// OptInFormats lists the formats in encoding order.
var OptInFormats = []OptInFormat{OptInAdat0to7, OptInAdat0to5Spdif6to7, OptInSpdif6to7}

// String returns the format label.
func (f OptInFormat) String() string {
	switch f {
	case OptInAdat0to5Spdif6to7:
		return "ADAT-1:6+S/PDIF-1/2"
	case OptInSpdif6to7:
		return "S/PDIF-1/2"
	default:
		return "ADAT-1:8"
	}
}

// Encode returns the wire value.
func (f OptInFormat) Encode() uint32 {
	if f > OptInSpdif6to7 {
		return uint32(OptInAdat0to7)
	}
	return uint32(f)
}

// DecodeOptInFormat maps a wire value to a format. Unknown values decode as
// OptInAdat0to7.
func DecodeOptInFormat(v uint32) OptInFormat {
	if v > uint32(OptInSpdif6to7) {
		return OptInAdat0to7
	}
	return OptInFormat(v)
}

// OptOutFormat is the frame format of the optical output.
type OptOutFormat uint8

// Optical output formats.
const (
	OptOutAdat OptOutFormat = iota
	OptOutSpdif
)

// OptOutFormats lists the formats in encoding order.
var OptOutFormats = []OptOutFormat{OptOutAdat, OptOutSpdif}

// String returns the format label.
func (f OptOutFormat) String() string {
	if f == OptOutSpdif {
		return "S/PDIF"
	}
	return "ADAT"
}

// Encode returns the wire value.
func (f OptOutFormat) Encode() uint32 {
	if f == OptOutSpdif {
		return 1
	}
	return 0
}

// DecodeOptOutFormat maps a wire value to a format. Unknown values decode as
// OptOutAdat.
func DecodeOptOutFormat(v uint32) OptOutFormat {
	if v == 1 {
		return OptOutSpdif
	}
	return OptOutAdat
}

// OptIfaceConfigSize is the encoded size of OptIfaceConfig.
const OptIfaceConfigSize = 12

// OptIfaceConfig configures the optical interface.
type OptIfaceConfig struct {
	InputFormat  OptInFormat
	OutputFormat OptOutFormat
	OutputSrc    PhysOutSrc
}

// Build encodes the configuration.
func (c *OptIfaceConfig) Build(raw []byte) {
	quadlet.MustSize(raw, OptIfaceConfigSize, "optical interface config")
	quadlet.BuildEnum(raw[0:4], c.InputFormat)
	quadlet.BuildEnum(raw[4:8], c.OutputFormat)
	quadlet.BuildEnum(raw[8:12], c.OutputSrc)
}

// Parse decodes the configuration.
func (c *OptIfaceConfig) Parse(raw []byte) {
	quadlet.MustSize(raw, OptIfaceConfigSize, "optical interface config")
	c.InputFormat = quadlet.ParseEnum(raw[0:4], DecodeOptInFormat)
	c.OutputFormat = quadlet.ParseEnum(raw[4:8], DecodeOptOutFormat)
	c.OutputSrc = quadlet.ParseEnum(raw[8:12], DecodePhysOutSrc)
}

// StandaloneClkSrc is the clock source used without a host.
type StandaloneClkSrc uint8

// Standalone clock sources.
const (
	StandaloneSrcOptical StandaloneClkSrc = iota
	StandaloneSrcCoaxial
	StandaloneSrcInternal
)

// String returns the source label.
func (s StandaloneClkSrc) String() string {
	switch s {
	case StandaloneSrcOptical:
		return "Optical"
	case StandaloneSrcCoaxial:
		return "Coaxial"
	default:
		return "Internal"
	}
}

// Encode returns the wire value.
func (s StandaloneClkSrc) Encode() uint32 {
	if s > StandaloneSrcInternal {
		return uint32(StandaloneSrcInternal)
	}
	return uint32(s)
}

// DecodeStandaloneClkSrc maps a wire value to a source. Unknown values
// decode as StandaloneSrcInternal.
func DecodeStandaloneClkSrc(v uint32) StandaloneClkSrc {
	if v > uint32(StandaloneSrcInternal) {
		return StandaloneSrcInternal
	}
	return StandaloneClkSrc(v)
}

// StreamSrcPairLabels returns the labels of count stream pairs selectable
// as the mixer stream source.
func StreamSrcPairLabels(count int) []string {
	labels := make([]string, count)
	for i := range labels {
		labels[i] = streamPairLabel(i)
	}
	return labels
}

func streamPairLabel(i int) string {
	return fmt.Sprintf("Stream-%d/%d", i*2+1, i*2+2)
}
