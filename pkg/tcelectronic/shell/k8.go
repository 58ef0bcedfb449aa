package shell

import "github.com/fwaudio/fwctl-go/pkg/segment"

// Konnekt 8 model identifier used in registries and traces.
const K8Model = "konnekt-8"

// K8Segments holds the segments of Konnekt 8 handled by this package. Only
// the hardware state is exposed as controls on this model.
type K8Segments struct {
	HwState *segment.Segment[*HwState]

	Registry *segment.Registry
}

// NewK8Segments builds the Konnekt 8 segment set.
func NewK8Segments() *K8Segments {
	s := &K8Segments{
		HwState: segment.New(segment.Descriptor{
			Name: "hw-state", Offset: k8HwStateOffset, Size: HwStateSize, NotifyFlag: HwStateNotifyFlag,
		}, &HwState{}),
	}
	s.Registry = segment.MustRegistry(K8Model, s.HwState)
	return s
}
