package unit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/avc"
	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/log"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/transport"
)

// ErrUnsupported is returned for devices and kinds without a model.
var ErrUnsupported = errors.New("unit: unsupported device")

// Kind is a supported device model.
type Kind uint8

// Supported models.
const (
	KindKlive Kind = iota + 1
	KindItwin
	KindK8
	KindDesktopK6
	KindProFire2626
	KindProFire610
	KindLacie
	KindGriffin
	KindScratchamp
)

var kindNames = map[Kind]string{
	KindKlive:       "klive",
	KindItwin:       "itwin",
	KindK8:          "k8",
	KindDesktopK6:   "desktopk6",
	KindProFire2626: "profire2626",
	KindProFire610:  "profire610",
	KindLacie:       "lacie",
	KindGriffin:     "griffin",
	KindScratchamp:  "scratchamp",
}

// String returns the short model name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind parses a short model name as printed by String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: model %q", ErrUnsupported, s)
}

// Kinds lists every supported model.
func Kinds() []Kind {
	return []Kind{
		KindKlive, KindItwin, KindK8, KindDesktopK6,
		KindProFire2626, KindProFire610,
		KindLacie, KindGriffin, KindScratchamp,
	}
}

// IsAVC reports whether the model is controlled through AV/C commands
// rather than register transactions.
func (k Kind) IsAVC() bool {
	return k == KindLacie || k == KindGriffin || k == KindScratchamp
}

type deviceKey struct {
	vendor, model uint32
}

// Vendor and model ids from the configuration ROM.
var devices = map[deviceKey]Kind{
	{0x000166, 0x000021}: KindK8,
	{0x000166, 0x000023}: KindKlive,
	{0x000166, 0x000024}: KindDesktopK6,
	{0x000166, 0x000027}: KindItwin,
	{0x000d6c, 0x000010}: KindProFire2626,
	{0x000d6c, 0x000011}: KindProFire610,
	{0x00d04b, 0x00f970}: KindLacie,
	{0x001292, 0x00f970}: KindGriffin,
	{0x001260, 0x000001}: KindScratchamp,
}

// Detect maps a vendor and model id to a Kind.
func Detect(vendorID, modelID uint32) (Kind, error) {
	k, ok := devices[deviceKey{vendorID, modelID}]
	if !ok {
		return 0, fmt.Errorf("%w: vendor %#06x model %#06x", ErrUnsupported, vendorID, modelID)
	}
	return k, nil
}

// Default timeouts.
const (
	DefaultTimeout    = 20 * time.Millisecond
	DefaultFCPTimeout = 100 * time.Millisecond
)

// Deps are the collaborators of a model. Register models use Transport,
// AV/C models use FCP.
type Deps struct {
	Transport transport.Transport
	FCP       avc.FCP

	// Base is added to every register offset.
	Base uint64

	Timeout    time.Duration
	FCPTimeout time.Duration

	Tracer  log.Logger
	Session string
}

func (d Deps) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultTimeout
}

func (d Deps) fcpTimeout() time.Duration {
	if d.FCPTimeout > 0 {
		return d.FCPTimeout
	}
	return DefaultFCPTimeout
}

func (d Deps) mediator() *segment.Mediator {
	opts := []segment.MediatorOption{segment.WithBase(d.Base)}
	if d.Tracer != nil {
		opts = append(opts, segment.WithTracer(d.Tracer, d.Session))
	}
	return segment.NewMediator(d.Transport, opts...)
}

// New builds the model of kind k.
func New(k Kind, d Deps) (ctl.Model, error) {
	if k.IsAVC() {
		if d.FCP == nil {
			return nil, fmt.Errorf("unit: %s needs an FCP transport", k)
		}
	} else if d.Transport == nil {
		return nil, fmt.Errorf("unit: %s needs a register transport", k)
	}

	switch k {
	case KindKlive:
		return segModelOf(newKlive(d))
	case KindItwin:
		return segModelOf(newItwin(d))
	case KindK8:
		return segModelOf(newK8(d))
	case KindDesktopK6:
		return segModelOf(newDesktop(d))
	case KindProFire2626:
		return newProFire(d, true), nil
	case KindProFire610:
		return newProFire(d, false), nil
	case KindLacie:
		return newLacie(d), nil
	case KindGriffin:
		return newGriffin(d), nil
	case KindScratchamp:
		return newScratchamp(d), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, k)
	}
}

func segModelOf(m *segModel, err error) (ctl.Model, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Registrar is implemented by register models. It exposes the segments the
// model reads and writes.
type Registrar interface {
	Registry() *segment.Registry
}
