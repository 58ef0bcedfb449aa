package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/version"
)

// SnapshotVersion is the current version of the snapshot file format.
const SnapshotVersion = 1

// Snapshot errors.
var (
	ErrSnapshotVersion  = errors.New("persistence: unsupported snapshot version")
	ErrLayoutVersion    = errors.New("persistence: incompatible register layout")
	ErrSnapshotMismatch = errors.New("persistence: snapshot does not match registry")
)

// Snapshot is the set of segment images of one unit.
type Snapshot struct {
	// Version is the snapshot file format version.
	Version int `cbor:"1,keyasint"`

	// SavedAt is when the snapshot was last saved.
	SavedAt time.Time `cbor:"2,keyasint"`

	// Model names the registry the images belong to.
	Model string `cbor:"3,keyasint"`

	// Base is the address the segment offsets are relative to.
	Base uint64 `cbor:"4,keyasint"`

	// Layout is the register layout version the images were taken under.
	Layout string `cbor:"5,keyasint"`

	Segments []SegmentImage `cbor:"6,keyasint,omitempty"`
}

// SegmentImage is the raw image of one segment.
type SegmentImage struct {
	Name   string `cbor:"1,keyasint"`
	Offset uint64 `cbor:"2,keyasint"`
	Image  []byte `cbor:"3,keyasint"`
}

// Capture copies the cached image of every segment in r.
func Capture(r *segment.Registry, base uint64) *Snapshot {
	s := &Snapshot{
		Version: SnapshotVersion,
		Model:   r.Model(),
		Base:    base,
		Layout:  version.Current,
	}
	for _, e := range r.Entries() {
		d := e.Descriptor()
		s.Segments = append(s.Segments, SegmentImage{
			Name:   d.Name,
			Offset: d.Offset,
			Image:  append([]byte(nil), e.Raw()...),
		})
	}
	return s
}

// Storer receives register contents. transport.Memory implements it.
type Storer interface {
	Store(offset uint64, data []byte)
}

// Restore writes the images into dst at base plus the segment offset.
// Every image must name a segment of r with the same offset and size.
func (s *Snapshot) Restore(r *segment.Registry, base uint64, dst Storer) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}
	if ok, err := version.CompatibleWithCurrent(s.Layout); err != nil || !ok {
		return fmt.Errorf("%w: %q, want %s", ErrLayoutVersion, s.Layout, version.Current)
	}
	if s.Model != r.Model() {
		return fmt.Errorf("%w: model %q, registry %q", ErrSnapshotMismatch, s.Model, r.Model())
	}
	for _, img := range s.Segments {
		e, err := r.ByName(img.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSnapshotMismatch, err)
		}
		d := e.Descriptor()
		if d.Offset != img.Offset || d.Size != len(img.Image) {
			return fmt.Errorf("%w: segment %q at %#x/%d, registry %#x/%d",
				ErrSnapshotMismatch, img.Name, img.Offset, len(img.Image), d.Offset, d.Size)
		}
	}
	for _, img := range s.Segments {
		dst.Store(base+img.Offset, img.Image)
	}
	return nil
}

// SnapshotStore manages a snapshot file.
type SnapshotStore struct {
	mu   sync.Mutex
	path string
}

// NewSnapshotStore creates a store for the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path returns the file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Save writes the snapshot to disk.
func (s *SnapshotStore) Save(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	snap.Version = SnapshotVersion
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}

	data, err := cbor.Marshal(snap)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the snapshot from disk.
// Returns nil, nil if the file doesn't exist.
func (s *SnapshotStore) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{}
	if err := cbor.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("persistence: decode %s: %w", s.path, err)
	}
	return snap, nil
}

// Clear removes the snapshot file.
func (s *SnapshotStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
