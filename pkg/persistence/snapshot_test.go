package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/segment"
	"github.com/fwaudio/fwctl-go/pkg/transport"
	"github.com/fwaudio/fwctl-go/pkg/version"
)

type counter struct{ N uint32 }

func (c *counter) Build(raw []byte) { quadlet.BuildU32(raw[0:4], c.N) }
func (c *counter) Parse(raw []byte) { c.N = quadlet.ParseU32(raw[0:4]) }

func testRegistry(t *testing.T) (*segment.Registry, *segment.Segment[*counter]) {
	t.Helper()
	a := segment.New(segment.Descriptor{Name: "a", Offset: 0x00, Size: 8}, &counter{})
	b := segment.New(segment.Descriptor{Name: "b", Offset: 0x10, Size: 4}, &counter{})
	r, err := segment.NewRegistry("test", a, b)
	require.NoError(t, err)
	return r, a
}

func TestCaptureAndRestore(t *testing.T) {
	r, a := testRegistry(t)
	require.NoError(t, a.Parse([]byte{0, 0, 0, 7, 0, 0, 0, 9}))

	snap := Capture(r, 0x1000)
	require.Len(t, snap.Segments, 2)
	assert.Equal(t, "test", snap.Model)
	assert.Equal(t, []byte{0, 0, 0, 7, 0, 0, 0, 9}, snap.Segments[0].Image)

	mem := transport.NewMemory(0x1000, 0x20)
	require.NoError(t, snap.Restore(r, 0x1000, mem))
	assert.Equal(t, []byte{0, 0, 0, 7, 0, 0, 0, 9}, mem.Load(0x1000, 8))
	assert.Empty(t, mem.Accesses())
}

func TestRestoreRejectsMismatch(t *testing.T) {
	r, _ := testRegistry(t)
	mem := transport.NewMemory(0, 0x20)

	tests := []struct {
		name   string
		mangle func(s *Snapshot)
		want   error
	}{
		{"version", func(s *Snapshot) { s.Version = 9 }, ErrSnapshotVersion},
		{"layout", func(s *Snapshot) { s.Layout = "2.0" }, ErrLayoutVersion},
		{"no layout", func(s *Snapshot) { s.Layout = "" }, ErrLayoutVersion},
		{"model", func(s *Snapshot) { s.Model = "other" }, ErrSnapshotMismatch},
		{"unknown segment", func(s *Snapshot) { s.Segments[1].Name = "c" }, ErrSnapshotMismatch},
		{"size", func(s *Snapshot) { s.Segments[0].Image = s.Segments[0].Image[:4] }, ErrSnapshotMismatch},
		{"offset", func(s *Snapshot) { s.Segments[1].Offset = 0x14 }, ErrSnapshotMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := Capture(r, 0)
			tc.mangle(snap)
			assert.ErrorIs(t, snap.Restore(r, 0, mem), tc.want)
		})
	}
	// Nothing is stored when validation fails.
	assert.Equal(t, make([]byte, 0x20), mem.Load(0, 0x20))

	snap := Capture(r, 0)
	snap.Segments[1].Name = "c"
	assert.ErrorIs(t, snap.Restore(r, 0, mem), segment.ErrUnknown)
}

func TestSnapshotStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "klive.cbor")
	store := NewSnapshotStore(path)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)

	r, a := testRegistry(t)
	a.Data.N = 3
	raw, err := a.Build()
	require.NoError(t, err)
	a.Commit(raw)

	require.NoError(t, store.Save(Capture(r, 0xffffe0a01000)))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, SnapshotVersion, loaded.Version)
	assert.Equal(t, version.Current, loaded.Layout)
	assert.False(t, loaded.SavedAt.IsZero())
	assert.Equal(t, uint64(0xffffe0a01000), loaded.Base)
	assert.Equal(t, []byte{0, 0, 0, 3, 0, 0, 0, 0}, loaded.Segments[0].Image)

	require.NoError(t, store.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Clear())
}

func TestSnapshotStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cbor")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0x00}, 0644))

	_, err := NewSnapshotStore(path).Load()
	assert.Error(t, err)
}
