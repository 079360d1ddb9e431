package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissingFile(t *testing.T) {
	f := &File{Path: filepath.Join(t.TempDir(), "next-since")}

	_, ok, err := f.Read()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	f := &File{Path: filepath.Join(t.TempDir(), "next-since")}
	want := time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC)

	require.NoError(t, f.Write(want))

	got, ok, err := f.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, want, got, time.Millisecond)
}

func TestWriteOverwritesPrevious(t *testing.T) {
	f := &File{Path: filepath.Join(t.TempDir(), "next-since")}

	require.NoError(t, f.Write(time.Unix(1000, 0)))
	require.NoError(t, f.Write(time.Unix(2000, 0)))

	got, ok, err := f.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Unix(2000, 0).UTC(), got)
}

func TestReadFirstTokenOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "next-since")
	require.NoError(t, os.WriteFile(path, []byte("1709294400.5 trailing garbage\n"), 0o644))

	f := &File{Path: path}
	got, ok, err := f.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, time.Unix(1709294400, 500000000), got, time.Millisecond)
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "next-since")
	require.NoError(t, os.WriteFile(path, []byte("not-a-number\n"), 0o644))

	f := &File{Path: path}
	_, _, err := f.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timestamp")

	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o644))
	_, _, err = f.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
