package packs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

// TestScan lists matching files only, sorted, without descending into subdirectories.
func TestScan(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "we[ird] dir")
	touch(t, filepath.Join(dir, "Keil.STM32F4xx_DFP.2.17.1.pack"))
	touch(t, filepath.Join(dir, "ARM.CMSIS.6.1.0.pack"))
	touch(t, filepath.Join(dir, "README.md"))
	touch(t, filepath.Join(dir, ".hidden.pack"))
	touch(t, filepath.Join(dir, "nested", "Other.pack"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "folder.pack"), 0o755))

	packs, err := Scan(dir, DefaultExtension)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "ARM.CMSIS.6.1.0.pack"),
		filepath.Join(dir, "Keil.STM32F4xx_DFP.2.17.1.pack"),
	}, packs)
}

// TestScan_MissingDirectory yields no packs and no error.
func TestScan_MissingDirectory(t *testing.T) {
	t.Parallel()

	packs, err := Scan(filepath.Join(t.TempDir(), "absent"), DefaultExtension)
	require.NoError(t, err)
	require.Empty(t, packs)
}

// TestScan_NotADirectory rejects a file in place of the packs dir.
func TestScan_NotADirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "packs")
	touch(t, file)

	_, err := Scan(file, DefaultExtension)
	require.ErrorIs(t, err, errNotADirectory)
}

// TestScan_RejectsGlobExtension refuses extensions that would act as patterns.
func TestScan_RejectsGlobExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.pack"))

	for _, extension := range []string{".p*", ".pa?k", ".[p]ack", ".{pack,zip}"} {
		_, err := Scan(dir, extension)
		require.ErrorIs(t, err, errBadExtension, extension)
	}
}
