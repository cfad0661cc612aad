//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"
)

// DefaultFileMode is used for files that did not exist before.
const DefaultFileMode os.FileMode = 0o644

// applyUpdate is swapped in tests to simulate a failed swap.
var applyUpdate = goupdate.Apply

// ReplaceFile swaps the contents of path for data in one rename.
// An existing file keeps its permissions; a missing one is created with
// DefaultFileMode and removed again if the swap fails. The new bytes are
// verified against their checksum before the swap, so a failed write leaves
// the old file in place.
func ReplaceFile(path string, data []byte) error {
	path = filepath.Clean(path)
	mode := DefaultFileMode

	created := false

	info, err := os.Stat(path)

	switch {
	case err == nil:
		mode = info.Mode().Perm()
	case errors.Is(err, os.ErrNotExist):
		// go-update renames the target aside first, so it has to exist.
		if err = os.WriteFile(path, nil, mode); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}

		created = true
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}

	options := goupdate.Options{
		TargetPath: path,
		TargetMode: mode,
		Checksum:   Checksum(data),
		Hash:       DefaultChecksumFunction,
	}

	if err = applyUpdate(bytes.NewReader(data), options); err != nil {
		if created {
			// Do not leave the empty placeholder behind.
			_ = os.Remove(path)
		}

		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
