//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// Register SHA-256 for DefaultChecksumFunction.
	_ "crypto/sha256"
)

// DefaultChecksumFunction matches the sha256 field of repodata.json.
const DefaultChecksumFunction = crypto.SHA256

var errHashUnavailable = errors.New("hash function unavailable")

// Checksum returns the DefaultChecksumFunction digest of data.
func Checksum(data []byte) []byte {
	hasher := DefaultChecksumFunction.New()
	_, _ = hasher.Write(data)

	return hasher.Sum(nil)
}

// FileChecksum streams path through DefaultChecksumFunction and returns the raw digest.
func FileChecksum(path string) ([]byte, error) {
	if !DefaultChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := DefaultChecksumFunction.New()
	if _, err = io.Copy(hasher, file); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}

// FileChecksumHex returns the lowercase hex digest of path.
func FileChecksumHex(path string) (string, error) {
	sum, err := FileChecksum(path)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(sum), nil
}
