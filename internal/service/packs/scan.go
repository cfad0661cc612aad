package packs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globMeta are the characters doublestar treats specially in a pattern.
const globMeta = `*?[]{}\`

// Scan lists the files directly inside dir whose names end in extension.
// Hidden files are skipped. Paths are cleaned to platform separators and
// sorted. A missing dir yields no packs.
func Scan(dir, extension string) ([]string, error) {
	if strings.ContainsAny(extension, globMeta) {
		return nil, fmt.Errorf("%q: %w", extension, errBadExtension)
	}

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("stat packs dir: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, errNotADirectory)
	}

	// Glob relative to an fs.FS so metacharacters in dir need no escaping.
	pattern := "*" + extension

	names, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, dir, err)
	}

	packs := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}

		packs = append(packs, filepath.Join(dir, filepath.FromSlash(name)))
	}

	sort.Strings(packs)

	return packs, nil
}
