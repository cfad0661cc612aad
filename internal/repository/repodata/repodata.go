package repodata

// Record is the subset of a repodata package entry the uploader compares.
type Record struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Build   string `json:"build"`
	SHA256  string `json:"sha256"`
	Size    int64  `json:"size"`
}

// Repodata is a channel subdir index.
type Repodata struct {
	// Packages lists .tar.bz2 packages by filename.
	Packages map[string]Record `json:"packages"`
	// Conda lists .conda packages by filename.
	Conda map[string]Record `json:"packages.conda"`
}

// Lookup returns the record for filename. legacy selects the .tar.bz2 table.
// A nil Repodata has no records.
func (r *Repodata) Lookup(filename string, legacy bool) (*Record, bool) {
	if r == nil {
		return nil, false
	}

	table := r.Conda
	if legacy {
		table = r.Packages
	}

	record, ok := table[filename]
	if !ok {
		return nil, false
	}

	return &record, true
}
