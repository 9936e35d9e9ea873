package cleanup

import (
	"path/filepath"

	"github.com/aatumaykin/telecap/internal/telemetry"
)

// ListCandidates lists telemetry files directly inside dir. Subdirectories
// are not descended into and non-regular entries are ignored, whatever
// their name.
func (c *Cleaner) ListCandidates(dir string) ([]Candidate, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	base := dir
	if abs, err := filepath.Abs(dir); err == nil {
		base = abs
	}

	var candidates []Candidate
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !telemetry.IsArtifact(entry.Name()) {
			continue
		}
		candidates = append(candidates, Candidate{
			Path: filepath.Join(base, entry.Name()),
			Name: entry.Name(),
		})
	}

	return candidates, nil
}
