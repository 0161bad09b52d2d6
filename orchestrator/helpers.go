package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maastricht-university/labrefine/label"
	"github.com/maastricht-university/labrefine/refine"
)

// DefaultOutputDirName is created inside the input dir when no output path is configured.
const DefaultOutputDirName = "refined_labels"

// discover lists regular files directly under dir matching pattern, sorted by name.
func discover(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

func resolveOutputDir(inputDir, configured string) string {
	if configured != "" {
		return configured
	}
	return filepath.Join(inputDir, DefaultOutputDirName)
}

// RefineSource parses one label file, merges it and writes the result under
// outDir with the same base name. Empty sources are reported, not written.
func RefineSource(m *refine.Merger, path, outDir string) FileResult {
	res := FileResult{Name: filepath.Base(path), Input: path}

	segs, err := label.ParseFile(path)
	if err != nil {
		res.Status, res.Err = StatusFailed, err.Error()
		return res
	}
	res.Original = len(segs)
	if len(segs) == 0 {
		res.Status = StatusEmpty
		return res
	}

	merged := m.Merge(segs)
	res.Merged = len(merged)

	out := filepath.Join(outDir, res.Name)
	if err := label.WriteFile(out, merged); err != nil {
		res.Status, res.Err = StatusFailed, fmt.Sprintf("write %s: %v", out, err)
		return res
	}
	res.Output = out
	res.Status = StatusOK
	return res
}
