package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const reportFileName = "report.json"

func mkOutputDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persist writes the run report next to the refined labels.
func persist(r *Report) (string, error) {
	path := filepath.Join(r.OutputDir, reportFileName)
	if err := writeJSON(path, r); err != nil {
		return "", err
	}
	return path, nil
}
