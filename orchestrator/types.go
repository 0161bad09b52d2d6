package orchestrator

import "time"

type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"  // no valid records, nothing written
	StatusFailed Status = "failed" // parse or write error
)

type FileResult struct {
	Name     string `json:"name"`
	Input    string `json:"input"`
	Output   string `json:"output,omitempty"`
	Status   Status `json:"status"`
	Original int    `json:"original"`
	Merged   int    `json:"merged"`
	Err      string `json:"error,omitempty"`
}

type Report struct {
	InputDir      string       `json:"input_dir"`
	OutputDir     string       `json:"output_dir"`
	MaxGapSeconds float64      `json:"max_gap_seconds"`
	GeneratedAt   time.Time    `json:"generated_at"`
	Files         []FileResult `json:"files"`
	// Totals
	Processed int `json:"processed"`
	Empty     int `json:"empty"`
	Failed    int `json:"failed"`
}

func (r *Report) tally() {
	r.Processed, r.Empty, r.Failed = 0, 0, 0
	for _, f := range r.Files {
		switch f.Status {
		case StatusOK:
			r.Processed++
		case StatusEmpty:
			r.Empty++
		case StatusFailed:
			r.Failed++
		}
	}
}
