package catalog

import (
	"encoding/json"
	"time"
)

// Run records one comparison run for a movie.
type Run struct {
	ID             string
	Movie          string
	ReferenceCues  int
	CandidateFiles int
	MeanCoverage   float64
	CoverageJSON   string
	CSVPath        string
	JSONPath       string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Coverage decodes the per-file coverage map (column key to ratio in [0,1]).
func (r *Run) Coverage() (map[string]float64, error) {
	if r.CoverageJSON == "" {
		return map[string]float64{}, nil
	}
	out := map[string]float64{}
	if err := json.Unmarshal([]byte(r.CoverageJSON), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetCoverage encodes the per-file coverage map and updates the mean.
func (r *Run) SetCoverage(coverage map[string]float64) error {
	data, err := json.Marshal(coverage)
	if err != nil {
		return err
	}
	r.CoverageJSON = string(data)
	if len(coverage) == 0 {
		r.MeanCoverage = 0
		return nil
	}
	var sum float64
	for _, v := range coverage {
		sum += v
	}
	r.MeanCoverage = sum / float64(len(coverage))
	return nil
}
