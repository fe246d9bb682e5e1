package output

import (
	"github.com/keygate-dev/keygate/internal/application/dto"
)

// Report is the machine-readable envelope around a batch of outcomes.
type Report struct {
	Summary  Summary       `json:"summary" yaml:"summary"`
	Outcomes []dto.Outcome `json:"outcomes" yaml:"outcomes"`
}

// Summary counts outcomes by result.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
}

func report(outcomes []dto.Outcome) Report {
	summary := Summary{Total: len(outcomes)}
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	return Report{Summary: summary, Outcomes: outcomes}
}
