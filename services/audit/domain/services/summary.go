package services

import "github.com/trackhq/trackhq/services/audit/domain/models"

// Summary is the found/missing tally for one audit checklist.
// Total == Found + Missing always holds and Missing is never negative.
type Summary struct {
	Total   int `json:"total"`
	Found   int `json:"found"`
	Missing int `json:"missing"`
}

// Summarise computes the tally from a checklist. Pure: no I/O, no mutation.
func Summarise(items []*models.AuditItem) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		if it.Found {
			s.Found++
		}
	}
	s.Missing = s.Total - s.Found
	return s
}

// SummaryFromCounts builds a Summary from pre-aggregated counts, clamping
// Missing at zero so a skewed tally can never report a negative.
func SummaryFromCounts(total, found int) Summary {
	missing := total - found
	if missing < 0 {
		missing = 0
	}
	return Summary{Total: total, Found: found, Missing: missing}
}
