package compare

import "slices"

// Summarize counts changes. Compatible is true when breaking is empty.
func Summarize(changes []Change, breaking []BreakingChange) Summary {
	s := Summary{
		TotalChanges: len(changes),
		Compatible:   len(breaking) == 0,
	}
	for _, c := range changes {
		if c.Breaking {
			s.Breaking++
		}
		switch {
		case slices.Contains(additionKinds, c.Kind):
			s.Additions++
		case slices.Contains(deletionKinds, c.Kind):
			s.Deletions++
		}
	}
	s.NonBreaking = s.TotalChanges - s.Breaking
	s.Modifications = s.TotalChanges - s.Additions - s.Deletions
	return s
}
