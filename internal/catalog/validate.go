package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// validateQuestions performs all structural checks on a question list.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return errors.New("catalog has no questions")
	}

	var errs []string
	ids := make(map[int]bool, len(questions))
	fields := make(map[string]bool, len(questions))

	for _, q := range questions {
		if q.ID <= 0 {
			errs = append(errs, fmt.Sprintf("question %q has non-positive ID %d", q.Text, q.ID))
		}
		if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %d", q.ID))
		}
		ids[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %d has empty text", q.ID))
		}

		if q.Field == "" {
			errs = append(errs, fmt.Sprintf("question %d has no field name", q.ID))
		} else if fields[q.Field] {
			errs = append(errs, fmt.Sprintf("duplicate field name: %q", q.Field))
		}
		fields[q.Field] = true

		switch q.Kind {
		case KindChoice:
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("choice question %d needs at least 2 options", q.ID))
			}
			seen := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if o == "" {
					errs = append(errs, fmt.Sprintf("choice question %d has an empty option", q.ID))
				}
				if seen[o] {
					errs = append(errs, fmt.Sprintf("choice question %d repeats option %q", q.ID, o))
				}
				seen[o] = true
			}
		case KindScale:
			if q.Min >= q.Max {
				errs = append(errs, fmt.Sprintf("scale question %d has bounds %d-%d", q.ID, q.Min, q.Max))
			}
		case KindInteger:
		default:
			errs = append(errs, fmt.Sprintf("question %d has unknown kind %q", q.ID, q.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
