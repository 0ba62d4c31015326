package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DecodeAnswers reads a JSON object keyed by field name, such as
// {"gender": "Male", "study_satisfaction": 6}, and returns the answers keyed
// by question id. Every question must be present and no unknown field is
// allowed. Numbers and strings are both accepted and parsed per question
// kind.
func (c *Catalog) DecodeAnswers(r io.Reader) (AnswerSet, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}

	var errs []error
	var unknown []string
	for field := range raw {
		if _, ok := c.ByField(field); !ok {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		errs = append(errs, fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", ")))
	}

	out := make(AnswerSet, c.Len())
	for _, q := range c.All() {
		v, ok := raw[q.Field]
		if !ok {
			errs = append(errs, fmt.Errorf("missing %s", q.Field))
			continue
		}

		var text string
		switch v := v.(type) {
		case string:
			text = v
		case json.Number:
			text = v.String()
		default:
			errs = append(errs, fmt.Errorf("%s: expected a string or number, got %T", q.Field, v))
			continue
		}

		a, err := ParseAnswer(q, text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", q.Field, err))
			continue
		}
		out[q.ID] = a
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
