package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Answer is a recorded answer value. The shape depends on Kind; the zero
// Answer carries no value.
type Answer struct {
	kind   Kind
	label  string
	number int
}

// Choice returns an answer selecting the given option label.
func Choice(label string) Answer {
	return Answer{kind: KindChoice, label: label}
}

// Scale returns an answer holding a scale value.
func Scale(n int) Answer {
	return Answer{kind: KindScale, number: n}
}

// Integer returns an answer holding a free integer.
func Integer(n int) Answer {
	return Answer{kind: KindInteger, number: n}
}

// Kind returns the answer kind, or "" for the zero Answer.
func (a Answer) Kind() Kind {
	return a.kind
}

// Label returns the selected option for a choice answer.
func (a Answer) Label() string {
	return a.label
}

// Number returns the numeric value of a scale or integer answer.
func (a Answer) Number() int {
	return a.number
}

// IsZero reports whether the answer carries no value at all.
func (a Answer) IsZero() bool {
	return a.kind == ""
}

// Complete reports whether the answer is usable for submission.
// A choice needs a non-empty label; scale and integer answers are complete
// as soon as a value is present.
func (a Answer) Complete() bool {
	switch a.kind {
	case KindChoice:
		return a.label != ""
	case KindScale, KindInteger:
		return true
	default:
		return false
	}
}

// String renders the answer for display.
func (a Answer) String() string {
	switch a.kind {
	case KindChoice:
		return a.label
	case KindScale, KindInteger:
		return strconv.Itoa(a.number)
	default:
		return ""
	}
}

// MarshalJSON encodes choice answers as their label and numeric answers as
// JSON numbers. The zero Answer encodes as null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case KindChoice:
		return json.Marshal(a.label)
	case KindScale, KindInteger:
		return json.Marshal(a.number)
	default:
		return []byte("null"), nil
	}
}

// ParseAnswer converts raw user text into an answer of the question's kind.
func ParseAnswer(q Question, raw string) (Answer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Answer{}, fmt.Errorf("question %d: empty answer", q.ID)
	}

	switch q.Kind {
	case KindChoice:
		if !q.HasOption(raw) {
			return Answer{}, fmt.Errorf("question %d: %q is not one of %s", q.ID, raw, strings.Join(q.Options, ", "))
		}
		return Choice(raw), nil
	case KindScale:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Answer{}, fmt.Errorf("question %d: %q is not a number", q.ID, raw)
		}
		if n < q.Min || n > q.Max {
			return Answer{}, fmt.Errorf("question %d: %d is outside %d-%d", q.ID, n, q.Min, q.Max)
		}
		return Scale(n), nil
	case KindInteger:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Answer{}, fmt.Errorf("question %d: %q is not a whole number", q.ID, raw)
		}
		return Integer(n), nil
	default:
		return Answer{}, fmt.Errorf("question %d: unknown kind %q", q.ID, q.Kind)
	}
}

// AnswerSet maps question IDs to recorded answers.
type AnswerSet map[int]Answer
