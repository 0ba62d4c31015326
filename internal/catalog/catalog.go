package catalog

import "fmt"

// Catalog is an immutable, ordered list of questions with an ID index.
type Catalog struct {
	questions []Question
	byID      map[int]int // question ID -> position
}

// New builds a catalog from questions in display order.
// The input is copied and validated.
func New(questions []Question) (*Catalog, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	qs := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		qs[i] = q
	}

	byID := make(map[int]int, len(qs))
	for i, q := range qs {
		byID[q.ID] = i
	}
	return &Catalog{questions: qs, byID: byID}, nil
}

// MustNew is like New but panics on an invalid question list.
func MustNew(questions []Question) *Catalog {
	c, err := New(questions)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at the 1-based step.
func (c *Catalog) At(step int) (Question, bool) {
	if step < 1 || step > len(c.questions) {
		return Question{}, false
	}
	return c.questions[step-1], true
}

// Get returns the question with the given ID.
func (c *Catalog) Get(id int) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// All returns a copy of the questions in display order.
func (c *Catalog) All() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// ByField returns the question sent under the given wire field name.
func (c *Catalog) ByField(field string) (Question, bool) {
	for _, q := range c.questions {
		if q.Field == field {
			return q, true
		}
	}
	return Question{}, false
}
