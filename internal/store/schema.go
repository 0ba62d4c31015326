package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableSessionEvents    = "session_events"
	tableSubmissionEvents = "submission_events"
	tableSequence         = "global_sequence"
)

var (
	// sequenceColumns holds the single counter row.
	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
		Annotation: &entsql.Annotation{Check: "id = 1"},
	}

	// Every event table shares the id/sequence/timestamp prefix so events
	// can be ordered across tables by sequence.
	sessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "step", Type: field.TypeInt, Default: 0},
	}
	sessionEventsTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "session_events_session_id",
				Unique:  false,
				Columns: []*schema.Column{sessionEventsColumns[3]},
			},
		},
	}

	submissionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "endpoint", Type: field.TypeString, Default: ""},
		{Name: "success", Type: field.TypeBool},
		{Name: "has_potential_depression", Type: field.TypeBool, Default: false},
		{Name: "score", Type: field.TypeFloat64, Default: 0},
		{Name: "message", Type: field.TypeString, Default: ""},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "status_code", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "answers", Type: field.TypeString, Default: "{}"},
	}
	submissionEventsTable = &schema.Table{
		Name:       tableSubmissionEvents,
		Columns:    submissionEventsColumns,
		PrimaryKey: []*schema.Column{submissionEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "submission_events_session_id",
				Unique:  false,
				Columns: []*schema.Column{submissionEventsColumns[3]},
			},
		},
	}

	// tables lists every table the store owns, in creation order.
	tables = []*schema.Table{
		sequenceTable,
		sessionEventsTable,
		submissionEventsTable,
	}
)

// migrate creates missing tables, columns and indexes. Existing columns are
// never dropped.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
