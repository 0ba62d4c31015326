package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"session_events", "submission_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestMigrationIndexesAndChecks(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, index := range []string{"session_events_session_id", "submission_events_session_id"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %s: %v", index, err)
		}
	}

	if _, err := db.Exec("INSERT INTO global_sequence (id, next_val) VALUES (2, 1)"); err == nil {
		t.Error("expected a second counter row to be rejected")
	}

	ctx := context.Background()
	repo := s.EventRepo()
	for i := 0; i < 2; i++ {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: ActionStart, Step: 1}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := db.Exec(
		"INSERT INTO session_events (sequence, timestamp, session_id, action) SELECT sequence, timestamp, session_id, action FROM session_events LIMIT 1",
	); err == nil {
		t.Error("expected a duplicate sequence to be rejected")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.drv); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendSubmission(ctx, SubmissionEventData{SessionID: "a", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendSubmission(ctx, SubmissionEventData{SessionID: "b"}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	subs, err := s.EventRepo().Submissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len = %d, want 2", len(subs))
	}
	if subs[0].Sequence <= subs[1].Sequence {
		t.Errorf("sequence did not continue across reopen: %d, %d", subs[0].Sequence, subs[1].Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A second counter over the same table must not reseed it.
	sc, err := newSequenceCounter(ctx, s.drv)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	events := []SessionEventData{
		{SessionID: "s1", Action: ActionStart, Step: 1},
		{SessionID: "s1", Action: ActionReset, Step: 4},
		{SessionID: "s2", Action: ActionStart, Step: 1},
		{SessionID: "s2", Action: ActionComplete, Step: 10},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append %+v: %v", e, err)
		}
	}

	all, err := repo.SessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("session events: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	if all[0].Action != ActionComplete || all[3].Action != ActionStart {
		t.Errorf("expected newest first, got %s ... %s", all[0].Action, all[3].Action)
	}
	if all[0].Timestamp.Before(before) {
		t.Errorf("timestamp %v predates test start", all[0].Timestamp)
	}

	s1, err := repo.SessionEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("session events s1: %v", err)
	}
	if len(s1) != 2 {
		t.Fatalf("s1 len = %d, want 2", len(s1))
	}
	if s1[0].Step != 4 {
		t.Errorf("s1[0].Step = %d, want 4", s1[0].Step)
	}
}

func TestAppendSessionEventRequiresSessionID(t *testing.T) {
	s := openTestStore(t)
	err := s.EventRepo().AppendSessionEvent(context.Background(), SessionEventData{Action: ActionStart})
	if err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestSubmissions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	ok := SubmissionEventData{
		SessionID:              "s1",
		Endpoint:               "http://localhost:5000/check",
		Success:                true,
		HasPotentialDepression: true,
		Score:                  7.5,
		Message:                "High risk",
		LatencyMs:              42,
		Answers:                `{"gender":"Male"}`,
	}
	failed := SubmissionEventData{
		SessionID:    "s1",
		ErrorMessage: "Invalid input",
		StatusCode:   400,
	}
	for _, e := range []SubmissionEventData{failed, ok} {
		if err := repo.AppendSubmission(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.Submissions(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].SubmissionEventData != ok {
		t.Errorf("newest = %+v, want %+v", got[0].SubmissionEventData, ok)
	}

	older, err := repo.Submissions(ctx, QueryOpts{Before: got[0].Sequence})
	if err != nil {
		t.Fatalf("submissions before: %v", err)
	}
	if len(older) != 1 {
		t.Fatalf("older len = %d, want 1", len(older))
	}
	if older[0].StatusCode != 400 || older[0].Success {
		t.Errorf("older = %+v", older[0])
	}
	if older[0].Answers != "{}" {
		t.Errorf("empty answers stored as %q, want {}", older[0].Answers)
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: ActionStart}); err != nil {
			t.Fatalf("append session %d: %v", i, err)
		}
		if err := repo.AppendSubmission(ctx, SubmissionEventData{SessionID: "s", Score: float64(i)}); err != nil {
			t.Fatalf("append submission %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	subs, err := repo.Submissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(subs) != 5 {
		t.Fatalf("remaining submissions = %d, want 5", len(subs))
	}
	if subs[0].Score != 6 {
		t.Errorf("latest score = %v, want 6", subs[0].Score)
	}

	sessions, err := repo.SessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("session events: %v", err)
	}
	// Each session event precedes its submission, so the one paired with
	// the oldest kept submission is pruned too.
	if len(sessions) != 4 {
		t.Errorf("remaining session events = %d, want 4", len(sessions))
	}
}

func TestPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.AppendSubmission(ctx, SubmissionEventData{SessionID: "s"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	subs, err := repo.Submissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(subs) != 2 {
		t.Errorf("remaining submissions = %d, want 2", len(subs))
	}
}

func TestPruneAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: ActionStart}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := repo.AppendSubmission(ctx, SubmissionEventData{SessionID: "s"}); err != nil {
		t.Fatalf("append submission: %v", err)
	}

	if err := repo.Prune(ctx, 0); err != nil {
		t.Fatalf("prune: %v", err)
	}

	subs, _ := repo.Submissions(ctx, QueryOpts{})
	sessions, _ := repo.SessionEvents(ctx, QueryOpts{})
	if len(subs) != 0 || len(sessions) != 0 {
		t.Errorf("expected empty history, got %d submissions and %d session events", len(subs), len(sessions))
	}
}

func TestResolvePathOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")

	got, err := ResolvePath(want)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestResolvePathXDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := ResolvePath("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := filepath.Join(dataHome, "mindcheck", "mindcheck.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
