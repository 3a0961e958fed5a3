package store

import (
	"context"
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

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestStudentSaveAndLoad(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	got, err := repo.LoadStudent(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if got != nil {
		t.Fatal("expected nil student when none saved")
	}

	want := StudentData{
		Gender:              "Frau",
		Name:                "Anna Schmidt",
		MatriculationNumber: "3012345",
		PreviousStudies:     "M.Sc. Data Science (PO 2016/2021)",
		Semester:            "2",
		TargetProgram:       "M.Sc. NLP (Version 2025)",
		UpdatedAt:           time.Date(2025, 3, 7, 9, 30, 0, 0, time.UTC),
	}
	if err := repo.SaveStudent(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Saving again replaces the single row.
	want.Name = "Anna Müller"
	if err := repo.SaveStudent(ctx, want); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err = repo.LoadStudent(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected saved student")
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, want.UpdatedAt)
	}
	got.UpdatedAt = want.UpdatedAt
	if *got != want {
		t.Errorf("student = %+v, want %+v", *got, want)
	}
}

func TestRecordsKeepOrder(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	records := []RecordData{
		{ID: "c", SourceKey: "Elements of Statistics", TargetID: "MA4DSC1003", TargetName: "MA4DSC1003 Elements of Statistics", Grade: "2,3"},
		{ID: "a", SourceKey: "Elements of Mathematics", TargetID: "MA4DSC1001", TargetName: "MA4DSC1001 Elements of Mathematics (WP)", Grade: "1,0"},
		{ID: "b", SourceKey: "Deutsch: Grundkurs I (A1.1)", TargetID: "MA2FWB1155", TargetName: "MA2FWB1155 Deutsch: Grundkurs I (A1.1)", Grade: "abc"},
	}
	if err := repo.SaveRecords(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}

	// Saving a shorter list replaces the previous one.
	if err := repo.SaveRecords(ctx, records[:1]); err != nil {
		t.Fatalf("save shorter: %v", err)
	}
	got, err = repo.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("load shorter: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("records after replace = %+v", got)
	}
}

func TestClearRecords(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	if err := repo.SaveRecords(ctx, []RecordData{{ID: "x", SourceKey: "Data Mining", TargetID: "BA4WIN6008", Grade: "1,7"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.ClearRecords(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := repo.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("records after clear = %d, want 0", len(got))
	}

	if err := repo.SaveRecords(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
}

func TestGenerationHistory(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.AppendGeneration(ctx, GenerationEventData{
			Timestamp:           base.Add(time.Duration(i) * time.Minute),
			StudentName:         "Max Muster",
			MatriculationNumber: "3012345",
			TemplatePath:        "/data/template.docx",
			OutputPath:          "/data/Anerkennung_Max_Muster_2025-03-07.docx",
			RecordCount:         4 + i,
			ActiveCount:         3,
			RowsMatched:         3,
			RowsRemoved:         i,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.RecentGenerations(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent returned %d events, want 2", len(got))
	}
	if got[0].RowsRemoved != 2 || got[1].RowsRemoved != 1 {
		t.Errorf("events not newest first: %+v", got)
	}
	if !got[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("timestamp = %v", got[0].Timestamp)
	}
	if got[0].RecordCount != 6 {
		t.Errorf("record_count = %d, want 6", got[0].RecordCount)
	}

	all, err := repo.RecentGenerations(ctx, 0)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all returned %d events, want 3", len(all))
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("ANERKENNUNG_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "anerkennung", "anerkennung.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}

	explicit := filepath.Join(dir, "custom", "session.db")
	t.Setenv("ANERKENNUNG_DB", explicit)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if p != explicit {
		t.Errorf("path = %q, want %q", p, explicit)
	}
}
