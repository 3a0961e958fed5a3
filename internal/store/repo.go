package store

import (
	"context"
	"time"
)

// StudentData is the persisted student form.
type StudentData struct {
	Gender              string
	Name                string
	MatriculationNumber string
	PreviousStudies     string
	Semester            string
	TargetProgram       string
	UpdatedAt           time.Time
}

// RecordData is one persisted recognition record. The selection state is
// not stored; it is recomputed on load.
type RecordData struct {
	ID         string
	SourceKey  string
	TargetID   string
	TargetName string
	Grade      string
}

// GenerationEventData describes one generated document.
type GenerationEventData struct {
	ID                  int64
	Timestamp           time.Time
	StudentName         string
	MatriculationNumber string
	TemplatePath        string
	OutputPath          string
	RecordCount         int
	ActiveCount         int
	RowsMatched         int
	RowsRemoved         int
}

// SessionRepo persists the working session between runs.
type SessionRepo interface {
	// LoadStudent returns the saved student, or nil if none was saved.
	LoadStudent(ctx context.Context) (*StudentData, error)

	// SaveStudent replaces the saved student.
	SaveStudent(ctx context.Context, s StudentData) error

	// LoadRecords returns the saved records in list order.
	LoadRecords(ctx context.Context) ([]RecordData, error)

	// SaveRecords replaces all saved records in one transaction.
	SaveRecords(ctx context.Context, records []RecordData) error

	// ClearRecords deletes all saved records.
	ClearRecords(ctx context.Context) error
}

// HistoryRepo provides append access to generation events.
type HistoryRepo interface {
	// AppendGeneration records a generated document.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// RecentGenerations returns up to limit events, newest first.
	// A limit of 0 returns all events.
	RecentGenerations(ctx context.Context, limit int) ([]GenerationEventData, error)
}
