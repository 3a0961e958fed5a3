package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	studentsTable = "students"
	recordsTable  = "records"

	// studentRowID is the only row of the students table.
	studentRowID = 1
)

var studentColumns = []string{
	"gender", "name", "matriculation_number", "previous_studies",
	"semester", "target_program", "updated_at",
}

var recordColumns = []string{"id", "position", "source_key", "target_id", "target_name", "grade"}

type sessionRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *sessionRepo) LoadStudent(ctx context.Context) (*StudentData, error) {
	query, args := builder().
		Select(studentColumns...).
		From(entsql.Table(studentsTable)).
		Where(entsql.EQ("id", studentRowID)).
		Query()

	var (
		s       StudentData
		updated string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.Gender, &s.Name, &s.MatriculationNumber, &s.PreviousStudies,
		&s.Semester, &s.TargetProgram, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if s.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) SaveStudent(ctx context.Context, s StudentData) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}
	query, args := builder().
		Insert(studentsTable).
		Columns(append([]string{"id"}, studentColumns...)...).
		Values(studentRowID, s.Gender, s.Name, s.MatriculationNumber, s.PreviousStudies,
			s.Semester, s.TargetProgram, formatTime(s.UpdatedAt)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	return nil
}

func (r *sessionRepo) LoadRecords(ctx context.Context) ([]RecordData, error) {
	query, args := builder().
		Select("id", "source_key", "target_id", "target_name", "grade").
		From(entsql.Table(recordsTable)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	var out []RecordData
	for rows.Next() {
		var rec RecordData
		if err := rows.Scan(&rec.ID, &rec.SourceKey, &rec.TargetID, &rec.TargetName, &rec.Grade); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) SaveRecords(ctx context.Context, records []RecordData) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(recordsTable).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}

	if len(records) > 0 {
		ins := builder().Insert(recordsTable).Columns(recordColumns...)
		for i, rec := range records {
			ins.Values(rec.ID, i, rec.SourceKey, rec.TargetID, rec.TargetName, rec.Grade)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

func (r *sessionRepo) ClearRecords(ctx context.Context) error {
	query, args := builder().Delete(recordsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
