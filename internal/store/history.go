package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const generationsTable = "generation_events"

var generationColumns = []string{
	"timestamp", "student_name", "matriculation_number", "template_path",
	"output_path", "record_count", "active_count", "rows_matched", "rows_removed",
}

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}
	query, args := builder().
		Insert(generationsTable).
		Columns(generationColumns...).
		Values(formatTime(data.Timestamp), data.StudentName, data.MatriculationNumber,
			data.TemplatePath, data.OutputPath, data.RecordCount, data.ActiveCount,
			data.RowsMatched, data.RowsRemoved).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append generation: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentGenerations(ctx context.Context, limit int) ([]GenerationEventData, error) {
	sel := builder().
		Select(append([]string{"id"}, generationColumns...)...).
		From(entsql.Table(generationsTable)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	defer rows.Close()

	var out []GenerationEventData
	for rows.Next() {
		var (
			ev GenerationEventData
			ts string
		)
		if err := rows.Scan(&ev.ID, &ts, &ev.StudentName, &ev.MatriculationNumber,
			&ev.TemplatePath, &ev.OutputPath, &ev.RecordCount, &ev.ActiveCount,
			&ev.RowsMatched, &ev.RowsRemoved); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		if ev.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	return out, nil
}
