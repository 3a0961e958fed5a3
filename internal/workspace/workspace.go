// Package workspace is the working session shared by the CLI and the
// interactive form: the student, the ordered record list and the mapping
// used to add records. Every change is persisted.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/mapping"
	"github.com/abhisek/anerkennung/internal/recognition"
	"github.com/abhisek/anerkennung/internal/store"
)

// ErrUnknownCourse is returned when a course is not in the mapping.
var ErrUnknownCourse = errors.New("unknown course")

// Workspace holds one session. It is not safe for concurrent use.
type Workspace struct {
	repo    store.SessionRepo
	logger  *zap.Logger
	mapping mapping.Mapping
	records *recognition.Store
	student filler.Student
}

// Open restores the session from repo. defaults fills a student that was
// never saved. A nil repo keeps the session in memory only.
func Open(ctx context.Context, repo store.SessionRepo, m mapping.Mapping, defaults filler.Student, logger *zap.Logger) (*Workspace, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Workspace{
		repo:    repo,
		logger:  logger,
		mapping: m,
		records: recognition.NewStore(),
		student: defaults,
	}
	if repo == nil {
		return w, nil
	}

	saved, err := repo.LoadStudent(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if saved != nil {
		w.student = studentFromData(*saved)
	}

	data, err := repo.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	records := make([]recognition.Record, len(data))
	for i, d := range data {
		records[i] = recognition.Record{
			ID:         d.ID,
			SourceKey:  d.SourceKey,
			TargetID:   d.TargetID,
			TargetName: d.TargetName,
			Grade:      d.Grade,
		}
	}
	w.records.Load(records)
	logger.Debug("session restored", zap.Int("records", len(records)), zap.Bool("student", saved != nil))
	return w, nil
}

// Student returns the current student.
func (w *Workspace) Student() filler.Student { return w.student }

// SetStudent replaces and persists the student.
func (w *Workspace) SetStudent(ctx context.Context, s filler.Student) error {
	w.student = s
	if w.repo == nil {
		return nil
	}
	if err := w.repo.SaveStudent(ctx, dataFromStudent(s)); err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	return nil
}

// Mapping returns the mapping used by Add.
func (w *Workspace) Mapping() mapping.Mapping { return w.mapping }

// SetMapping swaps the mapping, e.g. after the file was reloaded. Existing
// records keep the target they were added with.
func (w *Workspace) SetMapping(m mapping.Mapping) { w.mapping = m }

// Records returns the records in list order with their selection state.
func (w *Workspace) Records() []recognition.Record { return w.records.Records() }

// Active returns the records that count.
func (w *Workspace) Active() []recognition.Record { return w.records.Active() }

// Len returns the number of records.
func (w *Workspace) Len() int { return w.records.Len() }

// Available returns the sorted courses not used by any record.
func (w *Workspace) Available() []string {
	return recognition.AvailableCourses(w.mapping, w.records.Records())
}

// Add appends a record for course. The grade is trimmed and otherwise
// stored as entered.
func (w *Workspace) Add(ctx context.Context, course, grade string) (recognition.Record, error) {
	key, mod, ok := w.mapping.Lookup(course)
	if !ok {
		return recognition.Record{}, fmt.Errorf("%w: %q", ErrUnknownCourse, course)
	}
	rec := w.records.Add(key, mod, strings.TrimSpace(grade))
	w.logger.Debug("record added", zap.String("course", key), zap.String("target", mod.ID), zap.String("grade", rec.Grade))
	return rec, w.persist(ctx)
}

// Take removes the record at index i and returns it so it can be edited
// and added again.
func (w *Workspace) Take(ctx context.Context, i int) (recognition.Record, error) {
	rec, err := w.records.At(i)
	if err != nil {
		return recognition.Record{}, err
	}
	if _, err := w.records.Take(rec.ID); err != nil {
		return recognition.Record{}, err
	}
	return rec, w.persist(ctx)
}

// Regrade replaces the grade of the record at index i. Like an edit in the
// form, the record moves to the end of the list.
func (w *Workspace) Regrade(ctx context.Context, i int, grade string) (recognition.Record, error) {
	old, err := w.records.At(i)
	if err != nil {
		return recognition.Record{}, err
	}
	if _, err := w.records.Take(old.ID); err != nil {
		return recognition.Record{}, err
	}
	mod := mapping.Module{ID: old.TargetID, Name: old.TargetName}
	rec := w.records.Add(old.SourceKey, mod, strings.TrimSpace(grade))
	return rec, w.persist(ctx)
}

// Remove deletes the record at index i.
func (w *Workspace) Remove(ctx context.Context, i int) error {
	if err := w.records.RemoveAt(i); err != nil {
		return err
	}
	return w.persist(ctx)
}

// Clear deletes all records.
func (w *Workspace) Clear(ctx context.Context) error {
	w.records.Clear()
	if w.repo == nil {
		return nil
	}
	if err := w.repo.ClearRecords(ctx); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

func (w *Workspace) persist(ctx context.Context) error {
	if w.repo == nil {
		return nil
	}
	records := w.records.Records()
	data := make([]store.RecordData, len(records))
	for i, r := range records {
		data[i] = store.RecordData{
			ID:         r.ID,
			SourceKey:  r.SourceKey,
			TargetID:   r.TargetID,
			TargetName: r.TargetName,
			Grade:      r.Grade,
		}
	}
	if err := w.repo.SaveRecords(ctx, data); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

func studentFromData(d store.StudentData) filler.Student {
	return filler.Student{
		Gender:              d.Gender,
		Name:                d.Name,
		MatriculationNumber: d.MatriculationNumber,
		PreviousStudies:     d.PreviousStudies,
		Semester:            d.Semester,
		TargetProgram:       d.TargetProgram,
	}
}

func dataFromStudent(s filler.Student) store.StudentData {
	return store.StudentData{
		Gender:              s.Gender,
		Name:                s.Name,
		MatriculationNumber: s.MatriculationNumber,
		PreviousStudies:     s.PreviousStudies,
		Semester:            s.Semester,
		TargetProgram:       s.TargetProgram,
	}
}
