// Package generate turns a working session into a filled recognition
// document on disk.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/anerkennung/internal/docx"
	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/recognition"
	"github.com/abhisek/anerkennung/internal/store"
)

var (
	// ErrMissingField is returned when name or matriculation number is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrNoRecords is returned when there is nothing to recognize.
	ErrNoRecords = errors.New("no records")

	// ErrGenerationFailed wraps unexpected failures while assembling or
	// saving the document. No output file is left behind.
	ErrGenerationFailed = errors.New("generation failed")
)

// Request describes one document to generate.
type Request struct {
	Student      filler.Student
	Records      []recognition.Record
	TemplatePath string
	// OutputDir defaults to the template's directory.
	OutputDir string
	// Open shows the result in the platform viewer.
	Open bool
}

// Result describes a generated document.
type Result struct {
	OutputPath string
	Report     *filler.Report
	Opened     bool
}

// Opener shows a file to the user.
type Opener func(ctx context.Context, path string) error

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the time source used for the date placeholders and the
// file name.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithOpener replaces the platform viewer.
func WithOpener(o Opener) Option {
	return func(g *Generator) { g.opener = o }
}

// Generator runs the generate use case.
type Generator struct {
	history store.HistoryRepo
	logger  *zap.Logger
	now     func() time.Time
	opener  Opener
}

// New creates a Generator. history may be nil.
func New(history store.HistoryRepo, logger *zap.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		history: history,
		logger:  logger,
		now:     time.Now,
		opener:  OpenInViewer,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates req, fills the template and saves the result.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, err := os.Stat(req.TemplatePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", filler.ErrTemplateMissing, req.TemplatePath)
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	now := g.now()
	doc, err := docx.Open(req.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	report, err := filler.FillWithReport(doc, req.Student, req.Records, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	g.logger.Debug("template filled",
		zap.String("template", req.TemplatePath),
		zap.Int("tokens_replaced", report.TokensReplaced),
		zap.Int("paragraph_fallbacks", report.ParagraphFallbacks),
		zap.Bool("table_found", report.TableFound),
		zap.Int("rows_matched", report.RowsMatched),
		zap.Int("rows_removed", report.RowsRemoved),
		zap.Strings("unmatched", report.UnmatchedTargetIDs),
	)

	dir := req.OutputDir
	if dir == "" {
		dir = filepath.Dir(req.TemplatePath)
	}
	out := filepath.Join(dir, OutputName(req.Student.Name, now))
	if err := saveAtomic(doc, out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	g.logger.Info("document generated", zap.String("path", out))

	g.recordHistory(ctx, req, out, report, now)

	res := &Result{OutputPath: out, Report: report}
	if req.Open && g.opener != nil {
		if err := g.opener(ctx, out); err != nil {
			g.logger.Warn("open document", zap.String("path", out), zap.Error(err))
		} else {
			res.Opened = true
		}
	}
	return res, nil
}

// OutputName derives the document file name from the student name and the
// date: Anerkennung_<Name>_<YYYY-MM-DD>.docx with spaces and path
// separators replaced by underscores.
func OutputName(name string, now time.Time) string {
	clean := norm.NFC.String(strings.TrimSpace(name))
	clean = strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(clean)
	return "Anerkennung_" + clean + "_" + now.Format("2006-01-02") + ".docx"
}

func validate(req Request) error {
	var missing []string
	if strings.TrimSpace(req.Student.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Student.MatriculationNumber) == "" {
		missing = append(missing, "matriculation number")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	if len(req.Records) == 0 {
		return ErrNoRecords
	}
	return nil
}

// saveAtomic writes doc next to path and renames it into place.
func saveAtomic(doc *docx.Document, path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".anerkennung-*.docx")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = doc.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	return nil
}

func (g *Generator) recordHistory(ctx context.Context, req Request, out string, report *filler.Report, now time.Time) {
	if g.history == nil {
		return
	}
	active := 0
	for _, r := range req.Records {
		if r.Active {
			active++
		}
	}
	err := g.history.AppendGeneration(ctx, store.GenerationEventData{
		Timestamp:           now,
		StudentName:         req.Student.Name,
		MatriculationNumber: req.Student.MatriculationNumber,
		TemplatePath:        req.TemplatePath,
		OutputPath:          out,
		RecordCount:         len(req.Records),
		ActiveCount:         active,
		RowsMatched:         report.RowsMatched,
		RowsRemoved:         report.RowsRemoved,
	})
	if err != nil {
		g.logger.Warn("record generation history", zap.Error(err))
	}
}
