package import_catalog

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/logger"
	"github.com/light-bringer/carcat-service/internal/pkg/committer"
	"github.com/light-bringer/carcat-service/internal/pkg/csvrow"
)

// Step imports one CSV file in a single commit.
type Step interface {
	Name() string
	Run(ctx context.Context, fsys fs.FS) (*Report, error)
}

// Report counts what a step did with its rows.
type Report struct {
	Step      string
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
}

// StepError names the step that aborted an import run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("import step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// deps are shared by every step.
type deps struct {
	repo      contracts.ImportRepository
	committer contracts.Committer
}

func (d deps) commit(ctx context.Context, plan *committer.CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	if err := d.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// batch accumulates the mutations and counts of one step.
type batch struct {
	report *Report
	plan   *committer.CommitPlan
	log    *zap.Logger
}

func newBatch(ctx context.Context, step string) *batch {
	return &batch{
		report: &Report{Step: step},
		plan:   committer.NewPlan(),
		log:    logger.FromContext(ctx),
	}
}

// skip drops a row with a logged reason.
func (b *batch) skip(row csvrow.Row, reason string, err error) {
	b.report.Skipped++
	fields := []zap.Field{zap.Int("line", row.Line), zap.String("reason", reason)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	b.log.Warn("row skipped", fields...)
}

// malformed skips row when it could not be parsed.
func (b *batch) malformed(row csvrow.Row) bool {
	if row.Err == nil {
		return false
	}
	b.skip(row, "malformed csv record", row.Err)
	return true
}

func (b *batch) done() *Report {
	b.log.Info("step finished",
		zap.Int("created", b.report.Created),
		zap.Int("updated", b.report.Updated),
		zap.Int("unchanged", b.report.Unchanged),
		zap.Int("skipped", b.report.Skipped),
	)
	return b.report
}

// readRows loads every row of name. A missing file yields fs.ErrNotExist.
// Malformed records come back as rows with Err set.
func readRows(fsys fs.FS, name string) ([]csvrow.Row, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := csvrow.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

// distinct collects the non-blank values of col in first-seen order.
func distinct(rows []csvrow.Row, col string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		v := row.Get(col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// categoryTitle derives a display title from an explicit label or the key.
func categoryTitle(label, key string) string {
	if label != "" {
		return label
	}
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}
