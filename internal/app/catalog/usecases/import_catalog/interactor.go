// Package import_catalog loads the catalog from a directory of CSV files.
//
// Steps run in dependency order (dealers before cars, cars before their
// children, the inspection taxonomy before items, scores and remarks). Each
// step commits its accepted rows atomically; a bad row is skipped and logged,
// while a store failure aborts the run with a StepError.
package import_catalog

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/logger"
	"github.com/light-bringer/carcat-service/internal/pkg/clock"
)

// Recorder observes finished steps.
type Recorder interface {
	ObserveStep(step string, created, updated, unchanged, skipped int, elapsed time.Duration, failed bool)
}

// Request selects the directory to import.
type Request struct {
	FS fs.FS
}

// Response lists the reports of the steps that completed.
type Response struct {
	Reports []*Report
}

// Interactor handles the catalog import use case.
type Interactor struct {
	steps    []Step
	clock    clock.Clock
	recorder Recorder
}

// NewInteractor creates a new import interactor. recorder may be nil.
func NewInteractor(
	repo contracts.ImportRepository,
	committer contracts.Committer,
	clock clock.Clock,
	recorder Recorder,
) *Interactor {
	d := deps{repo: repo, committer: committer}
	return &Interactor{
		steps: []Step{
			&dealersStep{d},
			&carsStep{d},
			&imagesStep{d},
			&highlightsStep{d},
			&specsStep{d},
			&featuresStep{d},
			&reasonsStep{d},
			&taxonomyStep{d},
			&itemsStep{d},
			&scoresStep{d},
			&remarksStep{d},
		},
		clock:    clock,
		recorder: recorder,
	}
}

// Steps returns the step names in run order.
func (i *Interactor) Steps() []string {
	names := make([]string, len(i.steps))
	for n, s := range i.steps {
		names[n] = s.Name()
	}
	return names
}

// Execute runs every step in order and stops at the first failed step.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.FS == nil {
		return nil, errors.New("import source is required")
	}

	resp := &Response{}
	for _, step := range i.steps {
		stepCtx := logger.With(ctx, zap.String("step", step.Name()))
		start := i.clock.Now()

		report, err := step.Run(stepCtx, req.FS)
		elapsed := i.clock.Now().Sub(start)
		if err != nil {
			i.observe(step.Name(), &Report{Step: step.Name()}, elapsed, true)
			logger.FromContext(stepCtx).Error("import step failed", zap.Error(err))
			return resp, &StepError{Step: step.Name(), Err: err}
		}

		i.observe(step.Name(), report, elapsed, false)
		resp.Reports = append(resp.Reports, report)
	}
	return resp, nil
}

func (i *Interactor) observe(step string, r *Report, elapsed time.Duration, failed bool) {
	if i.recorder == nil {
		return
	}
	i.recorder.ObserveStep(step, r.Created, r.Updated, r.Unchanged, r.Skipped, elapsed, failed)
}
