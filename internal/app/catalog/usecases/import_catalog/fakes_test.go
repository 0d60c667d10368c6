package import_catalog

import (
	"context"
	"sync"
	"time"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/carcat-service/internal/pkg/committer"
)

// fakeLookup serves natural-key lookups from maps.
type fakeLookup struct {
	dealers     map[string]string
	cars        map[string]string
	categories  map[domain.CategoryKind]map[string]bool
	sections    map[string]int64
	subsections []domain.InspectionSubsection
	children    map[contracts.ChildKind]*contracts.ChildIndex
	err         error
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		dealers:    map[string]string{},
		cars:       map[string]string{},
		categories: map[domain.CategoryKind]map[string]bool{},
		sections:   map[string]int64{},
		children:   map[contracts.ChildKind]*contracts.ChildIndex{},
	}
}

func pick(src map[string]string, keys []string) map[string]string {
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := src[k]; ok {
			out[k] = v
		}
	}
	return out
}

func (f *fakeLookup) DealerIDsByCode(_ context.Context, codes []string) (map[string]string, error) {
	return pick(f.dealers, codes), f.err
}

func (f *fakeLookup) DealerExists(_ context.Context, dealerID string) (bool, error) {
	for _, id := range f.dealers {
		if id == dealerID {
			return true, f.err
		}
	}
	return false, f.err
}

func (f *fakeLookup) CarIDsByCode(_ context.Context, codes []string) (map[string]string, error) {
	return pick(f.cars, codes), f.err
}

func (f *fakeLookup) CarIDsByRegistration(context.Context, string, []string) (map[string]string, error) {
	return map[string]string{}, f.err
}

func (f *fakeLookup) CategoryKeys(_ context.Context, kind domain.CategoryKind, keys []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, k := range keys {
		if f.categories[kind][k] {
			out[k] = true
		}
	}
	return out, f.err
}

func (f *fakeLookup) SectionPositions(context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(f.sections))
	for k, v := range f.sections {
		out[k] = v
	}
	return out, f.err
}

func (f *fakeLookup) Subsections(context.Context) ([]domain.InspectionSubsection, error) {
	return f.subsections, f.err
}

func (f *fakeLookup) ChildIndex(_ context.Context, kind contracts.ChildKind, _ []string) (*contracts.ChildIndex, error) {
	if ix, ok := f.children[kind]; ok {
		return ix, f.err
	}
	return contracts.NewChildIndex(), f.err
}

// fakeRepo pairs the fake lookups with the real mutation builder.
type fakeRepo struct {
	*fakeLookup
	*repo.MutationBuilder
}

func newFakeRepo(lookup *fakeLookup) *fakeRepo {
	return &fakeRepo{fakeLookup: lookup, MutationBuilder: repo.NewMutationBuilder()}
}

var _ contracts.ImportRepository = (*fakeRepo)(nil)

// fakeCommitter records applied plans.
type fakeCommitter struct {
	mu     sync.Mutex
	plans  []*committer.CommitPlan
	failOn int // 1-based Apply call to fail; 0 never fails
	err    error
}

func (c *fakeCommitter) Apply(_ context.Context, plan *committer.CommitPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn > 0 && len(c.plans)+1 == c.failOn {
		return c.err
	}
	c.plans = append(c.plans, plan)
	return nil
}

func (c *fakeCommitter) lastCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.plans) == 0 {
		return 0
	}
	return c.plans[len(c.plans)-1].Count()
}

type observation struct {
	step    string
	created int
	skipped int
	failed  bool
}

type fakeRecorder struct {
	seen []observation
}

func (r *fakeRecorder) ObserveStep(step string, created, _, _, skipped int, _ time.Duration, failed bool) {
	r.seen = append(r.seen, observation{step: step, created: created, skipped: skipped, failed: failed})
}
