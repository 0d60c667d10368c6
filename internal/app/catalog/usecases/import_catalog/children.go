package import_catalog

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"unicode/utf8"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/pkg/csvrow"
)

// Per-car child files.
const (
	ImagesFile     = "car_images.csv"
	HighlightsFile = "car_highlights.csv"
	SpecsFile      = "car_specs.csv"
	FeaturesFile   = "car_features.csv"
	ReasonsFile    = "car_reasons.csv"
)

const maxHighlightLen = 50

// carChildren resolves car_code cells and the stored child rows of those cars.
type carChildren struct {
	ids   map[string]string
	index *contracts.ChildIndex
}

func (d deps) loadCarChildren(ctx context.Context, rows []csvrow.Row, kind contracts.ChildKind) (*carChildren, error) {
	ids, err := d.repo.CarIDsByCode(ctx, distinct(rows, "car_code"))
	if err != nil {
		return nil, err
	}
	carIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		carIDs = append(carIDs, id)
	}
	sort.Strings(carIDs)

	index, err := d.repo.ChildIndex(ctx, kind, carIDs)
	if err != nil {
		return nil, err
	}
	return &carChildren{ids: ids, index: index}, nil
}

// categories creates missing master categories on first use.
type categories struct {
	kind  domain.CategoryKind
	known map[string]bool
}

func (d deps) loadCategories(ctx context.Context, rows []csvrow.Row, kind domain.CategoryKind) (*categories, error) {
	known, err := d.repo.CategoryKeys(ctx, kind, distinct(rows, "category_key"))
	if err != nil {
		return nil, err
	}
	return &categories{kind: kind, known: known}, nil
}

func (c *categories) ensure(b *batch, repo contracts.ImportMutations, key, label string) {
	if c.known[key] {
		return
	}
	b.plan.Add(repo.InsertCategoryMut(c.kind, key, categoryTitle(label, key)))
	c.known[key] = true
}

// upsertChild inserts a new child row or updates a stored one, keeping the counts.
func upsertChild(
	b *batch,
	children *carChildren,
	carID string,
	key []string,
	insert func(position int64) (*spanner.Mutation, error),
	update func() *spanner.Mutation,
) error {
	position, exists := children.index.Claim(carID, key...)
	if exists {
		b.plan.Add(update())
		b.report.Updated++
		return nil
	}
	mut, err := insert(position)
	if err != nil {
		return err
	}
	b.plan.Add(mut)
	b.report.Created++
	return nil
}

// imagesStep upserts car images on (car, category, image).
type imagesStep struct{ deps }

func (s *imagesStep) Name() string { return "car_images" }

func (s *imagesStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, ImagesFile)
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.ImageRows)
	if err != nil {
		return nil, err
	}
	cats, err := s.loadCategories(ctx, rows, domain.ImageCategory)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "category_key", "image"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		sortOrder, err := row.IntOr("sort_order", 0)
		if err != nil {
			b.skip(row, "invalid value", err)
			continue
		}
		img := &domain.CarImage{
			CategoryKey: row.Get("category_key"),
			Path:        row.Get("image"),
			Caption:     row.Get("caption"),
			SortOrder:   sortOrder,
		}
		cats.ensure(b, s.repo, img.CategoryKey, row.Get("category_label"))

		err = upsertChild(b, children, carID, []string{img.CategoryKey, img.Path},
			func(pos int64) (*spanner.Mutation, error) { return s.repo.InsertImageMut(carID, img, pos) },
			func() *spanner.Mutation { return s.repo.UpdateImageMut(carID, img) },
		)
		if err != nil {
			return nil, err
		}
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}

// highlightsStep adds highlights missing on (car, text).
type highlightsStep struct{ deps }

func (s *highlightsStep) Name() string { return "car_highlights" }

func (s *highlightsStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, HighlightsFile)
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.HighlightRows)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "text"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		h := &domain.CarHighlight{Text: row.Get("text")}
		if err := validateHighlight(h.Text); err != nil {
			b.skip(row, "invalid value", err)
			continue
		}

		position, exists := children.index.Claim(carID, h.Text)
		if exists {
			b.report.Unchanged++
			continue
		}
		mut, err := s.repo.InsertHighlightMut(carID, h, position)
		if err != nil {
			return nil, err
		}
		b.plan.Add(mut)
		b.report.Created++
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}

func validateHighlight(text string) error {
	if utf8.RuneCountInString(text) > maxHighlightLen {
		return fmt.Errorf("highlight longer than %d characters", maxHighlightLen)
	}
	return nil
}

// specsStep upserts specs on (car, category, label).
type specsStep struct{ deps }

func (s *specsStep) Name() string { return "car_specs" }

func (s *specsStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, SpecsFile)
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.SpecRows)
	if err != nil {
		return nil, err
	}
	cats, err := s.loadCategories(ctx, rows, domain.SpecCategory)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "category_key", "label"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		spec := &domain.CarSpec{
			CategoryKey: row.Get("category_key"),
			Label:       row.Get("label"),
			Value:       row.Get("value"),
		}
		cats.ensure(b, s.repo, spec.CategoryKey, row.Get("category_title"))

		err = upsertChild(b, children, carID, []string{spec.CategoryKey, spec.Label},
			func(pos int64) (*spanner.Mutation, error) { return s.repo.InsertSpecMut(carID, spec, pos) },
			func() *spanner.Mutation { return s.repo.UpdateSpecMut(carID, spec) },
		)
		if err != nil {
			return nil, err
		}
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}

// featuresStep upserts features on (car, category, name).
type featuresStep struct{ deps }

func (s *featuresStep) Name() string { return "car_features" }

func (s *featuresStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, FeaturesFile)
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.FeatureRows)
	if err != nil {
		return nil, err
	}
	cats, err := s.loadCategories(ctx, rows, domain.FeatureCategory)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "category_key", "name"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		status, err := domain.ParseFeatureStatus(row.Get("status"))
		if err != nil {
			b.skip(row, "invalid value", err)
			continue
		}
		feature := &domain.CarFeature{
			CategoryKey: row.Get("category_key"),
			Name:        row.Get("name"),
			Status:      status,
		}
		cats.ensure(b, s.repo, feature.CategoryKey, row.Get("category_title"))

		err = upsertChild(b, children, carID, []string{feature.CategoryKey, feature.Name},
			func(pos int64) (*spanner.Mutation, error) { return s.repo.InsertFeatureMut(carID, feature, pos) },
			func() *spanner.Mutation { return s.repo.UpdateFeatureMut(carID, feature) },
		)
		if err != nil {
			return nil, err
		}
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}

// reasonsStep upserts reasons to buy on (car, title).
type reasonsStep struct{ deps }

func (s *reasonsStep) Name() string { return "car_reasons" }

func (s *reasonsStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, ReasonsFile)
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.ReasonRows)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "title"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		sortOrder, err := row.IntOr("sort_order", 0)
		if err != nil {
			b.skip(row, "invalid value", err)
			continue
		}
		reason := &domain.CarReason{
			Title:       row.Get("title"),
			Description: row.Get("description"),
			SortOrder:   sortOrder,
		}

		err = upsertChild(b, children, carID, []string{reason.Title},
			func(pos int64) (*spanner.Mutation, error) { return s.repo.InsertReasonMut(carID, reason, pos) },
			func() *spanner.Mutation { return s.repo.UpdateReasonMut(carID, reason) },
		)
		if err != nil {
			return nil, err
		}
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}
