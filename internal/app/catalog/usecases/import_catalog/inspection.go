package import_catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/pkg/csvrow"
)

// Inspection files.
const (
	SectionsFile    = "inspection_sections.csv"
	SubsectionsFile = "inspection_subsections.csv"
	ItemsFile       = "inspection_items.csv"
	ScoresFile      = "car_inspection_scores.csv"
	RemarksFile     = "car_subsection_remarks.csv"
)

// taxonomyStep upserts the inspection sections and their subsections.
// New sections are positioned after every stored one, in file order.
type taxonomyStep struct{ deps }

func (s *taxonomyStep) Name() string { return "inspection_master" }

func (s *taxonomyStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	sectionRows, err := readRows(fsys, SectionsFile)
	if err != nil {
		return nil, err
	}
	subsectionRows, err := readRows(fsys, SubsectionsFile)
	if err != nil {
		return nil, err
	}
	positions, err := s.repo.SectionPositions(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.Subsections(ctx)
	if err != nil {
		return nil, err
	}

	var next int64
	for _, pos := range positions {
		if pos >= next {
			next = pos + 1
		}
	}

	b := newBatch(ctx, s.Name())
	for _, row := range sectionRows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("key", "title"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		section := &domain.InspectionSection{
			Key:         row.Get("key"),
			Title:       row.Get("title"),
			Description: row.Get("description"),
		}
		if pos, ok := positions[section.Key]; ok {
			section.Position = pos
			b.plan.Add(s.repo.UpdateSectionMut(section))
			b.report.Updated++
			continue
		}
		section.Position = next
		next++
		positions[section.Key] = section.Position
		b.plan.Add(s.repo.InsertSectionMut(section))
		b.report.Created++
	}

	known := make(map[[2]string]bool, len(stored))
	for _, sub := range stored {
		known[[2]string{sub.SectionKey, sub.Key}] = true
	}
	for _, row := range subsectionRows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("section_key", "key", "title"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		sub := &domain.InspectionSubsection{
			SectionKey: row.Get("section_key"),
			Key:        row.Get("key"),
			Title:      row.Get("title"),
			Remarks:    row.Get("remarks"),
		}
		if _, ok := positions[sub.SectionKey]; !ok {
			b.skip(row, "unknown section_key", domain.ErrSectionNotFound)
			continue
		}
		if sub.SortOrder, err = row.IntOr("order", 0); err != nil {
			b.skip(row, "invalid value", err)
			continue
		}

		b.plan.Add(s.repo.UpsertSubsectionMut(sub))
		k := [2]string{sub.SectionKey, sub.Key}
		if known[k] {
			b.report.Updated++
		} else {
			known[k] = true
			b.report.Created++
		}
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}

// subsectionIndex resolves subsection references against the taxonomy.
type subsectionIndex struct {
	pairs    map[[2]string]bool
	sections map[string][]string // subsection key -> section keys
}

func (d deps) loadSubsections(ctx context.Context) (*subsectionIndex, error) {
	subs, err := d.repo.Subsections(ctx)
	if err != nil {
		return nil, err
	}
	ix := &subsectionIndex{pairs: make(map[[2]string]bool), sections: make(map[string][]string)}
	for _, sub := range subs {
		ix.pairs[[2]string{sub.SectionKey, sub.Key}] = true
		ix.sections[sub.Key] = append(ix.sections[sub.Key], sub.SectionKey)
	}
	return ix, nil
}

// resolve returns the section owning subKey. Without a section key the
// subsection key must be unique across sections.
func (ix *subsectionIndex) resolve(sectionKey, subKey string) (string, error) {
	if sectionKey != "" {
		if !ix.pairs[[2]string{sectionKey, subKey}] {
			return "", fmt.Errorf("%w: %s/%s", domain.ErrSubsectionNotFound, sectionKey, subKey)
		}
		return sectionKey, nil
	}
	switch owners := ix.sections[subKey]; len(owners) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrSubsectionNotFound, subKey)
	case 1:
		return owners[0], nil
	default:
		return "", fmt.Errorf("%w: subsection %s is in sections %v", domain.ErrAmbiguousLookup, subKey, owners)
	}
}

func resolveReason(err error) string {
	if errors.Is(err, domain.ErrAmbiguousLookup) {
		return "ambiguous subsection_key"
	}
	return "unknown subsection"
}

// itemsStep upserts inspection items on (car, section, subsection, name).
type itemsStep struct{ deps }

func (s *itemsStep) Name() string { return "inspection_items" }

func (s *itemsStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, ItemsFile)
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.ItemRows)
	if err != nil {
		return nil, err
	}
	subs, err := s.loadSubsections(ctx)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "subsection_key", "name"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		sectionKey, err := subs.resolve(row.Get("section_key"), row.Get("subsection_key"))
		if err != nil {
			b.skip(row, resolveReason(err), err)
			continue
		}
		status, err := domain.ParseItemStatus(row.Get("status"))
		if err != nil {
			b.skip(row, "invalid value", err)
			continue
		}
		item := &domain.InspectionItem{
			SectionKey:    sectionKey,
			SubsectionKey: row.Get("subsection_key"),
			Name:          row.Get("name"),
			Status:        status,
			Remarks:       row.Get("remarks"),
		}

		err = upsertChild(b, children, carID, []string{item.SectionKey, item.SubsectionKey, item.Name},
			func(pos int64) (*spanner.Mutation, error) { return s.repo.InsertItemMut(carID, item, pos) },
			func() *spanner.Mutation { return s.repo.UpdateItemMut(carID, item) },
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

// scoresStep upserts section scores on (car, section).
type scoresStep struct{ deps }

func (s *scoresStep) Name() string { return "car_inspection_scores" }

func (s *scoresStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, ScoresFile)
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.ScoreRows)
	if err != nil {
		return nil, err
	}
	sections, err := s.repo.SectionPositions(ctx)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "section_key", "score", "rating"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		if _, ok := sections[row.Get("section_key")]; !ok {
			b.skip(row, "unknown section_key", domain.ErrSectionNotFound)
			continue
		}
		score, err := parseScore(row)
		if err != nil {
			b.skip(row, "invalid value", err)
			continue
		}

		err = upsertChild(b, children, carID, []string{score.SectionKey},
			func(pos int64) (*spanner.Mutation, error) { return s.repo.InsertScoreMut(carID, score, pos) },
			func() *spanner.Mutation { return s.repo.UpdateScoreMut(carID, score) },
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

func parseScore(row csvrow.Row) (*domain.SectionScore, error) {
	value, err := domain.ParseScore(row.Get("score"))
	if err != nil {
		return nil, err
	}
	rating, err := domain.ParseRating(row.Get("rating"))
	if err != nil {
		return nil, err
	}
	return &domain.SectionScore{
		SectionKey: row.Get("section_key"),
		Score:      value,
		Rating:     rating,
		Status:     row.Get("status"),
		Remarks:    row.Get("remarks"),
	}, nil
}

// remarksStep upserts per-car subsection remarks. The file is optional.
type remarksStep struct{ deps }

func (s *remarksStep) Name() string { return "car_subsection_remarks" }

func (s *remarksStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, RemarksFile)
	if errors.Is(err, fs.ErrNotExist) {
		b := newBatch(ctx, s.Name())
		b.log.Warn("file not found, step skipped", zap.String("file", RemarksFile))
		return b.report, nil
	}
	if err != nil {
		return nil, err
	}
	children, err := s.loadCarChildren(ctx, rows, contracts.RemarkRows)
	if err != nil {
		return nil, err
	}
	subs, err := s.loadSubsections(ctx)
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "subsection_key"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		carID, ok := children.ids[row.Get("car_code")]
		if !ok {
			b.skip(row, "unknown car_code", domain.ErrCarNotFound)
			continue
		}
		sectionKey, err := subs.resolve(row.Get("section_key"), row.Get("subsection_key"))
		if err != nil {
			b.skip(row, resolveReason(err), err)
			continue
		}
		remark := &domain.SubsectionRemark{
			SectionKey:    sectionKey,
			SubsectionKey: row.Get("subsection_key"),
			Status:        row.Get("status"),
			Remarks:       row.Get("remarks"),
		}

		err = upsertChild(b, children, carID, []string{remark.SectionKey, remark.SubsectionKey},
			func(pos int64) (*spanner.Mutation, error) { return s.repo.InsertRemarkMut(carID, remark, pos) },
			func() *spanner.Mutation { return s.repo.UpdateRemarkMut(carID, remark) },
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
