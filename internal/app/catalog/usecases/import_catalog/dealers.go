package import_catalog

import (
	"context"
	"io/fs"

	"github.com/google/uuid"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/pkg/csvrow"
	"github.com/light-bringer/carcat-service/internal/pkg/literal"
)

// DealersFile is the dealer master file.
const DealersFile = "dealers.csv"

// dealersStep creates dealers missing by dealer_code. Existing dealers are
// left untouched.
type dealersStep struct{ deps }

func (s *dealersStep) Name() string { return "dealers" }

func (s *dealersStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, DealersFile)
	if err != nil {
		return nil, err
	}
	known, err := s.repo.DealerIDsByCode(ctx, distinct(rows, "dealer_code"))
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("dealer_code", "name"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		code := row.Get("dealer_code")
		if _, ok := known[code]; ok {
			b.report.Unchanged++
			continue
		}

		dealer, err := s.parseDealer(row)
		if err != nil {
			b.skip(row, "invalid value", err)
			continue
		}
		b.plan.Add(s.repo.InsertDealerMut(dealer))
		known[code] = dealer.ID
		b.report.Created++
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}

func (s *dealersStep) parseDealer(row csvrow.Row) (*domain.Dealer, error) {
	tier, err := domain.ParseDealerTier(row.Get("tier"))
	if err != nil {
		return nil, err
	}
	tags, err := literal.ParseList(row.Get("tags"))
	if err != nil {
		return nil, err
	}
	return &domain.Dealer{
		ID:         uuid.New().String(),
		Code:       row.Get("dealer_code"),
		Name:       row.Get("name"),
		Phone:      row.Get("phone"),
		Email:      row.Get("email"),
		Address:    row.Get("address"),
		City:       row.Get("city"),
		State:      row.Get("state"),
		PostalCode: row.Get("postal_code"),
		Tier:       tier,
		Tags:       tags,
	}, nil
}
