package upload_cars

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/carcat-service/internal/pkg/committer"
)

const dealerID = "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b"

type fakeRepo struct {
	*repo.MutationBuilder
	dealers       map[string]bool
	registrations map[string]string
	highlights    *contracts.ChildIndex
	reasons       *contracts.ChildIndex
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		MutationBuilder: repo.NewMutationBuilder(),
		dealers:         map[string]bool{dealerID: true},
		registrations:   map[string]string{},
		highlights:      contracts.NewChildIndex(),
		reasons:         contracts.NewChildIndex(),
	}
}

func (f *fakeRepo) DealerIDsByCode(context.Context, []string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (f *fakeRepo) DealerExists(_ context.Context, id string) (bool, error) {
	return f.dealers[id], nil
}

func (f *fakeRepo) CarIDsByCode(context.Context, []string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (f *fakeRepo) CarIDsByRegistration(_ context.Context, _ string, regs []string) (map[string]string, error) {
	out := map[string]string{}
	for _, r := range regs {
		if id, ok := f.registrations[r]; ok {
			out[r] = id
		}
	}
	return out, nil
}

func (f *fakeRepo) CategoryKeys(context.Context, domain.CategoryKind, []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (f *fakeRepo) SectionPositions(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (f *fakeRepo) Subsections(context.Context) ([]domain.InspectionSubsection, error) {
	return nil, nil
}

func (f *fakeRepo) ChildIndex(_ context.Context, kind contracts.ChildKind, _ []string) (*contracts.ChildIndex, error) {
	if kind == contracts.ReasonRows {
		return f.reasons, nil
	}
	return f.highlights, nil
}

type fakeCommitter struct {
	plans []*committer.CommitPlan
	err   error
}

func (c *fakeCommitter) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if c.err != nil {
		return c.err
	}
	c.plans = append(c.plans, plan)
	return nil
}

const header = "registration_number,title,brand,model,year,price,km,fuel,transmission,city,highlights,reasons_to_buy\n"

func TestInteractor_Execute(t *testing.T) {
	t.Run("upserts cars with highlights and reasons", func(t *testing.T) {
		r := newFakeRepo()
		r.registrations["MH12AB1234"] = "car-existing"
		r.highlights.Observe("car-existing", 0, "Single owner")
		r.reasons.Observe("car-existing", 0, "Warranty")
		comm := &fakeCommitter{}

		csv := header +
			"MH12AB1234,City ZX,Honda,City,2020,650000,42000,petrol,manual,Pune,Single owner|Low mileage| ,Warranty::Six months left\n" +
			"DL3CAB0001,Creta SX,Hyundai,Creta,2022,1200000,15000,diesel,automatic,Delhi,Sunroof|Sunroof,Service::Dealer serviced||no separator||::blank title\n" +
			"KA01XY0001,,Maruti,Swift,2019,500000,30000,petrol,manual,Bengaluru,,\n" +
			"KA01XY0002,Swift VXI,Maruti,Swift,2019,lots,30000,petrol,manual,Bengaluru,,\n"

		resp, err := NewInteractor(r, comm).Execute(context.Background(), &Request{
			DealerID: dealerID,
			File:     strings.NewReader(csv),
		})
		require.NoError(t, err)

		assert.Equal(t, &Response{Created: 1, Updated: 1, Skipped: 2, Highlights: 2, Reasons: 2}, resp)
		require.Len(t, comm.plans, 1)
		// 2 cars, 2 highlights, 2 reasons
		assert.Equal(t, 6, comm.plans[0].Count())
	})

	t.Run("repeated registration updates the new car", func(t *testing.T) {
		comm := &fakeCommitter{}
		csv := header +
			"DL3CAB0001,Creta SX,Hyundai,Creta,2022,1200000,15000,diesel,automatic,Delhi,,\n" +
			"DL3CAB0001,Creta SX(O),Hyundai,Creta,2022,1250000,15000,diesel,automatic,Delhi,,\n"

		resp, err := NewInteractor(newFakeRepo(), comm).Execute(context.Background(), &Request{
			DealerID: dealerID,
			File:     strings.NewReader(csv),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Created)
		assert.Equal(t, 1, resp.Updated)
	})

	t.Run("malformed record is skipped", func(t *testing.T) {
		comm := &fakeCommitter{}
		csv := header +
			"DL3CAB0001,Creta SX,Hyundai,Creta,2022,1200000,15000,diesel,automatic,Delhi,,\n" +
			"DL3CAB0002,Bad \"Quote,Hyundai,Creta,2022,1200000,15000,diesel,automatic,Delhi,,\n" +
			"DL3CAB0003,Venue SX,Hyundai,Venue,2021,900000,12000,petrol,manual,Delhi,,\n"

		resp, err := NewInteractor(newFakeRepo(), comm).Execute(context.Background(), &Request{
			DealerID: dealerID,
			File:     strings.NewReader(csv),
		})
		require.NoError(t, err)
		assert.Equal(t, &Response{Created: 2, Skipped: 1}, resp)
		require.Len(t, comm.plans, 1)
		assert.Equal(t, 2, comm.plans[0].Count())
	})

	t.Run("unknown dealer", func(t *testing.T) {
		_, err := NewInteractor(newFakeRepo(), &fakeCommitter{}).Execute(context.Background(), &Request{
			DealerID: "0b7e1c1a-0000-4000-8000-000000000000",
			File:     strings.NewReader(header),
		})
		assert.ErrorIs(t, err, domain.ErrDealerNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing dealer id", func(t *testing.T) {
		_, err := NewInteractor(newFakeRepo(), &fakeCommitter{}).Execute(context.Background(), &Request{
			File: strings.NewReader(header),
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "dealer_id", verr.Param)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := NewInteractor(newFakeRepo(), &fakeCommitter{}).Execute(context.Background(), &Request{
			DealerID: dealerID,
			File:     strings.NewReader(""),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("header only commits nothing", func(t *testing.T) {
		comm := &fakeCommitter{}
		resp, err := NewInteractor(newFakeRepo(), comm).Execute(context.Background(), &Request{
			DealerID: dealerID,
			File:     strings.NewReader(header),
		})
		require.NoError(t, err)
		assert.Equal(t, &Response{}, resp)
		assert.Empty(t, comm.plans)
	})

	t.Run("commit failure", func(t *testing.T) {
		storeErr := errors.New("aborted")
		_, err := NewInteractor(newFakeRepo(), &fakeCommitter{err: storeErr}).Execute(context.Background(), &Request{
			DealerID: dealerID,
			File:     strings.NewReader(header + "DL3CAB0001,Creta,Hyundai,Creta,2022,1200000,15000,diesel,automatic,Delhi,,\n"),
		})
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestSplitReasons(t *testing.T) {
	reasons, bad := splitReasons("Warranty::One year || Service:: Full history ||oops|| ::no title||Extra::a::b")
	require.Len(t, reasons, 3)
	assert.Equal(t, "Warranty", reasons[0].Title)
	assert.Equal(t, "One year", reasons[0].Description)
	assert.Equal(t, "Service", reasons[1].Title)
	assert.Equal(t, "Full history", reasons[1].Description)
	assert.Equal(t, "Extra", reasons[2].Title)
	assert.Equal(t, "a::b", reasons[2].Description)
	assert.Equal(t, []string{"oops", "::no title"}, bad)

	reasons, bad = splitReasons("  ")
	assert.Empty(t, reasons)
	assert.Empty(t, bad)
}

func TestSplitHighlights(t *testing.T) {
	assert.Equal(t, []string{"Single owner", "Low mileage"}, splitHighlights(" Single owner || Low mileage |"))
	assert.Empty(t, splitHighlights(""))
}

func TestNewCarCode(t *testing.T) {
	assert.Equal(t, "CAR-6F1C2A9E", newCarCode(dealerID))
}
