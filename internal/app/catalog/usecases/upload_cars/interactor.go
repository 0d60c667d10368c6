package upload_cars

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/logger"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/pkg/committer"
	"github.com/light-bringer/carcat-service/internal/pkg/csvrow"
)

const (
	highlightSep   = "|"
	reasonSep      = "||"
	reasonFieldSep = "::"

	maxHighlightLen = 50
)

// Request contains one dealer's CSV upload.
type Request struct {
	DealerID string
	File     io.Reader
}

// Response counts what the upload changed.
type Response struct {
	Created    int
	Updated    int
	Skipped    int
	Highlights int
	Reasons    int
}

// Interactor handles the bulk car upload use case.
type Interactor struct {
	repo      contracts.ImportRepository
	committer contracts.Committer
}

// NewInteractor creates a new upload interactor.
func NewInteractor(repo contracts.ImportRepository, committer contracts.Committer) *Interactor {
	return &Interactor{
		repo:      repo,
		committer: committer,
	}
}

// Execute upserts the uploaded cars on (dealer, registration_number) with
// their inline highlights and reasons, in one commit.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	dealerID := strings.TrimSpace(req.DealerID)
	if dealerID == "" {
		return nil, domain.NewValidationError("dealer_id", "is required", nil)
	}
	if req.File == nil {
		return nil, domain.NewValidationError("file", "is required", nil)
	}
	exists, err := i.repo.DealerExists(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrDealerNotFound
	}

	rows, err := csvrow.ReadAll(req.File)
	if err != nil {
		return nil, domain.NewValidationError("file", "unreadable csv", err)
	}

	// 2. Resolve stored cars and their children
	regs := make([]string, 0, len(rows))
	for _, row := range rows {
		if reg := row.Get("registration_number"); reg != "" {
			regs = append(regs, reg)
		}
	}
	cars, err := i.repo.CarIDsByRegistration(ctx, dealerID, regs)
	if err != nil {
		return nil, err
	}
	carIDs := make([]string, 0, len(cars))
	for _, id := range cars {
		carIDs = append(carIDs, id)
	}
	highlights, err := i.repo.ChildIndex(ctx, contracts.HighlightRows, carIDs)
	if err != nil {
		return nil, err
	}
	reasons, err := i.repo.ChildIndex(ctx, contracts.ReasonRows, carIDs)
	if err != nil {
		return nil, err
	}

	// 3. Build the plan
	log := logger.FromContext(ctx).With(zap.String("dealer_id", dealerID))
	plan := committer.NewPlan()
	resp := &Response{}
	for _, row := range rows {
		car, err := parseListing(row)
		if err != nil {
			resp.Skipped++
			log.Warn("upload row skipped", zap.Int("line", row.Line), zap.Error(err))
			continue
		}
		car.DealerID = dealerID

		if id, ok := cars[car.RegistrationNumber]; ok {
			car.ID = id
			mut, err := i.repo.UpdateCarMut(car, m_car.ListingColumns)
			if err != nil {
				return nil, err
			}
			plan.Add(mut)
			resp.Updated++
		} else {
			car.ID = uuid.New().String()
			if car.Code == "" {
				car.Code = newCarCode(car.ID)
			}
			mut, err := i.repo.InsertCarMut(car)
			if err != nil {
				return nil, err
			}
			plan.Add(mut)
			cars[car.RegistrationNumber] = car.ID
			resp.Created++
		}

		n, err := i.addHighlights(plan, highlights, car.ID, row, log)
		if err != nil {
			return nil, err
		}
		resp.Highlights += n

		n, err = i.addReasons(plan, reasons, car.ID, row, log)
		if err != nil {
			return nil, err
		}
		resp.Reasons += n
	}

	// 4. Apply plan
	if plan.IsEmpty() {
		return resp, nil
	}
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit upload: %w", err)
	}
	return resp, nil
}

func (i *Interactor) addHighlights(plan *committer.CommitPlan, index *contracts.ChildIndex, carID string, row csvrow.Row, log *zap.Logger) (int, error) {
	added := 0
	for _, text := range splitHighlights(row.Get("highlights")) {
		if utf8.RuneCountInString(text) > maxHighlightLen {
			log.Warn("highlight skipped", zap.Int("line", row.Line), zap.String("reason", "too long"))
			continue
		}
		position, exists := index.Claim(carID, text)
		if exists {
			continue
		}
		mut, err := i.repo.InsertHighlightMut(carID, &domain.CarHighlight{Text: text}, position)
		if err != nil {
			return added, err
		}
		plan.Add(mut)
		added++
	}
	return added, nil
}

func (i *Interactor) addReasons(plan *committer.CommitPlan, index *contracts.ChildIndex, carID string, row csvrow.Row, log *zap.Logger) (int, error) {
	parsed, bad := splitReasons(row.Get("reasons_to_buy"))
	for _, token := range bad {
		log.Warn("reason skipped", zap.Int("line", row.Line), zap.String("token", token))
	}

	upserted := 0
	for _, reason := range parsed {
		position, exists := index.Claim(carID, reason.Title)
		if exists {
			plan.Add(i.repo.UpdateReasonMut(carID, reason))
			upserted++
			continue
		}
		mut, err := i.repo.InsertReasonMut(carID, reason, position)
		if err != nil {
			return upserted, err
		}
		plan.Add(mut)
		upserted++
	}
	return upserted, nil
}

// parseListing reads the listing columns a dealer maintains.
func parseListing(row csvrow.Row) (*domain.Car, error) {
	if row.Err != nil {
		return nil, row.Err
	}
	if err := row.Require("registration_number", "title", "price"); err != nil {
		return nil, err
	}
	price, err := domain.ParseMoney(row.Get("price"))
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	year, err := row.OptionalInt("year")
	if err != nil {
		return nil, err
	}
	km, err := row.OptionalInt("km")
	if err != nil {
		return nil, err
	}
	return &domain.Car{
		Code:               row.Get("car_code"),
		Title:              row.Get("title"),
		Brand:              row.Get("brand"),
		Model:              row.Get("model"),
		Year:               year,
		Price:              price,
		KM:                 km,
		Fuel:               row.Get("fuel"),
		Transmission:       row.Get("transmission"),
		City:               row.Get("city"),
		RegistrationNumber: row.Get("registration_number"),
		AvailabilityStatus: domain.AvailabilityAvailable,
		InsuranceType:      domain.InsuranceComprehensive,
		OwnerCount:         1,
		Tags:               []string{},
		Metadata:           map[string]interface{}{},
	}, nil
}

// newCarCode derives a car code from a fresh car id.
func newCarCode(carID string) string {
	return "CAR-" + strings.ToUpper(carID[:8])
}

func splitHighlights(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, highlightSep) {
		if text := strings.TrimSpace(part); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// splitReasons parses "title::description||title::description". Tokens
// without a separator or with a blank title are returned in bad.
func splitReasons(cell string) (reasons []*domain.CarReason, bad []string) {
	if strings.TrimSpace(cell) == "" {
		return nil, nil
	}
	for n, token := range strings.Split(cell, reasonSep) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		title, desc, ok := strings.Cut(token, reasonFieldSep)
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			bad = append(bad, token)
			continue
		}
		reasons = append(reasons, &domain.CarReason{
			Title:       title,
			Description: strings.TrimSpace(desc),
			SortOrder:   int64(n),
		})
	}
	return reasons, bad
}
