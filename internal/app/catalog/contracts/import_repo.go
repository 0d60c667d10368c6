package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/pkg/committer"
)

// ChildKind identifies a per-car child table.
type ChildKind int

const (
	ImageRows ChildKind = iota
	HighlightRows
	ReasonRows
	SpecRows
	FeatureRows
	ItemRows
	ScoreRows
	RemarkRows
)

// ImportLookup resolves natural keys against stored rows.
// Missing keys are simply absent from the returned maps.
type ImportLookup interface {
	// DealerIDsByCode maps dealer_code to dealer_id
	DealerIDsByCode(ctx context.Context, codes []string) (map[string]string, error)

	// DealerExists checks a dealer by id
	DealerExists(ctx context.Context, dealerID string) (bool, error)

	// CarIDsByCode maps car_code to car_id
	CarIDsByCode(ctx context.Context, codes []string) (map[string]string, error)

	// CarIDsByRegistration maps registration_number to car_id within one dealer
	CarIDsByRegistration(ctx context.Context, dealerID string, registrations []string) (map[string]string, error)

	// CategoryKeys returns which of keys exist in the kind's category table
	CategoryKeys(ctx context.Context, kind domain.CategoryKind, keys []string) (map[string]bool, error)

	// SectionPositions maps every section_key to its display position
	SectionPositions(ctx context.Context) (map[string]int64, error)

	// Subsections returns the whole subsection taxonomy
	Subsections(ctx context.Context) ([]domain.InspectionSubsection, error)

	// ChildIndex loads existing child keys and positions for the given cars
	ChildIndex(ctx context.Context, kind ChildKind, carIDs []string) (*ChildIndex, error)
}

// ImportMutations builds mutations for imported rows.
// Builders return mutations, they don't apply them.
type ImportMutations interface {
	InsertDealerMut(dealer *domain.Dealer) *spanner.Mutation
	InsertCarMut(car *domain.Car) (*spanner.Mutation, error)
	// UpdateCarMut writes only the listed columns of an existing car
	UpdateCarMut(car *domain.Car, columns []string) (*spanner.Mutation, error)
	InsertCategoryMut(kind domain.CategoryKind, key, title string) *spanner.Mutation

	InsertSectionMut(section *domain.InspectionSection) *spanner.Mutation
	UpdateSectionMut(section *domain.InspectionSection) *spanner.Mutation
	UpsertSubsectionMut(sub *domain.InspectionSubsection) *spanner.Mutation

	InsertImageMut(carID string, image *domain.CarImage, position int64) (*spanner.Mutation, error)
	UpdateImageMut(carID string, image *domain.CarImage) *spanner.Mutation
	InsertHighlightMut(carID string, highlight *domain.CarHighlight, position int64) (*spanner.Mutation, error)
	InsertReasonMut(carID string, reason *domain.CarReason, position int64) (*spanner.Mutation, error)
	UpdateReasonMut(carID string, reason *domain.CarReason) *spanner.Mutation
	InsertSpecMut(carID string, spec *domain.CarSpec, position int64) (*spanner.Mutation, error)
	UpdateSpecMut(carID string, spec *domain.CarSpec) *spanner.Mutation
	InsertFeatureMut(carID string, feature *domain.CarFeature, position int64) (*spanner.Mutation, error)
	UpdateFeatureMut(carID string, feature *domain.CarFeature) *spanner.Mutation
	InsertItemMut(carID string, item *domain.InspectionItem, position int64) (*spanner.Mutation, error)
	UpdateItemMut(carID string, item *domain.InspectionItem) *spanner.Mutation
	InsertScoreMut(carID string, score *domain.SectionScore, position int64) (*spanner.Mutation, error)
	UpdateScoreMut(carID string, score *domain.SectionScore) *spanner.Mutation
	InsertRemarkMut(carID string, remark *domain.SubsectionRemark, position int64) (*spanner.Mutation, error)
	UpdateRemarkMut(carID string, remark *domain.SubsectionRemark) *spanner.Mutation
}

// ImportRepository is everything an importer needs from the store.
type ImportRepository interface {
	ImportLookup
	ImportMutations
}

// Committer applies a CommitPlan atomically.
type Committer interface {
	Apply(ctx context.Context, plan *committer.CommitPlan) error
}
