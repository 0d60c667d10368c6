package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/models/m_car_feature"
	"github.com/light-bringer/carcat-service/internal/models/m_car_highlight"
	"github.com/light-bringer/carcat-service/internal/models/m_car_image"
	"github.com/light-bringer/carcat-service/internal/models/m_car_reason"
	"github.com/light-bringer/carcat-service/internal/models/m_car_spec"
	"github.com/light-bringer/carcat-service/internal/models/m_category"
	"github.com/light-bringer/carcat-service/internal/models/m_dealer"
	"github.com/light-bringer/carcat-service/internal/models/m_inspection_item"
	"github.com/light-bringer/carcat-service/internal/models/m_inspection_section"
	"github.com/light-bringer/carcat-service/internal/models/m_inspection_subsection"
	"github.com/light-bringer/carcat-service/internal/models/m_section_score"
	"github.com/light-bringer/carcat-service/internal/models/m_subsection_remark"
	"github.com/light-bringer/carcat-service/internal/pkg/query"
)

// ImportRepo implements ImportRepository for Spanner.
type ImportRepo struct {
	*MutationBuilder
	client *spanner.Client
}

// NewImportRepo creates a new ImportRepo.
func NewImportRepo(client *spanner.Client) *ImportRepo {
	return &ImportRepo{MutationBuilder: NewMutationBuilder(), client: client}
}

var _ contracts.ImportRepository = (*ImportRepo)(nil)

// pairs runs a two-column STRING query and maps the first column to the second.
func (r *ImportRepo) pairs(ctx context.Context, stmt spanner.Statement) (map[string]string, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make(map[string]string)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var k, v string
		if err := row.Columns(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		out[k] = v
	}
}

// DealerIDsByCode maps dealer_code to dealer_id.
func (r *ImportRepo) DealerIDsByCode(ctx context.Context, codes []string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}
	out, err := r.pairs(ctx, query.From(m_dealer.TableName).
		Select(m_dealer.DealerCode, m_dealer.DealerID).
		Where(query.In(m_dealer.DealerCode, codes)).
		Build())
	if err != nil {
		return nil, translateErr("failed to look up dealers", err)
	}
	return out, nil
}

// DealerExists checks a dealer by id. Ids that are not UUIDs never exist.
func (r *ImportRepo) DealerExists(ctx context.Context, dealerID string) (bool, error) {
	if _, err := uuid.Parse(dealerID); err != nil {
		return false, nil
	}
	row, err := r.client.Single().ReadRow(ctx, m_dealer.TableName, spanner.Key{dealerID}, []string{m_dealer.DealerID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, translateErr("failed to check dealer existence", err)
	}
	return row != nil, nil
}

// CarIDsByCode maps car_code to car_id.
func (r *ImportRepo) CarIDsByCode(ctx context.Context, codes []string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}
	out, err := r.pairs(ctx, query.From(m_car.TableName).
		Select(m_car.CarCode, m_car.CarID).
		Where(query.In(m_car.CarCode, codes)).
		Build())
	if err != nil {
		return nil, translateErr("failed to look up cars", err)
	}
	return out, nil
}

// CarIDsByRegistration maps registration_number to car_id for one dealer.
func (r *ImportRepo) CarIDsByRegistration(ctx context.Context, dealerID string, registrations []string) (map[string]string, error) {
	if len(registrations) == 0 {
		return map[string]string{}, nil
	}
	out, err := r.pairs(ctx, query.From(m_car.TableName).
		Select(m_car.RegistrationNumber, m_car.CarID).
		Where(query.Eq(m_car.DealerID, dealerID)).
		Where(query.In(m_car.RegistrationNumber, registrations)).
		Build())
	if err != nil {
		return nil, translateErr("failed to look up registrations", err)
	}
	return out, nil
}

// CategoryKeys returns which of keys exist in the kind's table.
func (r *ImportRepo) CategoryKeys(ctx context.Context, kind domain.CategoryKind, keys []string) (map[string]bool, error) {
	if len(keys) == 0 {
		return map[string]bool{}, nil
	}
	table := categoryKind(kind).TableName()
	found, err := r.pairs(ctx, query.From(table).
		Select(m_category.CategoryKey, m_category.Title).
		Where(query.In(m_category.CategoryKey, keys)).
		Build())
	if err != nil {
		return nil, translateErr("failed to look up "+kind.String()+" categories", err)
	}
	out := make(map[string]bool, len(found))
	for k := range found {
		out[k] = true
	}
	return out, nil
}

// SectionPositions maps every section_key to its display position.
func (r *ImportRepo) SectionPositions(ctx context.Context) (map[string]int64, error) {
	rows, err := collect[m_inspection_section.Data](ctx, r.client.Single(), query.From(m_inspection_section.TableName).
		Select(m_inspection_section.ReadColumns...).
		Build())
	if err != nil {
		return nil, translateErr("failed to load inspection sections", err)
	}
	out := make(map[string]int64, len(rows))
	for _, d := range rows {
		out[d.SectionKey] = d.Position
	}
	return out, nil
}

// Subsections returns the whole subsection taxonomy.
func (r *ImportRepo) Subsections(ctx context.Context) ([]domain.InspectionSubsection, error) {
	rows, err := collect[m_inspection_subsection.Data](ctx, r.client.Single(), query.From(m_inspection_subsection.TableName).
		Select(m_inspection_subsection.ReadColumns...).
		OrderBy(m_inspection_subsection.SectionKey, query.Asc).
		OrderBy(m_inspection_subsection.SortOrder, query.Asc).
		Build())
	if err != nil {
		return nil, translateErr("failed to load inspection subsections", err)
	}
	out := make([]domain.InspectionSubsection, 0, len(rows))
	for _, d := range rows {
		out = append(out, domain.InspectionSubsection{
			SectionKey: d.SectionKey,
			Key:        d.SubsectionKey,
			Title:      d.Title,
			SortOrder:  d.SortOrder,
			Remarks:    d.Remarks,
		})
	}
	return out, nil
}

// childTable describes the natural key of a per-car child table.
type childTable struct {
	table    string
	carID    string
	position string
	keys     []string // key columns after car_id
}

var childTables = map[contracts.ChildKind]childTable{
	contracts.ImageRows:     {m_car_image.TableName, m_car_image.CarID, m_car_image.Position, m_car_image.KeyColumns[1:]},
	contracts.HighlightRows: {m_car_highlight.TableName, m_car_highlight.CarID, m_car_highlight.Position, m_car_highlight.KeyColumns[1:]},
	contracts.ReasonRows:    {m_car_reason.TableName, m_car_reason.CarID, m_car_reason.Position, m_car_reason.KeyColumns[1:]},
	contracts.SpecRows:      {m_car_spec.TableName, m_car_spec.CarID, m_car_spec.Position, m_car_spec.KeyColumns[1:]},
	contracts.FeatureRows:   {m_car_feature.TableName, m_car_feature.CarID, m_car_feature.Position, m_car_feature.KeyColumns[1:]},
	contracts.ItemRows:      {m_inspection_item.TableName, m_inspection_item.CarID, m_inspection_item.Position, m_inspection_item.KeyColumns[1:]},
	contracts.ScoreRows:     {m_section_score.TableName, m_section_score.CarID, m_section_score.Position, m_section_score.KeyColumns[1:]},
	contracts.RemarkRows:    {m_subsection_remark.TableName, m_subsection_remark.CarID, m_subsection_remark.Position, m_subsection_remark.KeyColumns[1:]},
}

// ChildIndex loads the stored keys and positions of one child table for carIDs.
func (r *ImportRepo) ChildIndex(ctx context.Context, kind contracts.ChildKind, carIDs []string) (*contracts.ChildIndex, error) {
	ix := contracts.NewChildIndex()
	if len(carIDs) == 0 {
		return ix, nil
	}
	t, ok := childTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown child kind %d", kind)
	}

	columns := append(append([]string{t.carID}, t.keys...), t.position)
	iter := r.client.Single().Query(ctx, query.From(t.table).
		Select(columns...).
		Where(query.In(t.carID, carIDs)).
		Build())
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return ix, nil
		}
		if err != nil {
			return nil, translateErr("failed to load "+t.table, err)
		}

		var carID string
		var position int64
		key := make([]string, len(t.keys))
		if err := row.Column(0, &carID); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", t.table, err)
		}
		for i := range key {
			if err := row.Column(i+1, &key[i]); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", t.table, err)
			}
		}
		if err := row.Column(len(columns)-1, &position); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", t.table, err)
		}
		ix.Observe(carID, position, key...)
	}
}
