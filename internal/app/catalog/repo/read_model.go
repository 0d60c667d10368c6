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
	"github.com/light-bringer/carcat-service/internal/app/catalog/filter"
	"github.com/light-bringer/carcat-service/internal/app/catalog/readmodel"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/models/m_car_feature"
	"github.com/light-bringer/carcat-service/internal/models/m_car_highlight"
	"github.com/light-bringer/carcat-service/internal/models/m_car_image"
	"github.com/light-bringer/carcat-service/internal/models/m_car_reason"
	"github.com/light-bringer/carcat-service/internal/models/m_car_spec"
	"github.com/light-bringer/carcat-service/internal/models/m_dealer"
	"github.com/light-bringer/carcat-service/internal/models/m_inspection_item"
	"github.com/light-bringer/carcat-service/internal/models/m_inspection_section"
	"github.com/light-bringer/carcat-service/internal/models/m_inspection_subsection"
	"github.com/light-bringer/carcat-service/internal/models/m_section_score"
	"github.com/light-bringer/carcat-service/internal/models/m_subsection_remark"
	"github.com/light-bringer/carcat-service/internal/pkg/query"
)

// querier is satisfied by single-use and multi-use read-only transactions.
type querier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// collect runs stmt and decodes every row into a T.
func collect[T any](ctx context.Context, q querier, stmt spanner.Statement) ([]*T, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	var out []*T
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var v T
		if err := row.ToStruct(&v); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		out = append(out, &v)
	}
}

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) *ReadModelImpl {
	return &ReadModelImpl{client: client}
}

var _ contracts.ReadModel = (*ReadModelImpl)(nil)

// GetCar assembles one car. Ids that are not UUIDs are reported as not found.
func (rm *ReadModelImpl) GetCar(ctx context.Context, carID string) (*readmodel.CarDocument, error) {
	if _, err := uuid.Parse(carID); err != nil {
		return nil, domain.ErrCarNotFound
	}

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_car.TableName, spanner.Key{carID}, m_car.ReadColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCarNotFound
		}
		return nil, translateErr("failed to read car", err)
	}

	var data m_car.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse car: %w", err)
	}

	docs, err := rm.assemble(ctx, txn, []*m_car.Data{&data})
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// ListCars runs the compiled filter, counts the matches and assembles one page.
// Every related table is loaded with one query per page.
func (rm *ReadModelImpl) ListCars(ctx context.Context, f *contracts.ListFilter) (*contracts.ListResult, error) {
	base := query.From(m_car.TableName)
	if f.Plan != nil {
		base = f.Plan.Apply(base)
	}
	ordering := f.Ordering
	if ordering.Column == "" {
		ordering = filter.DefaultOrdering
	}

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := count(ctx, txn, base.Count().Build())
	if err != nil {
		return nil, translateErr("failed to count cars", err)
	}

	result := &contracts.ListResult{Cars: []*readmodel.CarDocument{}, TotalCount: total}
	if total == 0 || f.Page < 1 || f.PageSize < 1 || int64(f.Page-1) > (total-1)/int64(f.PageSize) {
		return result, nil
	}
	offset := int64(f.Page-1) * int64(f.PageSize)

	columns := make([]string, len(m_car.ReadColumns))
	for i, col := range m_car.ReadColumns {
		columns[i] = m_car.Col(col)
	}
	stmt := ordering.Apply(base.Select(columns...)).
		Limit(int64(f.PageSize)).
		Offset(offset).
		Build()

	cars, err := collect[m_car.Data](ctx, txn, stmt)
	if err != nil {
		return nil, translateErr("failed to list cars", err)
	}

	result.Cars, err = rm.assemble(ctx, txn, cars)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Ping checks that the database answers queries.
func (rm *ReadModelImpl) Ping(ctx context.Context) error {
	iter := rm.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()
	if _, err := iter.Next(); err != nil {
		return fmt.Errorf("spanner ping: %w", err)
	}
	return nil
}

func count(ctx context.Context, q querier, stmt spanner.Statement) (int64, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Column(0, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func childStmt(table, carColumn, positionColumn string, columns, carIDs []string) spanner.Statement {
	return query.From(table).
		Select(columns...).
		Where(query.In(carColumn, carIDs)).
		OrderBy(carColumn, query.Asc).
		OrderBy(positionColumn, query.Asc).
		Build()
}

// assemble loads the related rows of cars and builds their documents in input order.
func (rm *ReadModelImpl) assemble(ctx context.Context, q querier, cars []*m_car.Data) ([]*readmodel.CarDocument, error) {
	taxonomy, err := loadTaxonomy(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(cars))
	bundles := make(map[string]*readmodel.CarBundle, len(cars))
	var dealerIDs []string
	for _, data := range cars {
		ids = append(ids, data.CarID)
		bundles[data.CarID] = &readmodel.CarBundle{Car: dataToCar(data)}
		if data.DealerID.Valid {
			dealerIDs = append(dealerIDs, data.DealerID.StringVal)
		}
	}

	if len(dealerIDs) > 0 {
		dealers, err := collect[m_dealer.Data](ctx, q, query.From(m_dealer.TableName).
			Select(m_dealer.ReadColumns...).
			Where(query.In(m_dealer.DealerID, dealerIDs)).
			Build())
		if err != nil {
			return nil, translateErr("failed to load dealers", err)
		}
		byID := make(map[string]*domain.Dealer, len(dealers))
		for _, d := range dealers {
			byID[d.DealerID] = dataToDealer(d)
		}
		for _, b := range bundles {
			b.Dealer = byID[b.Car.DealerID]
		}
	}

	images, err := collect[m_car_image.Data](ctx, q, childStmt(m_car_image.TableName, m_car_image.CarID, m_car_image.Position, m_car_image.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load images", err)
	}
	for _, d := range images {
		b := bundles[d.CarID]
		b.Images = append(b.Images, domain.CarImage{CategoryKey: d.CategoryKey, Path: d.ImagePath, Caption: d.Caption, SortOrder: d.SortOrder})
	}

	highlights, err := collect[m_car_highlight.Data](ctx, q, childStmt(m_car_highlight.TableName, m_car_highlight.CarID, m_car_highlight.Position, m_car_highlight.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load highlights", err)
	}
	for _, d := range highlights {
		b := bundles[d.CarID]
		b.Highlights = append(b.Highlights, domain.CarHighlight{Text: d.Text})
	}

	reasons, err := collect[m_car_reason.Data](ctx, q, childStmt(m_car_reason.TableName, m_car_reason.CarID, m_car_reason.Position, m_car_reason.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load reasons", err)
	}
	for _, d := range reasons {
		b := bundles[d.CarID]
		b.Reasons = append(b.Reasons, domain.CarReason{Title: d.Title, Description: d.Description, SortOrder: d.SortOrder})
	}

	specs, err := collect[m_car_spec.Data](ctx, q, childStmt(m_car_spec.TableName, m_car_spec.CarID, m_car_spec.Position, m_car_spec.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load specs", err)
	}
	for _, d := range specs {
		b := bundles[d.CarID]
		b.Specs = append(b.Specs, domain.CarSpec{CategoryKey: d.CategoryKey, Label: d.Label, Value: d.Value})
	}

	features, err := collect[m_car_feature.Data](ctx, q, childStmt(m_car_feature.TableName, m_car_feature.CarID, m_car_feature.Position, m_car_feature.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load features", err)
	}
	for _, d := range features {
		b := bundles[d.CarID]
		b.Features = append(b.Features, domain.CarFeature{CategoryKey: d.CategoryKey, Name: d.Name, Status: domain.FeatureStatus(d.Status)})
	}

	items, err := collect[m_inspection_item.Data](ctx, q, childStmt(m_inspection_item.TableName, m_inspection_item.CarID, m_inspection_item.Position, m_inspection_item.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load inspection items", err)
	}
	for _, d := range items {
		b := bundles[d.CarID]
		b.Items = append(b.Items, domain.InspectionItem{
			SectionKey:    d.SectionKey,
			SubsectionKey: d.SubsectionKey,
			Name:          d.Name,
			Status:        domain.ItemStatus(d.Status),
			Remarks:       d.Remarks,
		})
	}

	scores, err := collect[m_section_score.Data](ctx, q, childStmt(m_section_score.TableName, m_section_score.CarID, m_section_score.Position, m_section_score.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load section scores", err)
	}
	for _, d := range scores {
		b := bundles[d.CarID]
		b.Scores = append(b.Scores, domain.SectionScore{
			SectionKey: d.SectionKey,
			Score:      d.Score,
			Rating:     domain.Rating(d.Rating),
			Status:     d.Status,
			Remarks:    d.Remarks,
		})
	}

	remarks, err := collect[m_subsection_remark.Data](ctx, q, childStmt(m_subsection_remark.TableName, m_subsection_remark.CarID, m_subsection_remark.Position, m_subsection_remark.ReadColumns, ids))
	if err != nil {
		return nil, translateErr("failed to load subsection remarks", err)
	}
	for _, d := range remarks {
		b := bundles[d.CarID]
		b.Remarks = append(b.Remarks, domain.SubsectionRemark{
			SectionKey:    d.SectionKey,
			SubsectionKey: d.SubsectionKey,
			Status:        d.Status,
			Remarks:       d.Remarks,
		})
	}

	docs := make([]*readmodel.CarDocument, 0, len(cars))
	for _, id := range ids {
		docs = append(docs, readmodel.Assemble(bundles[id], taxonomy))
	}
	return docs, nil
}

// loadTaxonomy reads all sections and subsections in display order.
func loadTaxonomy(ctx context.Context, q querier) ([]domain.InspectionSection, error) {
	sections, err := collect[m_inspection_section.Data](ctx, q, query.From(m_inspection_section.TableName).
		Select(m_inspection_section.ReadColumns...).
		OrderBy(m_inspection_section.Position, query.Asc).
		OrderBy(m_inspection_section.SectionKey, query.Asc).
		Build())
	if err != nil {
		return nil, translateErr("failed to load inspection sections", err)
	}

	subsections, err := collect[m_inspection_subsection.Data](ctx, q, query.From(m_inspection_subsection.TableName).
		Select(m_inspection_subsection.ReadColumns...).
		OrderBy(m_inspection_subsection.SectionKey, query.Asc).
		OrderBy(m_inspection_subsection.SortOrder, query.Asc).
		OrderBy(m_inspection_subsection.SubsectionKey, query.Asc).
		Build())
	if err != nil {
		return nil, translateErr("failed to load inspection subsections", err)
	}

	bySection := make(map[string][]domain.InspectionSubsection)
	for _, d := range subsections {
		bySection[d.SectionKey] = append(bySection[d.SectionKey], domain.InspectionSubsection{
			SectionKey: d.SectionKey,
			Key:        d.SubsectionKey,
			Title:      d.Title,
			SortOrder:  d.SortOrder,
			Remarks:    d.Remarks,
		})
	}

	out := make([]domain.InspectionSection, 0, len(sections))
	for _, d := range sections {
		out = append(out, domain.InspectionSection{
			Key:         d.SectionKey,
			Title:       d.Title,
			Description: d.Description,
			Position:    d.Position,
			Subsections: bySection[d.SectionKey],
		})
	}
	return out, nil
}
