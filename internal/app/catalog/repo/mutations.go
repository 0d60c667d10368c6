package repo

import (
	"cloud.google.com/go/spanner"

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
)

// MutationBuilder implements ImportMutations. It needs no client.
type MutationBuilder struct {
	dealers     *m_dealer.Model
	cars        *m_car.Model
	sections    *m_inspection_section.Model
	subsections *m_inspection_subsection.Model
	images      *m_car_image.Model
	highlights  *m_car_highlight.Model
	reasons     *m_car_reason.Model
	specs       *m_car_spec.Model
	features    *m_car_feature.Model
	items       *m_inspection_item.Model
	scores      *m_section_score.Model
	remarks     *m_subsection_remark.Model
}

// NewMutationBuilder creates a MutationBuilder.
func NewMutationBuilder() *MutationBuilder {
	return &MutationBuilder{
		dealers:     m_dealer.NewModel(),
		cars:        m_car.NewModel(),
		sections:    m_inspection_section.NewModel(),
		subsections: m_inspection_subsection.NewModel(),
		images:      m_car_image.NewModel(),
		highlights:  m_car_highlight.NewModel(),
		reasons:     m_car_reason.NewModel(),
		specs:       m_car_spec.NewModel(),
		features:    m_car_feature.NewModel(),
		items:       m_inspection_item.NewModel(),
		scores:      m_section_score.NewModel(),
		remarks:     m_subsection_remark.NewModel(),
	}
}

var _ contracts.ImportMutations = (*MutationBuilder)(nil)

func (b *MutationBuilder) InsertDealerMut(dealer *domain.Dealer) *spanner.Mutation {
	return b.dealers.InsertMut(dealerToData(dealer))
}

func (b *MutationBuilder) InsertCarMut(car *domain.Car) (*spanner.Mutation, error) {
	data, err := carToData(car)
	if err != nil {
		return nil, err
	}
	return b.cars.InsertMut(data), nil
}

func (b *MutationBuilder) UpdateCarMut(car *domain.Car, columns []string) (*spanner.Mutation, error) {
	data, err := carToData(car)
	if err != nil {
		return nil, err
	}
	return b.cars.UpdateMut(data, columns)
}

func categoryKind(kind domain.CategoryKind) m_category.Kind {
	switch kind {
	case domain.SpecCategory:
		return m_category.Spec
	case domain.FeatureCategory:
		return m_category.Feature
	default:
		return m_category.Image
	}
}

func (b *MutationBuilder) InsertCategoryMut(kind domain.CategoryKind, key, title string) *spanner.Mutation {
	return m_category.NewModel(categoryKind(kind)).InsertMut(&m_category.Data{CategoryKey: key, Title: title})
}

func (b *MutationBuilder) InsertSectionMut(s *domain.InspectionSection) *spanner.Mutation {
	return b.sections.InsertMut(sectionData(s))
}

func (b *MutationBuilder) UpdateSectionMut(s *domain.InspectionSection) *spanner.Mutation {
	return b.sections.UpdateMut(sectionData(s))
}

func sectionData(s *domain.InspectionSection) *m_inspection_section.Data {
	return &m_inspection_section.Data{
		SectionKey:  s.Key,
		Title:       s.Title,
		Description: s.Description,
		Position:    s.Position,
	}
}

func (b *MutationBuilder) UpsertSubsectionMut(s *domain.InspectionSubsection) *spanner.Mutation {
	return b.subsections.UpsertMut(&m_inspection_subsection.Data{
		SectionKey:    s.SectionKey,
		SubsectionKey: s.Key,
		Title:         s.Title,
		SortOrder:     s.SortOrder,
		Remarks:       s.Remarks,
	})
}

func imageData(carID string, img *domain.CarImage, position int64) *m_car_image.Data {
	return &m_car_image.Data{
		CarID:       carID,
		CategoryKey: img.CategoryKey,
		ImagePath:   img.Path,
		Caption:     img.Caption,
		SortOrder:   img.SortOrder,
		Position:    position,
	}
}

func (b *MutationBuilder) InsertImageMut(carID string, img *domain.CarImage, position int64) (*spanner.Mutation, error) {
	return b.images.InsertMut(imageData(carID, img, position))
}

func (b *MutationBuilder) UpdateImageMut(carID string, img *domain.CarImage) *spanner.Mutation {
	return b.images.UpdateMut(imageData(carID, img, 0))
}

func (b *MutationBuilder) InsertHighlightMut(carID string, h *domain.CarHighlight, position int64) (*spanner.Mutation, error) {
	return b.highlights.InsertMut(&m_car_highlight.Data{CarID: carID, Text: h.Text, Position: position})
}

func reasonData(carID string, r *domain.CarReason, position int64) *m_car_reason.Data {
	return &m_car_reason.Data{
		CarID:       carID,
		Title:       r.Title,
		Description: r.Description,
		SortOrder:   r.SortOrder,
		Position:    position,
	}
}

func (b *MutationBuilder) InsertReasonMut(carID string, r *domain.CarReason, position int64) (*spanner.Mutation, error) {
	return b.reasons.InsertMut(reasonData(carID, r, position))
}

func (b *MutationBuilder) UpdateReasonMut(carID string, r *domain.CarReason) *spanner.Mutation {
	return b.reasons.UpdateMut(reasonData(carID, r, 0))
}

func specData(carID string, s *domain.CarSpec, position int64) *m_car_spec.Data {
	return &m_car_spec.Data{CarID: carID, CategoryKey: s.CategoryKey, Label: s.Label, Value: s.Value, Position: position}
}

func (b *MutationBuilder) InsertSpecMut(carID string, s *domain.CarSpec, position int64) (*spanner.Mutation, error) {
	return b.specs.InsertMut(specData(carID, s, position))
}

func (b *MutationBuilder) UpdateSpecMut(carID string, s *domain.CarSpec) *spanner.Mutation {
	return b.specs.UpdateMut(specData(carID, s, 0))
}

func featureData(carID string, f *domain.CarFeature, position int64) *m_car_feature.Data {
	return &m_car_feature.Data{
		CarID:       carID,
		CategoryKey: f.CategoryKey,
		Name:        f.Name,
		Status:      string(f.Status),
		Position:    position,
	}
}

func (b *MutationBuilder) InsertFeatureMut(carID string, f *domain.CarFeature, position int64) (*spanner.Mutation, error) {
	return b.features.InsertMut(featureData(carID, f, position))
}

func (b *MutationBuilder) UpdateFeatureMut(carID string, f *domain.CarFeature) *spanner.Mutation {
	return b.features.UpdateMut(featureData(carID, f, 0))
}

func itemData(carID string, it *domain.InspectionItem, position int64) *m_inspection_item.Data {
	return &m_inspection_item.Data{
		CarID:         carID,
		SectionKey:    it.SectionKey,
		SubsectionKey: it.SubsectionKey,
		Name:          it.Name,
		Status:        string(it.Status),
		Remarks:       it.Remarks,
		Position:      position,
	}
}

func (b *MutationBuilder) InsertItemMut(carID string, it *domain.InspectionItem, position int64) (*spanner.Mutation, error) {
	return b.items.InsertMut(itemData(carID, it, position))
}

func (b *MutationBuilder) UpdateItemMut(carID string, it *domain.InspectionItem) *spanner.Mutation {
	return b.items.UpdateMut(itemData(carID, it, 0))
}

func scoreData(carID string, s *domain.SectionScore, position int64) *m_section_score.Data {
	return &m_section_score.Data{
		CarID:      carID,
		SectionKey: s.SectionKey,
		Score:      s.Score,
		Rating:     string(s.Rating),
		Status:     s.Status,
		Remarks:    s.Remarks,
		Position:   position,
	}
}

func (b *MutationBuilder) InsertScoreMut(carID string, s *domain.SectionScore, position int64) (*spanner.Mutation, error) {
	return b.scores.InsertMut(scoreData(carID, s, position))
}

func (b *MutationBuilder) UpdateScoreMut(carID string, s *domain.SectionScore) *spanner.Mutation {
	return b.scores.UpdateMut(scoreData(carID, s, 0))
}

func remarkData(carID string, r *domain.SubsectionRemark, position int64) *m_subsection_remark.Data {
	return &m_subsection_remark.Data{
		CarID:         carID,
		SectionKey:    r.SectionKey,
		SubsectionKey: r.SubsectionKey,
		Status:        r.Status,
		Remarks:       r.Remarks,
		Position:      position,
	}
}

func (b *MutationBuilder) InsertRemarkMut(carID string, r *domain.SubsectionRemark, position int64) (*spanner.Mutation, error) {
	return b.remarks.InsertMut(remarkData(carID, r, position))
}

func (b *MutationBuilder) UpdateRemarkMut(carID string, r *domain.SubsectionRemark) *spanner.Mutation {
	return b.remarks.UpdateMut(remarkData(carID, r, 0))
}
