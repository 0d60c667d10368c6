// Package readmodel builds the nested car detail document from a car and its
// preloaded related rows.
package readmodel

import (
	"sort"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/pkg/orderedmap"
)

// CarBundle is a car with every related row, each slice in stored position order.
type CarBundle struct {
	Car        *domain.Car
	Dealer     *domain.Dealer
	Images     []domain.CarImage
	Highlights []domain.CarHighlight
	Reasons    []domain.CarReason
	Specs      []domain.CarSpec
	Features   []domain.CarFeature
	Items      []domain.InspectionItem
	Scores     []domain.SectionScore
	Remarks    []domain.SubsectionRemark
}

// Assemble builds the detail document for bundle against the inspection taxonomy.
// It is a pure function of its inputs.
func Assemble(bundle *CarBundle, taxonomy []domain.InspectionSection) *CarDocument {
	doc := rootDocument(bundle.Car)
	doc.Dealer = dealerDocument(bundle.Dealer)

	doc.Images = orderedmap.New[[]ImageDocument]()
	for _, img := range bundle.Images {
		orderedmap.Group(doc.Images, img.CategoryKey, ImageDocument{
			Category:  img.CategoryKey,
			Image:     img.Path,
			Caption:   img.Caption,
			SortOrder: img.SortOrder,
		})
	}
	for _, key := range doc.Images.Keys() {
		list, _ := doc.Images.Get(key)
		sort.SliceStable(list, func(i, j int) bool { return list[i].SortOrder < list[j].SortOrder })
	}

	doc.Highlights = make([]HighlightDocument, 0, len(bundle.Highlights))
	for _, h := range bundle.Highlights {
		doc.Highlights = append(doc.Highlights, HighlightDocument{Text: h.Text})
	}

	doc.ReasonsToBuy = make([]ReasonDocument, 0, len(bundle.Reasons))
	for _, r := range bundle.Reasons {
		doc.ReasonsToBuy = append(doc.ReasonsToBuy, ReasonDocument{
			Title:       r.Title,
			Description: r.Description,
			SortOrder:   r.SortOrder,
		})
	}
	sort.SliceStable(doc.ReasonsToBuy, func(i, j int) bool {
		return doc.ReasonsToBuy[i].SortOrder < doc.ReasonsToBuy[j].SortOrder
	})

	doc.Specs = orderedmap.New[[]SpecDocument]()
	for _, s := range bundle.Specs {
		orderedmap.Group(doc.Specs, s.CategoryKey, SpecDocument{Category: s.CategoryKey, Label: s.Label, Value: s.Value})
	}

	doc.Features = orderedmap.New[[]FeatureDocument]()
	for _, f := range bundle.Features {
		orderedmap.Group(doc.Features, f.CategoryKey, FeatureDocument{
			Category: f.CategoryKey,
			Name:     f.Name,
			Status:   string(f.Status),
		})
	}

	doc.Inspections = assembleInspections(bundle, taxonomy)
	return doc
}

func rootDocument(car *domain.Car) *CarDocument {
	doc := &CarDocument{
		ID:                 car.ID,
		CarCode:            car.Code,
		Title:              car.Title,
		Brand:              car.Brand,
		Model:              car.Model,
		Year:               car.Year,
		KM:                 car.KM,
		Fuel:               car.Fuel,
		Transmission:       car.Transmission,
		Body:               car.Body,
		Seats:              car.Seats,
		City:               car.City,
		RTO:                car.RTO,
		ColorKey:           car.ColorKey,
		RegistrationNumber: car.RegistrationNumber,
		AvailabilityStatus: string(car.AvailabilityStatus),
		InsuranceType:      string(car.InsuranceType),
		OwnerCount:         car.OwnerCount,
		Tags:               car.Tags,
		Metadata:           car.Metadata,
		CreatedAt:          car.CreatedAt,
	}
	if car.Price != nil {
		doc.Price = car.Price.String()
	}
	if car.DiscountPrice != nil {
		s := car.DiscountPrice.String()
		doc.DiscountPrice = &s
	}
	if pct, ok := car.DiscountPercent(); ok {
		doc.DiscountPercent = &pct
	}
	if car.Thumbnail != "" {
		thumb := car.Thumbnail
		doc.Thumbnail = &thumb
	}
	if car.InsuranceValidTill != nil {
		s := car.InsuranceValidTill.String()
		doc.InsuranceValidTill = &s
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]interface{}{}
	}
	return doc
}

func dealerDocument(d *domain.Dealer) *DealerDocument {
	if d == nil {
		return nil
	}
	return &DealerDocument{ID: d.ID, DealerCode: d.Code, Name: d.Name, City: d.City, Tier: string(d.Tier)}
}

type subsectionRef struct {
	section, subsection string
}

// assembleInspections walks the taxonomy in display order. A subsection is
// kept when it has items, a car remark, or its section is scored; a section
// is kept when it has a kept subsection or a score.
func assembleInspections(bundle *CarBundle, taxonomy []domain.InspectionSection) []SectionDocument {
	items := make(map[subsectionRef][]ItemDocument)
	for _, it := range bundle.Items {
		ref := subsectionRef{it.SectionKey, it.SubsectionKey}
		items[ref] = append(items[ref], ItemDocument{Name: it.Name, Status: string(it.Status), Remarks: it.Remarks})
	}
	remarks := make(map[subsectionRef]domain.SubsectionRemark, len(bundle.Remarks))
	for _, r := range bundle.Remarks {
		ref := subsectionRef{r.SectionKey, r.SubsectionKey}
		if _, seen := remarks[ref]; !seen {
			remarks[ref] = r
		}
	}
	scores := make(map[string]domain.SectionScore, len(bundle.Scores))
	for _, s := range bundle.Scores {
		if _, seen := scores[s.SectionKey]; !seen {
			scores[s.SectionKey] = s
		}
	}

	result := []SectionDocument{}
	for _, section := range sortedSections(taxonomy) {
		score, scored := scores[section.Key]

		subs := []SubsectionDocument{}
		for _, sub := range sortedSubsections(section.Subsections) {
			ref := subsectionRef{section.Key, sub.Key}
			subItems, hasItems := items[ref]
			remark, hasRemark := remarks[ref]
			if !hasItems && !hasRemark && !scored {
				continue
			}

			block := SubsectionDocument{Key: sub.Key, Title: sub.Title, Remarks: sub.Remarks, Items: []ItemDocument{}}
			if hasRemark {
				block.Status = remark.Status
				block.Remarks = remark.Remarks
			}
			if hasItems {
				block.Items = subItems
			}
			subs = append(subs, block)
		}

		if len(subs) == 0 && !scored {
			continue
		}
		block := SectionDocument{
			Key:         section.Key,
			Title:       section.Title,
			Description: section.Description,
			Subsections: subs,
		}
		if scored {
			v := score.Score
			block.Score = &v
			block.Rating = string(score.Rating)
			block.Status = score.Status
			block.Remarks = score.Remarks
		}
		result = append(result, block)
	}
	return result
}

func sortedSections(in []domain.InspectionSection) []domain.InspectionSection {
	out := append([]domain.InspectionSection(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func sortedSubsections(in []domain.InspectionSubsection) []domain.InspectionSubsection {
	out := append([]domain.InspectionSubsection(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Key < out[j].Key
	})
	return out
}
