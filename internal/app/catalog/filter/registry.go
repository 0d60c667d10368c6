package filter

import (
	"fmt"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/models/m_car_feature"
	"github.com/light-bringer/carcat-service/internal/models/m_car_highlight"
	"github.com/light-bringer/carcat-service/internal/models/m_car_image"
	"github.com/light-bringer/carcat-service/internal/models/m_car_reason"
	"github.com/light-bringer/carcat-service/internal/models/m_car_spec"
	"github.com/light-bringer/carcat-service/internal/models/m_dealer"
	"github.com/light-bringer/carcat-service/internal/models/m_inspection_item"
	"github.com/light-bringer/carcat-service/internal/models/m_section_score"
	"github.com/light-bringer/carcat-service/internal/models/m_subsection_remark"
	"github.com/light-bringer/carcat-service/internal/pkg/query"
)

var carID = m_car.Col(m_car.CarID)

func carRelation(table, fk string) *query.Relation {
	return &query.Relation{Table: table, Correlate: fmt.Sprintf("%s.%s = %s", table, fk, carID)}
}

// Relations from a car row to its related tables.
var (
	dealerRel = &query.Relation{
		Table:     m_dealer.TableName,
		Correlate: m_dealer.Col(m_dealer.DealerID) + " = " + m_car.Col(m_car.DealerID),
	}
	imageRel      = carRelation(m_car_image.TableName, m_car_image.CarID)
	highlightRel  = carRelation(m_car_highlight.TableName, m_car_highlight.CarID)
	reasonRel     = carRelation(m_car_reason.TableName, m_car_reason.CarID)
	specRel       = carRelation(m_car_spec.TableName, m_car_spec.CarID)
	featureRel    = carRelation(m_car_feature.TableName, m_car_feature.CarID)
	itemRel       = carRelation(m_inspection_item.TableName, m_inspection_item.CarID)
	scoreRel      = carRelation(m_section_score.TableName, m_section_score.CarID)
	subsectionRel = carRelation(m_subsection_remark.TableName, m_subsection_remark.CarID)
)

func rangeRule(param, column string, vt ValueType, op Op) Rule {
	return Rule{Param: param, Kind: Range, Field: m_car.Col(column), Value: vt, Op: op}
}

func memberRule(param, column string) Rule {
	return Rule{Param: param, Kind: Membership, Field: m_car.Col(column)}
}

func majorItems() query.Condition {
	return query.Eq(m_inspection_item.Col(m_inspection_item.Status), string(domain.ItemMajor))
}

// DefaultRules returns every supported parameter in canonical order.
// Plans list their conditions in this order regardless of request order.
func DefaultRules() []Rule {
	return []Rule{
		// Range
		rangeRule("price_min", m_car.Price, Decimal, Gte),
		rangeRule("price_max", m_car.Price, Decimal, Lte),
		rangeRule("exact_price", m_car.Price, Decimal, Eq),
		rangeRule("discount_price_min", m_car.DiscountPrice, Decimal, Gte),
		rangeRule("discount_price_max", m_car.DiscountPrice, Decimal, Lte),
		rangeRule("year_min", m_car.Year, Int, Gte),
		rangeRule("year_max", m_car.Year, Int, Lte),
		rangeRule("km_min", m_car.KM, Int, Gte),
		rangeRule("km_max", m_car.KM, Int, Lte),
		rangeRule("seats_min", m_car.Seats, Int, Gte),
		rangeRule("seats_max", m_car.Seats, Int, Lte),
		rangeRule("seats_exact", m_car.Seats, Int, Eq),
		rangeRule("owner_count", m_car.OwnerCount, Int, Eq),
		rangeRule("owner_count_lte", m_car.OwnerCount, Int, Lte),
		rangeRule("listed_after", m_car.CreatedAt, Day, Gte),
		rangeRule("listed_before", m_car.CreatedAt, Day, Lte),

		// Membership on the car row
		memberRule("car_code", m_car.CarCode),
		memberRule("brand", m_car.Brand),
		memberRule("model", m_car.CarModel),
		memberRule("fuel", m_car.Fuel),
		memberRule("transmission", m_car.Transmission),
		memberRule("body", m_car.Body),
		memberRule("city", m_car.City),
		memberRule("rto", m_car.RTO),
		memberRule("color", m_car.ColorKey),
		memberRule("availability_status", m_car.AvailabilityStatus),
		memberRule("insurance_type", m_car.InsuranceType),
		memberRule("dealer_id", m_car.DealerID),

		// Membership through a relation
		{Param: "dealer_tier", Kind: Membership, Field: m_dealer.Col(m_dealer.Tier), Relation: dealerRel},
		{Param: "dealer_city", Kind: Membership, Field: m_dealer.Col(m_dealer.City), Relation: dealerRel},
		{Param: "dealer_code", Kind: Membership, Field: m_dealer.Col(m_dealer.DealerCode), Relation: dealerRel},
		{Param: "has_image_category", Kind: Membership, Field: m_car_image.Col(m_car_image.CategoryKey), Relation: imageRel},
		{Param: "feature_category", Kind: Membership, Field: m_car_feature.Col(m_car_feature.CategoryKey), Relation: featureRel},
		{Param: "feature_status", Kind: Membership, Field: m_car_feature.Col(m_car_feature.Status), Relation: featureRel},
		{Param: "inspection_rating", Kind: Membership, Field: m_section_score.Col(m_section_score.Rating), Relation: scoreRel},
		{Param: "inspection_subsection_status", Kind: Membership, Field: m_subsection_remark.Col(m_subsection_remark.Status), Relation: subsectionRel},

		// Derived booleans
		{
			Param: "has_discount", Kind: Boolean,
			OnTrue: func(Env) query.Condition { return query.IsNotNull(m_car.Col(m_car.DiscountPrice)) },
		},
		{
			Param: "first_owner_only", Kind: Boolean,
			OnTrue: func(Env) query.Condition { return query.Eq(m_car.Col(m_car.OwnerCount), int64(1)) },
		},
		{
			Param: "insurance_valid", Kind: Boolean,
			OnTrue: func(env Env) query.Condition { return query.Gte(m_car.Col(m_car.InsuranceValidTill), env.Today) },
		},
		{
			Param: "insurance_expired", Kind: Boolean,
			OnTrue: func(env Env) query.Condition { return query.Lt(m_car.Col(m_car.InsuranceValidTill), env.Today) },
		},
		{
			Param: "has_thumbnail", Kind: Boolean,
			OnTrue:  func(Env) query.Condition { return query.IsNotNull(m_car.Col(m_car.Thumbnail)) },
			OnFalse: func(Env) query.Condition { return query.IsNull(m_car.Col(m_car.Thumbnail)) },
		},
		{
			Param: "has_major_flaws", Kind: Boolean,
			OnTrue:  func(Env) query.Condition { return query.Exists(*itemRel, majorItems()) },
			OnFalse: func(Env) query.Condition { return query.NotExists(*itemRel, majorItems()) },
		},

		// Computed thresholds
		{
			Param: "discount_percent_min", Kind: Computed, Value: Decimal,
			Compute: func(v interface{}, _ Env) query.Condition {
				price, discount := m_car.Col(m_car.Price), m_car.Col(m_car.DiscountPrice)
				return query.Expr(fmt.Sprintf(
					"%[2]s IS NOT NULL AND %[1]s > 0 AND (%[1]s - %[2]s) * 100 >= ? * %[1]s",
					price, discount), v)
			},
		},
		{
			Param: "insurance_expiring_within_days", Kind: Computed, Value: Count,
			Compute: func(v interface{}, env Env) query.Condition {
				field := m_car.Col(m_car.InsuranceValidTill)
				return query.And(
					query.Gte(field, env.Today),
					query.Lte(field, env.Today.AddDays(int(v.(int64)))),
				)
			},
		},
		{
			Param: "listed_last_n_days", Kind: Computed, Value: Count,
			Compute: func(v interface{}, env Env) query.Condition {
				return query.Gte(m_car.Col(m_car.CreatedAt), env.Now.AddDate(0, 0, -int(v.(int64))))
			},
		},

		// Aggregates over relations
		{Param: "image_count_min", Kind: Existence, Relation: imageRel},
		{Param: "reason_count_min", Kind: Existence, Relation: reasonRel},
		{
			Param: "inspection_score_min", Kind: Range, Value: Float, Op: Gte,
			Field: m_section_score.Col(m_section_score.Score), Relation: scoreRel,
		},

		// Text
		{Param: "highlight_contains", Kind: Text, Match: Contains, Field: m_car_highlight.Col(m_car_highlight.Text), Relation: highlightRel},
		{Param: "highlight_exact", Kind: Text, Match: Exact, Field: m_car_highlight.Col(m_car_highlight.Text), Relation: highlightRel},
		{Param: "has_reason", Kind: Text, Match: Contains, Field: m_car_reason.Col(m_car_reason.Title), Relation: reasonRel},
		{
			Param: "has_features", Kind: Text, Match: Exact, Split: true, All: true,
			Field: m_car_feature.Col(m_car_feature.Name), Relation: featureRel,
		},
		{
			Param: "search", Kind: Text, Match: Contains,
			Fields: []string{
				m_car.Col(m_car.Title), m_car.Col(m_car.Brand), m_car.Col(m_car.CarModel),
				m_car.Col(m_car.City), m_car.Col(m_car.ColorKey), m_car.Col(m_car.CarCode),
				m_car.Col(m_car.RegistrationNumber),
			},
		},

		// Tags
		{Param: "tags_any", Kind: Tags, Field: m_car.Col(m_car.Tags)},
		{Param: "tags_all", Kind: Tags, Field: m_car.Col(m_car.Tags), All: true},

		// Composite key:value
		{
			Param: "spec", Kind: Composite,
			Compose: func(key, value string) (query.Condition, error) {
				return query.Exists(*specRel,
					query.Eq(m_car_spec.Col(m_car_spec.CategoryKey), key),
					query.EqualFold(m_car_spec.Col(m_car_spec.Value), value),
				), nil
			},
		},
		{
			Param: "metadata", Kind: Composite,
			Compose: func(key, value string) (query.Condition, error) {
				if !query.ValidJSONKey(key) {
					return nil, fmt.Errorf("metadata key %q may only contain letters, digits and underscores", key)
				}
				return query.JSONValueEq(m_car.Col(m_car.Metadata), key, value), nil
			},
		},
	}
}
