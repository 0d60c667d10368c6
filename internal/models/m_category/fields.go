package m_category

import "fmt"

// Category tables share one shape: a key and a display title.
const (
	ImageTable   = "image_categories"
	SpecTable    = "spec_categories"
	FeatureTable = "feature_categories"

	CategoryKey = "category_key"
	Title       = "title"
)

// Kind identifies one of the category tables.
type Kind int

const (
	Image Kind = iota
	Spec
	Feature
)

// TableName returns the table backing the kind.
func (k Kind) TableName() string {
	switch k {
	case Image:
		return ImageTable
	case Spec:
		return SpecTable
	case Feature:
		return FeatureTable
	default:
		panic(fmt.Sprintf("m_category: unknown kind %d", int(k)))
	}
}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CategoryKey, Title}
