package domain

type Element string

const (
	ElementFire  Element = "Ateş"
	ElementEarth Element = "Toprak"
	ElementAir   Element = "Hava"
	ElementWater Element = "Su"
)

type Traits struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// ZodiacSign is an entry of the static sign table.
type ZodiacSign struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Symbol        string   `json:"symbol"`
	Element       Element  `json:"element"`
	DateRange     string   `json:"dateRange"`
	Traits        Traits   `json:"traits"`
	Compatibility []string `json:"compatibility"`
	LuckyNumbers  []int    `json:"luckyNumbers"`
	LuckyColors   []string `json:"luckyColors"`
	Planet        string   `json:"planet"`
	Gemstone      string   `json:"gemstone"`
	BodyPart      string   `json:"bodyPart"`
}

type CompatibilityLevel string

const (
	CompatibilityCompatible CompatibilityLevel = "compatible"
	CompatibilityModerate   CompatibilityLevel = "moderate"
)

type Compatibility struct {
	SignA       string             `json:"signA"`
	SignB       string             `json:"signB"`
	Level       CompatibilityLevel `json:"level"`
	Score       int                `json:"score"`
	Description string             `json:"description"`
	Strengths   []string           `json:"strengths"`
	Challenges  []string           `json:"challenges"`
}
