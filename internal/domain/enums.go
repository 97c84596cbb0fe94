package domain

type Product string

const (
	ProductTextbookVariant  Product = "textbook_variant"
	ProductMockExamSections Product = "mockexam_sections"
	ProductWorkbookTextbook Product = "workbook_textbook"
	ProductWorkbookMockExam Product = "workbook_mockexam"
	ProductNumberProduction Product = "number_production"
)

// Products lists every product in menu order.
var Products = []Product{
	ProductTextbookVariant,
	ProductMockExamSections,
	ProductWorkbookTextbook,
	ProductWorkbookMockExam,
	ProductNumberProduction,
}

// ValidProducts is the canonical set of accepted product strings.
var ValidProducts = map[string]bool{
	"textbook_variant": true, "mockexam_sections": true, "workbook_textbook": true,
	"workbook_mockexam": true, "number_production": true,
}

// Label returns the Korean menu label of the product.
func (p Product) Label() string {
	switch p {
	case ProductTextbookVariant:
		return "부교재 변형문제"
	case ProductMockExamSections:
		return "모의고사 변형문제"
	case ProductWorkbookTextbook:
		return "부교재 워크북"
	case ProductWorkbookMockExam:
		return "모의고사 워크북"
	case ProductNumberProduction:
		return "번호별 교재 제작"
	default:
		return string(p)
	}
}

// IsWorkbook reports whether the product is priced per package and passage.
func (p Product) IsWorkbook() bool {
	return p == ProductWorkbookTextbook || p == ProductWorkbookMockExam
}

// IsQuestion reports whether the product is priced per generated question.
func (p Product) IsQuestion() bool {
	return p == ProductTextbookVariant || p == ProductMockExamSections
}

type Category string

const (
	CategoryPassage      Category = "passage"
	CategoryLesson       Category = "lesson"
	CategoryQuestionType Category = "question_type"
	CategoryExam         Category = "exam"
	CategorySection      Category = "section"
	CategoryNumber       Category = "number"
	CategoryPackage      Category = "package"
	CategoryMaterial     Category = "material"
)

// MoveDirection is used when reordering chosen materials.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)

const (
	DefaultQuantityPerType = 2
	MinQuantityPerType     = 1
	MaxQuantityPerType     = 3

	DefaultRound = 1
	MinRound     = 1
	MaxRound     = 3
)
