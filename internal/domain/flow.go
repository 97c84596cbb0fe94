package domain

// Step is one screen of the order wizard. Each step owns the Selection
// fields it sets; going back past a step clears them.
type Step string

const (
	StepTextbook      Step = "textbook"
	StepPassages      Step = "passages"
	StepLessons       Step = "lessons"
	StepQuestionTypes Step = "question_types"
	StepQuantity      Step = "quantity"
	StepGrade         Step = "grade"
	StepExams         Step = "exams"
	StepSections      Step = "sections"
	StepMockExam      Step = "mock_exam"
	StepYear          Step = "year"
	StepMonth         Step = "month"
	StepNumbers       Step = "numbers"
	StepPackages      Step = "packages"
	StepMaterials     Step = "materials"
	StepRound         Step = "round"
	StepEmail         Step = "email"
)

var flows = map[Product][]Step{
	ProductTextbookVariant:  {StepTextbook, StepPassages, StepQuestionTypes, StepQuantity, StepEmail},
	ProductMockExamSections: {StepGrade, StepExams, StepSections, StepQuantity, StepEmail},
	ProductWorkbookTextbook: {StepTextbook, StepLessons, StepPackages, StepEmail},
	ProductWorkbookMockExam: {StepMockExam, StepNumbers, StepPackages, StepEmail},
	ProductNumberProduction: {StepGrade, StepYear, StepMonth, StepNumbers, StepMaterials, StepRound, StepEmail},
}

// FlowFor returns the ordered steps of a product's wizard.
func FlowFor(p Product) []Step {
	steps := flows[p]
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// stepCategory maps multi-select steps to the category they fill.
var stepCategory = map[Step]Category{
	StepPassages:      CategoryPassage,
	StepLessons:       CategoryLesson,
	StepQuestionTypes: CategoryQuestionType,
	StepExams:         CategoryExam,
	StepSections:      CategorySection,
	StepNumbers:       CategoryNumber,
	StepPackages:      CategoryPackage,
	StepMaterials:     CategoryMaterial,
}

// CategoryOf returns the category filled by a multi-select step.
func CategoryOf(s Step) (Category, bool) {
	c, ok := stepCategory[s]
	return c, ok
}

// Title is the heading shown above the step.
func (s Step) Title() string {
	switch s {
	case StepTextbook:
		return "교재 선택"
	case StepPassages:
		return "강과 번호 선택"
	case StepLessons:
		return "강 선택"
	case StepQuestionTypes:
		return "문제 유형 선택"
	case StepQuantity:
		return "유형별 문항 수"
	case StepGrade:
		return "학년 선택"
	case StepExams:
		return "모의고사 선택"
	case StepSections:
		return "문항 구간 선택"
	case StepMockExam:
		return "모의고사 선택"
	case StepYear:
		return "연도 선택"
	case StepMonth:
		return "월 선택"
	case StepNumbers:
		return "번호 선택"
	case StepPackages:
		return "워크북 패키지 선택"
	case StepMaterials:
		return "교재 구성 선택"
	case StepRound:
		return "변형문제 회차"
	case StepEmail:
		return "이메일 입력"
	default:
		return string(s)
	}
}

// EmptyMessage is shown when the user tries to leave a step without a choice.
func (s Step) EmptyMessage() string {
	switch s {
	case StepTextbook:
		return "교재를 선택해주세요."
	case StepPassages:
		return "강과 번호를 선택해주세요."
	case StepLessons:
		return "강을 선택해주세요."
	case StepQuestionTypes:
		return "문제 유형을 선택해주세요."
	case StepGrade:
		return "학년을 선택해주세요."
	case StepExams, StepMockExam:
		return "모의고사를 선택해주세요."
	case StepSections:
		return "문항 구간을 선택해주세요."
	case StepYear:
		return "연도를 선택해주세요."
	case StepMonth:
		return "월을 선택해주세요."
	case StepNumbers:
		return "번호를 선택해주세요."
	case StepPackages:
		return "워크북 패키지를 선택해주세요."
	case StepMaterials:
		return "교재 구성을 선택해주세요."
	case StepEmail:
		return "이메일 주소를 입력해주세요."
	default:
		return ""
	}
}
