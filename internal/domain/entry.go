package domain

import "strings"

// Entry is a selectable, optionally priced catalog item: a question type,
// exam section, workbook package or production material.
type Entry struct {
	ID          string
	Name        string
	Description string
	UnitPrice   int64
	Free        bool
	SubTypes    []string
	// Size is how many questions the entry expands to. Zero means one.
	Size int
}

// Count returns Size, treating an unset size as one.
func (e Entry) Count() int {
	if e.Size <= 0 {
		return 1
	}
	return e.Size
}

// EffectivePrice is the unit price actually charged, zero for free entries.
func (e Entry) EffectivePrice() int64 {
	if e.Free {
		return 0
	}
	return e.UnitPrice
}

const variantMaterialPrefix = "variant_"

// IsVariantMaterial reports whether a production material carries a round.
func IsVariantMaterial(id string) bool {
	return strings.HasPrefix(id, variantMaterialPrefix)
}

// IsMockExamName reports whether a name follows the "고1_2024_03월" convention.
func IsMockExamName(name string) bool {
	for _, p := range []string{"고1_", "고2_", "고3_"} {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

const gradeKeySuffix = "모의고사"

// GradeLabel turns a mock-exam grade key such as "고1모의고사" into "고1".
func GradeLabel(key string) string {
	return strings.TrimSuffix(key, gradeKeySuffix)
}

// GradeKey is the inverse of GradeLabel.
func GradeKey(label string) string {
	if strings.HasSuffix(label, gradeKeySuffix) {
		return label
	}
	return label + gradeKeySuffix
}
