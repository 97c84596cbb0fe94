package order

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const emailTag = "order_email"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("order: registering %s: %v", emailTag, err))
	}
	return v
}

// ValidEmail reports whether s is an acceptable contact address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,"+emailTag) == nil
}

// EmailMessage returns the user-facing problem with an address, or "".
func EmailMessage(s string) string {
	if validate.Var(s, "required") != nil {
		return "이메일 주소를 입력해주세요."
	}
	if validate.Var(s, emailTag) != nil {
		return "올바른 이메일 주소를 입력해주세요."
	}
	return ""
}

const (
	msgProduct      = "상품을 선택해주세요."
	msgFreeOnly     = "무료 자료만으로는 주문서를 작성할 수 없습니다.\n유료 자료를 함께 선택해주세요."
	msgNoPassages   = "선택한 강에 지문이 없습니다."
	msgQuantity     = "유형별 문항 수는 1~3 사이로 선택해주세요."
	msgRound        = "변형문제 회차는 1~3 사이로 선택해주세요."
	msgUnknownEntry = "알 수 없는 항목입니다: %s"
)

// Validate returns every user-facing reason the selection cannot be
// ordered, in the order of the product's steps.
func Validate(sel *domain.Selection, ref Reference) []string {
	if !domain.ValidProducts[string(sel.Product)] {
		return []string{msgProduct}
	}
	structMsgs := structMessages(sel)
	var msgs []string
	for _, step := range domain.FlowFor(sel.Product) {
		msgs = append(msgs, stepMessages(sel, ref, step, structMsgs)...)
	}
	return msgs
}

// ValidateStep returns the problems owned by a single step, so the wizard
// can keep the user on that step until they are fixed.
func ValidateStep(sel *domain.Selection, ref Reference, step domain.Step) []string {
	if !domain.ValidProducts[string(sel.Product)] {
		return []string{msgProduct}
	}
	return stepMessages(sel, ref, step, structMessages(sel))
}

func stepMessages(sel *domain.Selection, ref Reference, step domain.Step, structMsgs map[string][]string) []string {
	switch step {
	case domain.StepTextbook:
		if sel.Textbook == "" {
			return []string{step.EmptyMessage()}
		}
	case domain.StepGrade:
		if sel.Grade == "" {
			return []string{step.EmptyMessage()}
		}
	case domain.StepMockExam:
		if sel.MockExam == "" {
			return []string{step.EmptyMessage()}
		}
	case domain.StepYear:
		if sel.Year == "" {
			return []string{step.EmptyMessage()}
		}
	case domain.StepMonth:
		if sel.Month == "" {
			return []string{step.EmptyMessage()}
		}
	case domain.StepQuantity:
		return structMsgs["QuantityPerType"]
	case domain.StepRound:
		if sel.HasVariantMaterial() {
			return structMsgs["Round"]
		}
	case domain.StepEmail:
		if m := EmailMessage(sel.Email); m != "" {
			return []string{m}
		}
	default:
		return categoryMessages(sel, ref, step)
	}
	return nil
}

func categoryMessages(sel *domain.Selection, ref Reference, step domain.Step) []string {
	cat, ok := domain.CategoryOf(step)
	if !ok {
		return nil
	}
	ids := sel.Chosen(cat)
	if len(ids) == 0 {
		return []string{step.EmptyMessage()}
	}

	var msgs []string
	switch cat {
	case domain.CategoryQuestionType, domain.CategorySection, domain.CategoryPackage,
		domain.CategoryMaterial, domain.CategoryNumber:
		for _, id := range ids {
			if _, ok := ref.Entry(cat, sel.Product, id); !ok {
				msgs = append(msgs, fmt.Sprintf(msgUnknownEntry, id))
			}
		}
	case domain.CategoryLesson:
		if ref.PassageCount(sel.Textbook, ids) == 0 {
			msgs = append(msgs, msgNoPassages)
		}
	}

	if cat == domain.CategoryPackage && len(msgs) == 0 && freeOnly(sel, ref) {
		msgs = append(msgs, msgFreeOnly)
	}
	return msgs
}

func freeOnly(sel *domain.Selection, ref Reference) bool {
	for _, e := range entries(sel, ref, domain.CategoryPackage) {
		if !e.Free {
			return false
		}
	}
	return true
}

// structMessages runs the struct tags of Selection and groups the
// resulting messages by field name.
func structMessages(sel *domain.Selection) map[string][]string {
	err := validate.Struct(sel)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"": {err.Error()}}
	}
	out := make(map[string][]string)
	for _, fe := range verrs {
		switch fe.Field() {
		case "QuantityPerType":
			out[fe.Field()] = append(out[fe.Field()], msgQuantity)
		case "Round":
			out[fe.Field()] = append(out[fe.Field()], msgRound)
		}
	}
	return out
}
