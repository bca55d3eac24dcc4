package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every invalid field of a patch.
// It matches ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Validate checks a patch before it reaches the store
func (p *StatePatch) Validate() error {
	var errs ValidationErrors
	if p.CurrentBalance != nil && !p.CurrentBalance.IsInteger() {
		errs = append(errs, FieldError{Field: "currentBalance", Message: "Must be a whole yen amount"})
	}
	if p.CreditCards != nil {
		for i, c := range *p.CreditCards {
			prefix := fmt.Sprintf("creditCards[%d]", i)
			errs = append(errs, validateName(prefix, c.Name)...)
			errs = append(errs, validateAmount(prefix+".creditLimit", c.CreditLimit)...)
			errs = append(errs, validateAmount(prefix+".currentBalance", c.CurrentBalance)...)
			errs = append(errs, validateAnchorDay(prefix, c.AnchorDay)...)
		}
		errs = append(errs, validateUniqueIDs("creditCards", len(*p.CreditCards), func(i int) string { return (*p.CreditCards)[i].ID })...)
	}
	if p.Expenses != nil {
		for i, e := range *p.Expenses {
			prefix := fmt.Sprintf("expenses[%d]", i)
			errs = append(errs, validateName(prefix, e.Name)...)
			errs = append(errs, validateAmount(prefix+".amount", e.Amount)...)
			errs = append(errs, validateAnchorDay(prefix, e.AnchorDay)...)
		}
		errs = append(errs, validateUniqueIDs("expenses", len(*p.Expenses), func(i int) string { return (*p.Expenses)[i].ID })...)
	}
	if p.Incomes != nil {
		for i, in := range *p.Incomes {
			prefix := fmt.Sprintf("incomes[%d]", i)
			errs = append(errs, validateName(prefix, in.Name)...)
			errs = append(errs, validateAmount(prefix+".amount", in.Amount)...)
			errs = append(errs, validateAnchorDay(prefix, in.AnchorDay)...)
		}
		errs = append(errs, validateUniqueIDs("incomes", len(*p.Incomes), func(i int) string { return (*p.Incomes)[i].ID })...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateName(prefix, name string) []FieldError {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return []FieldError{{Field: prefix + ".name", Message: "Name is required"}}
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return []FieldError{{Field: prefix + ".name", Message: fmt.Sprintf("Must be at most %d characters", MaxNameLength)}}
	}
	return nil
}

func validateAmount(field string, amount decimal.Decimal) []FieldError {
	if !amount.IsInteger() {
		return []FieldError{{Field: field, Message: "Must be a whole yen amount"}}
	}
	if amount.IsNegative() {
		return []FieldError{{Field: field, Message: "Must not be negative"}}
	}
	return nil
}

func validateAnchorDay(prefix string, day int) []FieldError {
	if day < MinAnchorDay || day > MaxAnchorDay {
		return []FieldError{{Field: prefix + ".anchorDay", Message: fmt.Sprintf("Must be between %d and %d", MinAnchorDay, MaxAnchorDay)}}
	}
	return nil
}

// validateUniqueIDs flags every repeat of a non-empty id within one list.
// Empty ids are filled in later and never collide.
func validateUniqueIDs(list string, n int, id func(int) string) []FieldError {
	var errs []FieldError
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			continue
		}
		if seen[v] {
			errs = append(errs, FieldError{Field: fmt.Sprintf("%s[%d].id", list, i), Message: "Duplicate id"})
		}
		seen[v] = true
	}
	return errs
}
