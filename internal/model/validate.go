package model

import (
	"net/mail"
	"slices"
	"strings"

	"github.com/devanshyadav01/sweetshop/internal/errs"
)

// ValidCategory reports whether c is a member of the fixed category set.
func ValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// ValidateNewSweet checks all fields of a catalog creation request.
func ValidateNewSweet(n NewSweet) error {
	if err := validateName(n.Name); err != nil {
		return err
	}
	if !ValidCategory(n.Category) {
		return errs.Validation("category", "invalid category")
	}
	if n.Price < 0 {
		return errs.Validation("price", "price cannot be negative")
	}
	if n.Quantity < 0 {
		return errs.Validation("quantity", "quantity cannot be negative")
	}
	return nil
}

// ValidateSweetUpdate checks only the fields supplied, against the same rules
// as creation.
func ValidateSweetUpdate(u SweetUpdate) error {
	if u.Name != nil {
		if err := validateName(*u.Name); err != nil {
			return err
		}
	}
	if u.Category != nil && !ValidCategory(*u.Category) {
		return errs.Validation("category", "invalid category")
	}
	if u.Price != nil && *u.Price < 0 {
		return errs.Validation("price", "price cannot be negative")
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return errs.Validation("quantity", "quantity cannot be negative")
	}
	return nil
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return errs.Validation("name", "name must be at least 2 characters")
	}
	if len(trimmed) > 100 {
		return errs.Validation("name", "name must be at most 100 characters")
	}
	return nil
}

// ValidateCredentials checks registration/login input.
func ValidateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.Validation("email", "valid email is required")
	}
	if len(password) < 6 {
		return errs.Validation("password", "password must be at least 6 characters")
	}
	return nil
}
