package checkout

import (
	"errors"
	"regexp"
	"strings"

	"campania/internal/apperr"
	"campania/internal/model"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}$`)
)

type Contact struct {
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Address model.Address `json:"address"`
}

// ValidateContact returns every field problem found, in form order.
func ValidateContact(mode string, c Contact) []*apperr.ValidationError {
	var errs []*apperr.ValidationError
	if !emailRe.MatchString(strings.TrimSpace(c.Email)) {
		errs = append(errs, &apperr.ValidationError{Field: "email", Code: "INVALID_EMAIL"})
	}
	if mode != model.ModeDelivery {
		return errs
	}
	if strings.TrimSpace(c.Address.Street) == "" {
		errs = append(errs, &apperr.ValidationError{Field: "street", Code: "MISSING_STREET"})
	}
	if !zipRe.MatchString(strings.TrimSpace(c.Address.Zip)) {
		errs = append(errs, &apperr.ValidationError{Field: "zip", Code: "INVALID_ZIP"})
	}
	if strings.TrimSpace(c.Address.City) == "" {
		errs = append(errs, &apperr.ValidationError{Field: "city", Code: "MISSING_CITY"})
	}
	return errs
}

type Step int

const (
	StepContact Step = iota + 1
	StepSummary
	StepSubmit
)

var (
	ErrEmptyCart      = &apperr.ValidationError{Field: "items", Code: "EMPTY_ITEMS"}
	ErrBelowMinimum   = &apperr.ValidationError{Field: "totals", Code: "BELOW_MINIMUM"}
	ErrTermsRequired  = &apperr.ValidationError{Field: "terms", Code: "TERMS_NOT_ACCEPTED"}
	ErrAlreadyAtFinal = errors.New("checkout already at final step")
)

// Flow is the three-step checkout wizard: contact, summary, submit.
type Flow struct {
	Cart          model.Cart
	Contact       Contact
	Rule          *model.DeliveryRule
	TermsAccepted bool

	step Step
}

func NewFlow(cart model.Cart, rule *model.DeliveryRule) *Flow {
	return &Flow{Cart: cart, Rule: rule, step: StepContact}
}

func (f *Flow) Step() Step {
	return f.step
}

func (f *Flow) Totals() Totals {
	return Compute(f.Cart.Items, f.Rule, f.Cart.Mode)
}

// Advance moves one step forward or returns the first gate that blocks it.
func (f *Flow) Advance() error {
	switch f.step {
	case StepContact:
		if len(f.Cart.Items) == 0 {
			return ErrEmptyCart
		}
		if errs := ValidateContact(f.Cart.Mode, f.Contact); len(errs) > 0 {
			return errs[0]
		}
		f.step = StepSummary
	case StepSummary:
		if !f.TermsAccepted {
			return ErrTermsRequired
		}
		f.step = StepSubmit
	default:
		return ErrAlreadyAtFinal
	}
	return nil
}

// Back returns to the contact step; the wizard only offers this jump.
func (f *Flow) Back() {
	f.step = StepContact
}

// Blockers lists what currently prevents submission.
func (f *Flow) Blockers() []*apperr.ValidationError {
	var errs []*apperr.ValidationError
	if len(f.Cart.Items) == 0 {
		errs = append(errs, ErrEmptyCart)
	}
	errs = append(errs, ValidateContact(f.Cart.Mode, f.Contact)...)
	if f.Totals().BelowMinimum {
		errs = append(errs, ErrBelowMinimum)
	}
	if !f.TermsAccepted {
		errs = append(errs, ErrTermsRequired)
	}
	return errs
}

func (f *Flow) CanSubmit() bool {
	return f.step == StepSubmit && len(f.Cart.Items) > 0 && !f.Totals().BelowMinimum
}

// ValidateCart checks the persisted cart schema.
func ValidateCart(c model.Cart) error {
	if c.Version != model.CartVersion {
		return apperr.ErrUnsupportedCart
	}
	if c.Mode != model.ModePickup && c.Mode != model.ModeDelivery {
		return &apperr.ValidationError{Field: "mode", Code: "INVALID_MODE"}
	}
	for _, it := range c.Items {
		if it.Qty < 0 || it.Price < 0 {
			return &apperr.ValidationError{Field: "items", Code: "NEGATIVE_AMOUNT"}
		}
	}
	return nil
}
