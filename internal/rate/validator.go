package rate

import (
	"errors"

	"github.com/wpo70/RateEdge/internal/domain"
)

var (
	ErrCurrencyRequired    = errors.New("currency is required")
	ErrCurrencyUnsupported = errors.New("currency not supported")
	ErrTenorRequired       = errors.New("tenor is required")
	ErrTenorInvalid        = errors.New("tenor is not a valid maturity label")
	ErrDateRequired        = errors.New("date is required")
	ErrRateOutOfRange      = errors.New("rate must be a fraction between -1 and 1")
)

type Validator struct {
	supportedCodes map[string]struct{}
}

func NewValidator() *Validator {
	codes := make(map[string]struct{})
	for _, c := range domain.SupportedCurrencies() {
		codes[c] = struct{}{}
	}
	return &Validator{supportedCodes: codes}
}

func (v *Validator) ValidateCurrency(code string) error {
	if code == "" {
		return ErrCurrencyRequired
	}
	if _, ok := v.supportedCodes[code]; !ok {
		return ErrCurrencyUnsupported
	}
	return nil
}

func (v *Validator) ValidateTenor(tenor string) error {
	if tenor == "" {
		return ErrTenorRequired
	}
	if domain.TenorMonths(tenor) <= 0 {
		return ErrTenorInvalid
	}
	return nil
}

// ValidateNewRate checks an observation before it is stored. Rates are
// fractions of 1; anything at or beyond ±100% is a unit mistake.
func (v *Validator) ValidateNewRate(rate domain.SwapRate) error {
	if rate.Date.IsZero() {
		return ErrDateRequired
	}
	if err := v.ValidateCurrency(rate.Currency); err != nil {
		return err
	}
	if err := v.ValidateTenor(rate.Tenor); err != nil {
		return err
	}
	if rate.Rate <= -1 || rate.Rate >= 1 {
		return ErrRateOutOfRange
	}
	return nil
}
