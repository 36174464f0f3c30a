package domain

import "errors"

var (
	ErrRateNotFound   = errors.New("rate not found")
	ErrAlertNotFound  = errors.New("alert not found")
	ErrEmptyCurve     = errors.New("no observations available to build a curve")
	ErrTenorNotQuoted = errors.New("tenor not quoted on the curve")
)
