package models

import "errors"

var (
	// ErrInvalidParameter is returned for non-finite or out of range inputs.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidOptionType is returned for anything other than call or put.
	ErrInvalidOptionType = errors.New("invalid option type")
	// ErrShapeMismatch signals price and cash-flow matrices of different
	// dimensions. It is a programming error, not a user error.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDegenerateRegression is returned by the continuation value
	// estimator when the regression cannot be fitted. Pricers recover from
	// it and never return it.
	ErrDegenerateRegression = errors.New("degenerate regression")
)
