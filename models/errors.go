package models

import (
	"errors"
)

var (
	ErrUntrainedModel   = errors.New("model has not been trained")
	ErrInsufficientData = errors.New("insufficient training data for model order")
	ErrInvalidOrder     = errors.New("model order must be positive")
	ErrIndexOutOfRange  = errors.New("time index out of range")
	ErrNoWeights        = errors.New("no weights provided")
	ErrZeroWeightSum    = errors.New("weights sum to zero")
	ErrNonFiniteFit     = errors.New("fit produced non-finite coefficients")
	ErrInvalidVariance  = errors.New("noise variances must be positive")
)
