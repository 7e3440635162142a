package subscription

import "errors"

var (
	ErrPlanNotFound    = errors.New("subscription plan not found")
	ErrProfileNotFound = errors.New("owner profile not found")
)
