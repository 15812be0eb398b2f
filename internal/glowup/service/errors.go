package service

import "errors"

var (
	ErrNoUser        = errors.New("service: no user profile")
	ErrNotFound      = errors.New("service: not found")
	ErrGoalsRequired = errors.New("service: select at least one goal")
	ErrUnknownPlan   = errors.New("service: unknown plan")
	ErrEmptyTitle    = errors.New("service: title must not be empty")
)
