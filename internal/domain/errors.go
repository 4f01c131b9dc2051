package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrInvalidEstimate    = errors.New("estimated hours must be a positive multiple of 0.5")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidInterval    = errors.New("schedule end must not be before start")
	ErrSlotUnavailable    = errors.New("time slot overlaps an existing event")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrInvalidWorkingDay  = errors.New("working day must start before it ends")
	ErrUnsupportedSeedExt = errors.New("unsupported seed file extension")
	ErrConfigExists       = errors.New("config file already exists")
)
