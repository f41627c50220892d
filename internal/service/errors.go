package service

import "errors"

// Ошибки уровня бизнес-логики. HTTP-слой маппит их в коды ответов.
var (
	ErrNameRequired        = errors.New("name is required")
	ErrBadDuration         = errors.New("duration must be positive")
	ErrBadPrice            = errors.New("price must not be negative")
	ErrUnknownService      = errors.New("unknown service")
	ErrUnknownResource     = errors.New("unknown resource")
	ErrUnknownClient       = errors.New("unknown client")
	ErrUnknownStatus       = errors.New("unknown booking status")
	ErrBadDate             = errors.New("bad date, want YYYY-MM-DD")
	ErrOutsideWorkingHours = errors.New("booking is outside working hours")
	ErrResourceUnavailable = errors.New("resource is not available on that day")
	ErrAlreadyCompleted    = errors.New("booking is already completed")
	ErrCancelledBooking    = errors.New("booking is cancelled")
	ErrClientRequired      = errors.New("client is required")
	ErrServiceRequired     = errors.New("service is required")
	ErrServiceInBundle     = errors.New("service is part of a bundle")
	ErrUnalignedStart      = errors.New("start time is not aligned to the scheduling step")
)
