package utils

import "errors"

var (
	ErrInvalidPlaceCount    = errors.New("course requires between 3 and 6 places")
	ErrDuplicatePlaceID     = errors.New("duplicate place id in request")
	ErrUnknownTransportMode = errors.New("unknown transport mode")
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrInvalidStartTime     = errors.New("invalid start time, expected HH:MM")
	ErrCourseGeneration     = errors.New("course generation failed")

	ErrPlaceNotFound  = errors.New("place not found")
	ErrCourseNotFound = errors.New("course not found")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAnalyzeFailed = errors.New("link analysis failed")

	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
)
