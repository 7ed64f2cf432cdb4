package services

import "errors"

// Sentinel errors exposed by the service layer. Controllers map these
// onto response codes; anything else is treated as an internal error.
var (
	ErrVisitorLogNotFound = errors.New("visitor log not found")
	ErrVisitorNotFound    = errors.New("visitor not found")
	ErrFlatNotFound       = errors.New("flat not found")
	ErrResidentNotFound   = errors.New("resident not found")
	ErrSocietyNotFound    = errors.New("society not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrStaffNotFound      = errors.New("staff member not found")

	ErrAlreadyCheckedOut = errors.New("visitor already checked out")
	ErrAlreadyDecided    = errors.New("visitor status already decided")
	ErrStaffInactive     = errors.New("staff member is inactive")

	ErrPassCodeNotFound      = errors.New("invalid or used pass code")
	ErrPassCodeTaken         = errors.New("pass code already in use")
	ErrPassCodeWindow        = errors.New("pass code outside its validity window")
	ErrFrequentVisitorExists = errors.New("frequent visitor pass already exists for this flat")
	ErrCodeExhausted         = errors.New("could not allocate a unique code")

	ErrTokenMalformed     = errors.New("malformed access token")
	ErrUnknownSubjectType = errors.New("unknown access subject type")
)
