package code

// Error code to message mapping
var codeMessageMap = map[int]string{
	ErrSuccess:         "Success",
	ErrUnknown:         "Unknown error",
	ErrBind:            "Request binding failed",
	ErrValidation:      "Request validation failed",
	ErrTokenInvalid:    "Invalid authentication token",
	ErrTooManyRequests: "Too many requests",
	ErrForbidden:       "Insufficient permissions",

	ErrVisitorLogNotFound: "Visitor log not found",
	ErrAlreadyCheckedOut:  "Visitor already checked out",
	ErrAlreadyDecided:     "Visitor request is already processed",

	ErrPassCodeNotFound:      "Invalid or used pass code",
	ErrPassCodeWindow:        "Pass code is expired or not yet active",
	ErrFrequentVisitorExists: "Frequent visitor pass already exists for this flat",
	ErrCodeExhausted:         "Could not allocate an access code",

	ErrFlatNotFound:     "Flat not found",
	ErrResidentNotFound: "Resident not found",
	ErrSocietyNotFound:  "Society not found",
	ErrUserNotFound:     "User not found",
	ErrVisitorNotFound:  "Visitor not found",

	ErrStaffNotFound: "Staff not found",
	ErrStaffInactive: "Staff member is inactive",
	ErrPassCodeTaken: "Pass code already in use",

	ErrTokenMalformed:     "Invalid QR code",
	ErrUnknownSubjectType: "Unknown subject type",

	ErrDatabase:       "Database error",
	ErrRecordNotFound: "Record not found",
}

// Error code to HTTP status mapping
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,

	ErrVisitorLogNotFound: StatusNotFound,
	ErrAlreadyCheckedOut:  StatusConflict,
	ErrAlreadyDecided:     StatusConflict,

	ErrPassCodeNotFound:      StatusNotFound,
	ErrPassCodeWindow:        StatusBadRequest,
	ErrFrequentVisitorExists: StatusConflict,
	ErrCodeExhausted:         StatusInternalServerError,

	ErrFlatNotFound:     StatusNotFound,
	ErrResidentNotFound: StatusNotFound,
	ErrSocietyNotFound:  StatusNotFound,
	ErrUserNotFound:     StatusNotFound,
	ErrVisitorNotFound:  StatusNotFound,

	ErrStaffNotFound: StatusNotFound,
	ErrStaffInactive: StatusConflict,
	ErrPassCodeTaken: StatusConflict,

	ErrTokenMalformed:     StatusBadRequest,
	ErrUnknownSubjectType: StatusBadRequest,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
