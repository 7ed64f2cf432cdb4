package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: malformed request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: missing or invalid credentials.
	StatusUnauthorized = 401
	// StatusForbidden - 403: insufficient role.
	StatusForbidden = 403
	// StatusNotFound - 404: resource absent.
	StatusNotFound = 404
	// StatusConflict - 409: state conflict.
	StatusConflict = 409
	// StatusInternalServerError - 500: server error.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: rate limited.
	StatusTooManyRequests = 429
)

// Common error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding failed.
	ErrBind
	// ErrValidation - 400: request validation failed.
	ErrValidation
	// ErrTokenInvalid - 401: invalid auth token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limit exceeded.
	ErrTooManyRequests
	// ErrForbidden - 403: role lacks access to this operation.
	ErrForbidden
)

// Visitor error codes (101xxx).
const (
	// ErrVisitorLogNotFound - 404: visitor log absent.
	ErrVisitorLogNotFound int = iota + 101000
	// ErrAlreadyCheckedOut - 409: out-time already set.
	ErrAlreadyCheckedOut
	// ErrAlreadyDecided - 409: log status no longer pending.
	ErrAlreadyDecided
)

// Grant error codes (102xxx).
const (
	// ErrPassCodeNotFound - 404: no unused pre-approval for this code.
	ErrPassCodeNotFound int = iota + 102000
	// ErrPassCodeWindow - 400: pass code outside its validity window.
	ErrPassCodeWindow
	// ErrFrequentVisitorExists - 409: (visitor, flat) pass already exists.
	ErrFrequentVisitorExists
	// ErrCodeExhausted - 500: could not allocate a free code.
	ErrCodeExhausted
)

// Catalog error codes (103xxx).
const (
	// ErrFlatNotFound - 404: flat absent.
	ErrFlatNotFound int = iota + 103000
	// ErrResidentNotFound - 404: resident absent.
	ErrResidentNotFound
	// ErrSocietyNotFound - 404: society absent.
	ErrSocietyNotFound
	// ErrUserNotFound - 404: user absent.
	ErrUserNotFound
	// ErrVisitorNotFound - 404: visitor absent.
	ErrVisitorNotFound
)

// Staff error codes (104xxx).
const (
	// ErrStaffNotFound - 404: domestic help absent.
	ErrStaffNotFound int = iota + 104000
	// ErrStaffInactive - 409: staff member deactivated.
	ErrStaffInactive
	// ErrPassCodeTaken - 409: supplied passcode already assigned.
	ErrPassCodeTaken
)

// Access error codes (105xxx).
const (
	// ErrTokenMalformed - 400: scanned token has an unknown shape.
	ErrTokenMalformed int = iota + 105000
	// ErrUnknownSubjectType - 400: token subject type not RESIDENT or HELP.
	ErrUnknownSubjectType
)

// Database error codes (106xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: record absent.
	ErrRecordNotFound
)
