package response

const (
	MessageSuccess = "Success"

	DateTimeFormat = "2006-01-02T15:04:05Z07:00"

	ValidationErrorCode      = 1
	UnauthorizedErrorCode    = 401
	NotFoundErrorCode        = 404
	ConflictErrorCode        = 409
	TooManyRequestsErrorCode = 429
	InternalServerErrorCode  = 500

	DefaultErrorMessage    = "Something went wrong"
	UnauthorizedMessage    = "Unauthorized"
	TooManyRequestsMessage = "Too many requests, slow down"
)
