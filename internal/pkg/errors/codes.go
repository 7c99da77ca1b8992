package errors

import "net/http"

// Ошибки валидации
var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"Validation failed",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidIdentityNumber = New(
		"INVALID_IDENTITY_NUMBER",
		"Identity number must be exactly 17 characters",
		http.StatusBadRequest,
	)

	ErrInvalidRating = New(
		"INVALID_RATING",
		"Rating must be an integer between 1 and 5",
		http.StatusBadRequest,
	)

	ErrUnknownStructureType = New(
		"UNKNOWN_STRUCTURE_TYPE",
		"Unknown type of structure",
		http.StatusBadRequest,
	)

	ErrInvalidSequence = New(
		"INVALID_SEQUENCE",
		"Structure sequence must be between 1 and 99999",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrMissingOwner = New(
		"MISSING_OWNER",
		"X-User-ID header is required",
		http.StatusUnauthorized,
	)
)

// Ошибки поиска
var (
	ErrStructureNotFound = New(
		"STRUCTURE_NOT_FOUND",
		"Structure not found",
		http.StatusNotFound,
	)

	ErrFloorNotFound = New(
		"FLOOR_NOT_FOUND",
		"Floor not found",
		http.StatusNotFound,
	)

	ErrFlatNotFound = New(
		"FLAT_NOT_FOUND",
		"Flat not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Structure belongs to another account",
		http.StatusForbidden,
	)
)

// Ошибки бизнес-правил
var (
	ErrDuplicateIdentity = New(
		"DUPLICATE_IDENTITY",
		"Identity number is already assigned to another structure",
		http.StatusConflict,
	)

	ErrIncompleteStructure = New(
		"INCOMPLETE_STRUCTURE",
		"Structure is not complete and cannot be submitted",
		http.StatusUnprocessableEntity,
	)

	ErrIdentityAlreadyAssigned = New(
		"IDENTITY_ALREADY_ASSIGNED",
		"Identity number is permanent once assigned",
		http.StatusConflict,
	)
)

// Инфраструктурные ошибки
var (
	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
