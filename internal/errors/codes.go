package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong admin password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // session expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed/forged token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // bad request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // bad identifier
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Categories (CATEGORY_) ====================
	CategoryNotFound   = "CATEGORY_NOT_FOUND"
	CategoryNameExists = "CATEGORY_NAME_EXISTS" // duplicate category name
	CategoryInUse      = "CATEGORY_IN_USE"      // referenced by UMKM rows

	// ==================== UMKM (UMKM_) ====================
	UmkmNotFound   = "UMKM_NOT_FOUND"
	UmkmSlugExists = "UMKM_SLUG_EXISTS" // name slugifies to a taken slug

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidPayload = "UPLOAD_INVALID_PAYLOAD" // not a data URI
	UploadFailed         = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	DatabaseUnavailable = "DATABASE_UNAVAILABLE"
)
