package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database-level errors into a code plus a message the
// admin UI can show. Sensitive driver detail stays out of the response; the
// raw error still goes to the log at the call site.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Terjadi kesalahan pada server",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL errors carry SQLSTATE codes through lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return duplicateKeyInfo(string(pqErr.Constraint) + " " + pqErr.Detail)
		case "23503": // foreign_key_violation
			return foreignKeyInfo(pqErr.Message, context)
		case "23502": // not_null_violation
			return ErrorInfo{Code: ValidationRequired, Message: "Ada kolom wajib yang belum diisi"}
		}
	}

	errStr := strings.ToLower(err.Error())

	// SQLite (tests) and any driver that only exposes message text
	if strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint") {
		return duplicateKeyInfo(errStr)
	}
	if strings.Contains(errStr, "foreign key constraint") {
		return foreignKeyInfo(errStr, context)
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "database is closed") {
		return ErrorInfo{
			Code:    DatabaseUnavailable,
			Message: "Database tidak tersedia. Silakan coba lagi nanti",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func duplicateKeyInfo(detail string) ErrorInfo {
	detail = strings.ToLower(detail)

	if strings.Contains(detail, "slug") {
		return ErrorInfo{
			Code:    UmkmSlugExists,
			Message: "UMKM dengan nama tersebut sudah ada",
		}
	}
	if strings.Contains(detail, "name") {
		return ErrorInfo{
			Code:    CategoryNameExists,
			Message: "Kategori dengan nama tersebut sudah ada",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Data sudah ada",
	}
}

func foreignKeyInfo(detail, context string) ErrorInfo {
	detail = strings.ToLower(detail)

	if strings.Contains(detail, "still referenced") || strings.Contains(context, "category") {
		return ErrorInfo{
			Code:    CategoryInUse,
			Message: "Kategori masih digunakan dan tidak dapat dihapus",
		}
	}
	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Data yang dirujuk tidak ditemukan",
	}
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "umkm"):
		return "UMKM tidak ditemukan"
	case strings.Contains(context, "category"):
		return "Kategori tidak ditemukan"
	default:
		return "Data tidak ditemukan"
	}
}

func defaultErrorMessage(context string) string {
	switch {
	case strings.Contains(context, "create"):
		return "Gagal menyimpan data. Silakan coba lagi"
	case strings.Contains(context, "update"):
		return "Gagal memperbarui data. Silakan coba lagi"
	case strings.Contains(context, "delete"):
		return "Gagal menghapus data. Silakan coba lagi"
	default:
		return "Terjadi kesalahan pada server. Silakan coba lagi"
	}
}
