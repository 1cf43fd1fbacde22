package utils

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind mengelompokkan error bisnis supaya handler bisa memetakan ke
// HTTP status tanpa membedah pesan.
type Kind string

const (
	KindValidation Kind = "validation" // input tidak lengkap / tidak valid
	KindNotFound   Kind = "not_found"  // entitas yang dirujuk tidak ada
	KindConflict   Kind = "conflict"   // duplikat unique key / hapus data yang masih dipakai
	KindForbidden  Kind = "forbidden"  // akses ke data yang bukan miliknya
	KindStorage    Kind = "storage"    // kegagalan query / transaksi
)

// AppError adalah error bisnis dengan pesan yang aman ditampilkan ke user.
type AppError struct {
	Kind    Kind
	Message string
	Err     error // error teknis di baliknya, boleh nil
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func ForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func StorageError(message string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

// WrapDBError membungkus error dari GORM: record-not-found jadi NotFound,
// sisanya dianggap kegagalan storage.
func WrapDBError(message string, err error) *AppError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError(message)
	}
	return StorageError(message, err)
}

// HTTPStatus memetakan error ke HTTP status code.
// Error non-AppError diperlakukan sebagai internal failure.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
