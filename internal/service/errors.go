package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain errors. Every one of them is a recoverable, caller-visible condition.
var (
	ErrDuplicateDocument  = errors.New("document already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyOpen        = errors.New("a drawer session is already open")
	ErrNotOpen            = errors.New("drawer session is not open")
	ErrNotFound           = errors.New("not found")
	ErrNoOpenSession      = errors.New("no open drawer session")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidInput       = errors.New("invalid input")
)

// ErrStorage marks persistence failures. It is never returned for a domain
// condition; callers can tell "the store is down" from "the request is wrong".
var ErrStorage = errors.New("storage failure")

// AlreadyOpenError reports the session that blocked an Open call.
type AlreadyOpenError struct {
	SessionID uint
}

func (e *AlreadyOpenError) Error() string {
	return fmt.Sprintf("a drawer session is already open (id %d); close it first", e.SessionID)
}

func (e *AlreadyOpenError) Is(target error) bool { return target == ErrAlreadyOpen }

// InsufficientStockError names the product that could not cover a pick.
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (id %d): requested %d, available %d",
		e.Name, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// StorageError wraps an error returned by the database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// notFoundOr maps gorm.ErrRecordNotFound to notFound and anything else to a
// StorageError.
func notFoundOr(op string, err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storageErr(op, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// isClassified reports whether err is already a domain or storage error.
func isClassified(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return true
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var domainErrors = []error{
	ErrDuplicateDocument,
	ErrInvalidCredentials,
	ErrAlreadyOpen,
	ErrNotOpen,
	ErrNotFound,
	ErrNoOpenSession,
	ErrEmptyCart,
	ErrProductNotFound,
	ErrInsufficientStock,
	ErrInvalidInput,
}

// resultLabel names an outcome for metrics labels.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAlreadyOpen):
		return "already_open"
	case errors.Is(err, ErrNotOpen):
		return "not_open"
	case errors.Is(err, ErrNoOpenSession):
		return "no_open_session"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStorage):
		return "storage"
	default:
		return "error"
	}
}
