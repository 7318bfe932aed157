package apperror

import (
	"errors"
	"fmt"
)

// CustomError represents a custom error with additional context
type CustomError struct {
	Code    string
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a new custom error
func NewCustomError(code, message string, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether any error in err's chain is a CustomError with code.
func IsCode(err error, code string) bool {
	var ce *CustomError
	for err != nil {
		if !errors.As(err, &ce) {
			return false
		}
		if ce.Code == code {
			return true
		}
		err = ce.Err
	}
	return false
}

// Error codes
const (
	ErrConfigLoad     = "CONFIG_LOAD_ERROR"
	ErrCatalogLoad    = "CATALOG_LOAD_ERROR"
	ErrCatalogInvalid = "CATALOG_INVALID"
	ErrNotFound       = "NOT_FOUND"
	ErrBadRequest     = "BAD_REQUEST"
	ErrIndexBuild     = "INDEX_BUILD_ERROR"
	ErrRender         = "RENDER_ERROR"
	ErrExport         = "EXPORT_ERROR"
)
