package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestCustomErrorMessage(t *testing.T) {
	inner := errors.New("boom")
	err := NewCustomError(ErrExport, "write page", inner)

	if got := err.Error(); got != "[EXPORT_ERROR] write page: boom" {
		t.Errorf("Unexpected message: %s", got)
	}
	if !errors.Is(err, inner) {
		t.Errorf("Expected wrapped error to be reachable with errors.Is")
	}

	bare := NewCustomError(ErrNotFound, "stock not found", nil)
	if got := bare.Error(); got != "[NOT_FOUND] stock not found" {
		t.Errorf("Unexpected message: %s", got)
	}
}

func TestIsCode(t *testing.T) {
	nested := NewCustomError(ErrCatalogLoad, "load", NewCustomError(ErrCatalogInvalid, "bad slug", nil))
	wrapped := fmt.Errorf("startup: %w", nested)

	if !IsCode(wrapped, ErrCatalogLoad) {
		t.Errorf("Expected outer code to match")
	}
	if !IsCode(wrapped, ErrCatalogInvalid) {
		t.Errorf("Expected nested code to match")
	}
	if IsCode(wrapped, ErrNotFound) {
		t.Errorf("Did not expect NOT_FOUND to match")
	}
	if IsCode(errors.New("plain"), ErrNotFound) {
		t.Errorf("Plain errors carry no code")
	}
}
