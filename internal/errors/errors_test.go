package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/minimalpairs/internal/errors"
)

func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
		msg    string
	}{
		{"not found", errors.NewNotFoundError("item", "k1"), errors.ErrCodeNotFound, http.StatusNotFound, "NOT_FOUND: item not found: k1"},
		{"validation", errors.NewValidationError("slot", "must be A or B"), errors.ErrCodeValidation, http.StatusBadRequest, "VALIDATION_ERROR: validation failed for slot: must be A or B"},
		{"bad request", errors.NewBadRequestError("invalid JSON body"), errors.ErrCodeBadRequest, http.StatusBadRequest, "BAD_REQUEST: invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestInternalError_Unwraps(t *testing.T) {
	cause := stderrors.New("disk full")

	err := errors.NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("toggle: %w", errors.NewValidationError("category", "unknown"))
	assert.Equal(t, errors.ErrCodeValidation, errors.AsAppError(wrapped).Code)

	plain := errors.AsAppError(stderrors.New("boom"))
	assert.Equal(t, errors.ErrCodeInternal, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}
