package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "scan not found",
			},
			want: "scan not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to persist result",
				Cause:   errors.New("connection reset"),
			},
			want: "failed to persist result: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false, want true", err)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		code    ErrorCode
		message string
	}{
		{name: "NotFound", err: NotFound("scan not found"), code: ErrCodeNotFound, message: "scan not found"},
		{name: "NotFoundf", err: NotFoundf("scan %s not found", "s1"), code: ErrCodeNotFound, message: "scan s1 not found"},
		{name: "Conflict", err: Conflict("a scan is already in progress"), code: ErrCodeConflict, message: "a scan is already in progress"},
		{name: "Conflictf", err: Conflictf("scan %s already running", "s1"), code: ErrCodeConflict, message: "scan s1 already running"},
		{name: "Validation", err: Validation("invalid filter"), code: ErrCodeValidation, message: "invalid filter"},
		{name: "Validationf", err: Validationf("invalid filter %q", "x"), code: ErrCodeValidation, message: `invalid filter "x"`},
		{name: "Internal", err: Internal("database error"), code: ErrCodeInternal, message: "database error"},
		{name: "Internalf", err: Internalf("query %d failed", 2), code: ErrCodeInternal, message: "query 2 failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.Message != tt.message {
				t.Errorf("Message = %v, want %v", tt.err.Message, tt.message)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("scan_time", "scan time must be HH:MM")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "scan_time" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "scan_time")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "wrapped error"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		fn   func(error) bool
		want bool
	}{
		{name: "IsNotFound matches", err: NotFound("x"), fn: IsNotFound, want: true},
		{name: "IsNotFound wrapped", err: fmt.Errorf("outer: %w", NotFound("x")), fn: IsNotFound, want: true},
		{name: "IsNotFound other code", err: Conflict("x"), fn: IsNotFound, want: false},
		{name: "IsConflict matches", err: Conflict("x"), fn: IsConflict, want: true},
		{name: "IsConflict plain error", err: errors.New("x"), fn: IsConflict, want: false},
		{name: "IsValidation matches", err: ValidationField("url", "x"), fn: IsValidation, want: true},
		{name: "IsValidation nil", err: nil, fn: IsValidation, want: false},
		{name: "IsInternal matches", err: Internal("x"), fn: IsInternal, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Conflict("x")); got != ErrCodeConflict {
		t.Errorf("CodeOf(Conflict) = %v, want %v", got, ErrCodeConflict)
	}
	if got := CodeOf(errors.New("x")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain) = %v, want %v", got, ErrCodeInternal)
	}
}
