package taxerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "code and message",
			err:  New(BuildFailed, "no rows parsed", nil),
			want: "[BUILD_FAILED] no rows parsed",
		},
		{
			name: "with cause",
			err:  Storage("writing region file", errors.New("disk full")),
			want: "[STORAGE_FAILED] writing region file: disk full",
		},
		{
			name: "with field",
			err:  Validation("corporateTaxRate", "must be numeric"),
			want: `[VALIDATION_FAILED] must be numeric (field "corporateTaxRate")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Parse("bad JSON", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Auth("token mismatch")); got != AuthFailed {
		t.Errorf("CodeOf = %q, want %q", got, AuthFailed)
	}

	// Wrapped taxatlas errors still report their code
	wrapped := fmt.Errorf("saving: %w", Storage("write failed", nil))
	if got := CodeOf(wrapped); got != StorageFailed {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, StorageFailed)
	}

	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestIs(t *testing.T) {
	err := Validation("country", "required")
	if !Is(err, ValidationFailed) {
		t.Error("Is(err, ValidationFailed) should be true")
	}
	if Is(err, StorageFailed) {
		t.Error("Is(err, StorageFailed) should be false")
	}
}
