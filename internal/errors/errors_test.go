package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestE_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "message only",
			err:  New(ConfigMissing, "missing VITE_SUPABASE_URL"),
			want: "config_missing: missing VITE_SUPABASE_URL",
		},
		{
			name: "with code",
			err:  &E{Kind: NotFound, Message: "relation does not exist", Code: "42P01"},
			want: "not_found: relation does not exist (code 42P01)",
		},
		{
			name: "wrapped",
			err:  Wrap(Transport, "request failed", stderrors.New("dial tcp: refused")),
			want: "transport: request failed: dial tcp: refused",
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

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("select users: %w", New(Unauthorized, "invalid JWT"))

	if got := KindOf(wrapped); got != Unauthorized {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, Unauthorized)
	}
	if got := KindOf(stderrors.New("plain")); got != Unknown {
		t.Errorf("KindOf(plain) = %v, want %v", got, Unknown)
	}
	if Is(nil, Unknown) {
		t.Error("Is(nil, Unknown) = true, want false")
	}
	if !Is(wrapped, Unauthorized) {
		t.Error("Is(wrapped, Unauthorized) = false, want true")
	}
}
