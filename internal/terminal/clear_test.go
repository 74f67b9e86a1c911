package terminal

import (
	"strings"
	"testing"
)

func TestLinesUsed(t *testing.T) {
	tests := []struct {
		length, width, want int
	}{
		{0, 80, 1},
		{79, 80, 1},
		{80, 80, 1},
		{81, 80, 2},
		{200, 0, 3},
	}
	for _, tt := range tests {
		if got := LinesUsed(tt.length, tt.width); got != tt.want {
			t.Errorf("LinesUsed(%d, %d) = %d, want %d", tt.length, tt.width, got, tt.want)
		}
	}
}

func TestReadSecret_NonTerminal(t *testing.T) {
	got, err := ReadSecret("key: ", strings.NewReader("  abc.def.ghi \nignored\n"))
	if err != nil {
		t.Fatalf("ReadSecret() error = %v", err)
	}
	if got != "abc.def.ghi" {
		t.Errorf("ReadSecret() = %q", got)
	}

	got, err = ReadSecret("key: ", strings.NewReader("no-newline"))
	if err != nil || got != "no-newline" {
		t.Errorf("ReadSecret() = %q, %v", got, err)
	}
}
