package document_test

import (
	"testing"

	"github.com/ferdiebergado/finderid/internal/document"
)

func TestNormalizeNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"AB1234", "AB1234"},
		{"ab-12 34", "AB1234"},
		{"  n01-23-456789 ", "N0123456789"},
		{"P\t12\n34", "P1234"},
		{"--  --", ""},
		{"ñ-1", "Ñ1"},
	}

	for _, tt := range tests {
		if got := document.NormalizeNumber(tt.in); got != tt.want {
			t.Errorf("NormalizeNumber(%q) = %q, want: %q", tt.in, got, tt.want)
		}
	}
}

func TestKind_Counterpart(t *testing.T) {
	t.Parallel()

	if got := document.KindLost.Counterpart(); got != document.KindFound {
		t.Errorf("KindLost.Counterpart() = %q, want: %q", got, document.KindFound)
	}
	if got := document.KindFound.Counterpart(); got != document.KindLost {
		t.Errorf("KindFound.Counterpart() = %q, want: %q", got, document.KindLost)
	}
}
