package promo_test

import (
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/promo"
)

func TestPromo_Status(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		promo promo.Promo
		want  promo.Status
	}{
		{"active without expiry", promo.Promo{Active: true}, promo.StatusActive},
		{"active before expiry", promo.Promo{Active: true, ExpiresAt: &future}, promo.StatusActive},
		{"expires exactly now", promo.Promo{Active: true, ExpiresAt: &now}, promo.StatusExpired},
		{"expired", promo.Promo{Active: true, ExpiresAt: &past}, promo.StatusExpired},
		{"inactive beats expired", promo.Promo{Active: false, ExpiresAt: &past}, promo.StatusInactive},
		{"paid beats inactive", promo.Promo{Paid: true, Active: false}, promo.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.promo.Status(now); got != tt.want {
				t.Errorf("Status() = %q, want: %q", got, tt.want)
			}
		})
	}
}

func TestPromo_Payout(t *testing.T) {
	t.Parallel()

	unpaid := promo.Promo{Uses: 3, Reward: 5000}
	if got := unpaid.Payout(); got != 15000 {
		t.Errorf("Payout() = %d, want: 15000", got)
	}

	paid := promo.Promo{Uses: 3, Reward: 5000, Paid: true}
	if got := paid.Payout(); got != 0 {
		t.Errorf("Payout() of paid code = %d, want: 0", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	if got := promo.NormalizeCode("  summer25 "); got != "SUMMER25" {
		t.Errorf("NormalizeCode() = %q, want: %q", got, "SUMMER25")
	}
}
