package subscription_test

import (
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/subscription"
)

func TestComputeStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour

	tests := []struct {
		name string
		sub  *subscription.Subscription
		want subscription.Status
	}{
		{"no subscription", nil, subscription.StatusNone},
		{"expires exactly now", &subscription.Subscription{ExpiresAt: now}, subscription.StatusExpired},
		{"expired yesterday", &subscription.Subscription{ExpiresAt: now.Add(-24 * time.Hour)}, subscription.StatusExpired},
		{"one hour left", &subscription.Subscription{ExpiresAt: now.Add(time.Hour)}, subscription.StatusExpiring},
		{"just inside window", &subscription.Subscription{ExpiresAt: now.Add(window - time.Second)}, subscription.StatusExpiring},
		{"exactly at window", &subscription.Subscription{ExpiresAt: now.Add(window)}, subscription.StatusActive},
		{"a month left", &subscription.Subscription{ExpiresAt: now.Add(30 * 24 * time.Hour)}, subscription.StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := subscription.ComputeStatus(tt.sub, now, window); got != tt.want {
				t.Errorf("ComputeStatus() = %q, want: %q", got, tt.want)
			}
		})
	}
}

func TestComputeStatus_DefaultWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &subscription.Subscription{ExpiresAt: now.Add(6 * 24 * time.Hour)}

	if got := subscription.ComputeStatus(sub, now, 0); got != subscription.StatusExpiring {
		t.Errorf("ComputeStatus() = %q, want: %q", got, subscription.StatusExpiring)
	}
}

func TestDaysRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		want    int
	}{
		{"past", now.Add(-48 * time.Hour), 0},
		{"now", now, 0},
		{"one minute", now.Add(time.Minute), 1},
		{"exactly one day", now.Add(24 * time.Hour), 1},
		{"a day and a second", now.Add(24*time.Hour + time.Second), 2},
		{"thirty days", now.Add(30 * 24 * time.Hour), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := subscription.DaysRemaining(tt.expires, now); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want: %d", got, tt.want)
			}
		})
	}
}
