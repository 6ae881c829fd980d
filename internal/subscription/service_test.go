package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/notification"
	timex "github.com/ferdiebergado/finderid/internal/pkg/time"
	"github.com/ferdiebergado/finderid/internal/subscription"
	"github.com/google/go-cmp/cmp"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Subscription {
	return &config.Subscription{
		Currency:       "PHP",
		ExpiringWindow: timex.Duration{Duration: 7 * 24 * time.Hour},
		Plans: map[string]config.Plan{
			"basic":    {Price: 19900, Duration: timex.Duration{Duration: 30 * 24 * time.Hour}},
			"pro":      {Price: 49900, Duration: timex.Duration{Duration: 90 * 24 * time.Hour}},
			"business": {Price: 149900, Duration: timex.Duration{Duration: 365 * 24 * time.Hour}},
		},
	}
}

func newService(repo subscription.Repository, n subscription.Notifier) *subscription.Service {
	svc := subscription.NewService(repo, testConfig(), n)
	svc.SetClock(func() time.Time { return now })
	return svc
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	repo := &subscription.StubRepo{
		FindFunc: func(_ context.Context, userID string) (*subscription.Subscription, error) {
			if userID == "u1" {
				return &subscription.Subscription{UserID: "u1", Plan: "pro", ExpiresAt: now.Add(36 * time.Hour)}, nil
			}
			return nil, subscription.ErrNotFound
		},
	}
	svc := newService(repo, &notification.RecordingNotifier{})

	view, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Status != subscription.StatusExpiring || view.DaysRemaining != 2 {
		t.Errorf("Get() = %q/%d, want: expiring/2", view.Status, view.DaysRemaining)
	}

	view, err = svc.Get(context.Background(), "u2")
	if err != nil {
		t.Fatal(err)
	}
	if view.Status != subscription.StatusNone || view.Subscription != nil {
		t.Errorf("Get() without row = %+v, want: status none", view)
	}
}

func TestService_Extend(t *testing.T) {
	t.Parallel()

	started := now.Add(-20 * 24 * time.Hour)

	tests := []struct {
		name        string
		current     *subscription.Subscription
		wantStarted time.Time
		wantExpires time.Time
	}{
		{
			name:        "new subscription starts now",
			wantStarted: now,
			wantExpires: now.Add(30 * 24 * time.Hour),
		},
		{
			name:        "active subscription stacks on expiry",
			current:     &subscription.Subscription{UserID: "u1", StartedAt: started, ExpiresAt: now.Add(10 * 24 * time.Hour)},
			wantStarted: started,
			wantExpires: now.Add(40 * 24 * time.Hour),
		},
		{
			name:        "expired subscription restarts now",
			current:     &subscription.Subscription{UserID: "u1", StartedAt: started, ExpiresAt: now.Add(-24 * time.Hour)},
			wantStarted: now,
			wantExpires: now.Add(30 * 24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var saved subscription.Subscription
			repo := &subscription.StubRepo{
				FindForUpdateFunc: func(context.Context, string) (*subscription.Subscription, error) {
					if tt.current == nil {
						return nil, subscription.ErrNotFound
					}
					return tt.current, nil
				},
				SaveFunc: func(_ context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
					saved = sub
					return sub, nil
				},
			}
			svc := newService(repo, &notification.RecordingNotifier{})

			if _, err := svc.Extend(context.Background(), "u1", "basic"); err != nil {
				t.Fatal(err)
			}

			want := subscription.Subscription{UserID: "u1", Plan: "basic", StartedAt: tt.wantStarted, ExpiresAt: tt.wantExpires}
			if diff := cmp.Diff(want, saved); diff != "" {
				t.Errorf("saved subscription mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_ExtendUnknownPlan(t *testing.T) {
	t.Parallel()

	svc := newService(&subscription.StubRepo{}, &notification.RecordingNotifier{})
	if _, err := svc.Extend(context.Background(), "u1", "platinum"); !errors.Is(err, subscription.ErrUnknownPlan) {
		t.Errorf("Extend() error = %v, want: %v", err, subscription.ErrUnknownPlan)
	}
}

func TestService_Sweep(t *testing.T) {
	t.Parallel()

	var marked []string
	repo := &subscription.StubRepo{
		ListExpiredUnnotifiedFunc: func(_ context.Context, at time.Time) ([]subscription.Subscription, error) {
			if !at.Equal(now) {
				t.Errorf("ListExpiredUnnotified() at = %v, want: %v", at, now)
			}
			return []subscription.Subscription{
				{UserID: "u1", Plan: "basic", ExpiresAt: now.Add(-time.Hour)},
				{UserID: "u2", Plan: "pro", ExpiresAt: now.Add(-48 * time.Hour)},
			}, nil
		},
		MarkNotifiedFunc: func(_ context.Context, userID string, _ time.Time) error {
			marked = append(marked, userID)
			return nil
		},
	}
	notifier := &notification.RecordingNotifier{}
	svc := newService(repo, notifier)

	count, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if count != 2 {
		t.Errorf("Sweep() = %d, want: 2", count)
	}
	if diff := cmp.Diff([]string{"u1", "u2"}, marked); diff != "" {
		t.Errorf("marked mismatch (-want +got):\n%s", diff)
	}

	for _, sent := range notifier.Sent() {
		if sent.Type != notification.TypeSubscriptionExpired {
			t.Errorf("notification type = %q, want: %q", sent.Type, notification.TypeSubscriptionExpired)
		}
	}
}

func TestService_SweepNotifyFailureLeavesUnmarked(t *testing.T) {
	t.Parallel()

	marked := 0
	repo := &subscription.StubRepo{
		ListExpiredUnnotifiedFunc: func(context.Context, time.Time) ([]subscription.Subscription, error) {
			return []subscription.Subscription{{UserID: "u1", ExpiresAt: now}}, nil
		},
		MarkNotifiedFunc: func(context.Context, string, time.Time) error {
			marked++
			return nil
		},
	}
	svc := newService(repo, &notification.RecordingNotifier{Err: errors.New("insert failed")})

	count, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 || marked != 0 {
		t.Errorf("Sweep() = %d with %d marked, want: 0 and 0", count, marked)
	}
}

func TestService_Plans(t *testing.T) {
	t.Parallel()

	svc := newService(&subscription.StubRepo{}, &notification.RecordingNotifier{})

	var names []string
	for _, p := range svc.Plans() {
		names = append(names, p.Name)
	}

	if diff := cmp.Diff([]string{"basic", "pro", "business"}, names); diff != "" {
		t.Errorf("Plans() order mismatch (-want +got):\n%s", diff)
	}
}
