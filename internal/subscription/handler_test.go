package subscription_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/subscription"
	"github.com/ferdiebergado/finderid/internal/user"
	"github.com/google/go-cmp/cmp"
)

func TestHandler_Mine(t *testing.T) {
	t.Parallel()

	expires := now.Add(10 * 24 * time.Hour)
	svc := &subscription.StubService{
		GetFunc: func(_ context.Context, userID string) (*subscription.View, error) {
			return &subscription.View{
				Subscription:  &subscription.Subscription{UserID: userID, Plan: "pro", StartedAt: now, ExpiresAt: expires},
				Status:        subscription.StatusActive,
				DaysRemaining: 10,
			}, nil
		},
	}
	h := subscription.NewHandler(svc)

	ctx := user.NewContextWithUser(context.Background(), "u1")
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/subscription", http.NoBody)
	rec := httptest.NewRecorder()
	h.Mine(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("rec.Code = %d, want: %d", rec.Code, http.StatusOK)
	}

	var res web.OKResponse[*subscription.StatusResponse]
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}

	want := &subscription.StatusResponse{
		Plan:          "pro",
		Status:        subscription.StatusActive,
		StartedAt:     &now,
		ExpiresAt:     &expires,
		DaysRemaining: 10,
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_MineUnauthenticated(t *testing.T) {
	t.Parallel()

	h := subscription.NewHandler(&subscription.StubService{})
	req := httptest.NewRequest(http.MethodGet, "/subscription", http.NoBody)
	rec := httptest.NewRecorder()
	h.Mine(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("rec.Code = %d, want: %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandler_Plans(t *testing.T) {
	t.Parallel()

	svc := &subscription.StubService{
		PlansFunc: func() []subscription.PlanInfo {
			return []subscription.PlanInfo{{Name: "basic", Price: 19900, Currency: "PHP", Duration: 30 * 24 * time.Hour}}
		},
	}
	h := subscription.NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/plans", http.NoBody)
	rec := httptest.NewRecorder()
	h.Plans(rec, req)

	var res web.OKResponse[*subscription.PlansResponse]
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}

	want := &subscription.PlansResponse{Plans: []subscription.PlanData{{Name: "basic", Price: 19900, Currency: "PHP", Days: 30}}}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}
}
