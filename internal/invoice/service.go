package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/finderid/internal/loyalty"
	"github.com/ferdiebergado/finderid/internal/notification"
	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/promo"
	"github.com/ferdiebergado/finderid/internal/subscription"
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]Invoice, error)
	ListByStatus(ctx context.Context, status Status) ([]Invoice, error)
	MarkPaid(ctx context.Context, id, paymentRef string) (Invoice, error)
	Cancel(ctx context.Context, id, userID string) (Invoice, error)
}

type Subscriptions interface {
	Price(plan string) (int64, string, error)
	Extend(ctx context.Context, userID, plan string) (*subscription.Subscription, error)
}

type Promos interface {
	Validate(ctx context.Context, userID, code string) (*promo.Promo, error)
	RecordUse(ctx context.Context, userID, code string) error
}

type Awarder interface {
	Award(ctx context.Context, userID, key string) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, params notification.CreateParams) (*notification.Notification, error)
}

type Deps struct {
	TxMgr         db.TxManager
	Subscriptions Subscriptions
	Promos        Promos
	Loyalty       Awarder
	Notifier      Notifier
}

type Service struct {
	repo Repository
	Deps
	now func() time.Time
}

var _ InvoiceService = (*Service)(nil)

func NewService(repo Repository, deps Deps) *Service {
	return &Service{
		repo: repo,
		Deps: deps,
		now:  time.Now,
	}
}

type CreateInvoiceParams struct {
	Plan      string
	PromoCode string
}

func (s *Service) Create(ctx context.Context, userID string, params CreateInvoiceParams) (*Invoice, error) {
	amount, currency, err := s.Subscriptions.Price(params.Plan)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	var code *string
	if params.PromoCode != "" {
		p, err := s.Promos.Validate(ctx, userID, params.PromoCode)
		if err != nil {
			return nil, fmt.Errorf("create invoice: %w", err)
		}
		code = &p.Code
	}

	inv, err := s.repo.Create(ctx, CreateParams{
		Number:    NewNumber(s.now()),
		UserID:    userID,
		Plan:      params.Plan,
		Amount:    amount,
		Currency:  currency,
		PromoCode: code,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	slog.Info("invoice created", "number", inv.Number, "user_id", userID, "plan", inv.Plan, "amount", inv.Amount)
	return &inv, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Invoice, error) {
	invoices, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices of %s: %w", userID, err)
	}
	return invoices, nil
}

func (s *Service) ListPending(ctx context.Context) ([]Invoice, error) {
	invoices, err := s.repo.ListByStatus(ctx, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending invoices: %w", err)
	}
	return invoices, nil
}

func (s *Service) Cancel(ctx context.Context, userID, id string) (*Invoice, error) {
	inv, err := s.repo.Cancel(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("cancel invoice: %w", err)
	}

	slog.Info("invoice cancelled", "number", inv.Number, "user_id", userID)
	return &inv, nil
}

// Confirm settles a pending invoice. The payment, the subscription extension, the promo use
// and the first payment award commit together; the owner is notified after the commit.
func (s *Service) Confirm(ctx context.Context, id, paymentRef string) (*Invoice, error) {
	var (
		inv Invoice
		sub *subscription.Subscription
	)

	err := s.TxMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		inv, err = s.repo.MarkPaid(txCtx, id, paymentRef)
		if err != nil {
			return err
		}

		sub, err = s.Subscriptions.Extend(txCtx, inv.UserID, inv.Plan)
		if err != nil {
			return err
		}

		if inv.PromoCode != nil {
			err := s.Promos.RecordUse(txCtx, inv.UserID, *inv.PromoCode)
			switch {
			case errors.Is(err, promo.ErrUnusable), errors.Is(err, promo.ErrOwnCode), errors.Is(err, promo.ErrNotFound):
				slog.Warn("promo code not credited", "number", inv.Number, "code", *inv.PromoCode, "reason", err)
			case err != nil:
				return err
			}
		}

		if _, err := s.Loyalty.Award(txCtx, inv.UserID, loyalty.TaskFirstPayment); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("confirm invoice %s: %w", id, err)
	}

	slog.Info("invoice paid", "number", inv.Number, "user_id", inv.UserID, "expires_at", sub.ExpiresAt)

	_, err = s.Notifier.Notify(ctx, notification.CreateParams{
		UserID: inv.UserID,
		Type:   notification.TypeInvoicePaid,
		Title:  "Payment received",
		Body: fmt.Sprintf("Invoice %s is paid. Your %s plan is active until %s.",
			inv.Number, inv.Plan, sub.ExpiresAt.Format(time.DateOnly)),
		Link: "/invoices",
	})
	if err != nil {
		slog.Error("invoice notification failed", "number", inv.Number, "reason", err)
	}

	return &inv, nil
}
