package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

const maskChar = "*"

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (user.User, error)
	Verify(ctx context.Context, userID string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, params LoginParams) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	SendPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID, newPassword string) error
}

type Handler struct {
	svc   AuthService
	cfg   *config.Config
	baker security.Baker
}

func NewHandler(svc AuthService, provider *Provider) *Handler {
	return &Handler{
		svc:   svc,
		cfg:   provider.Cfg,
		baker: provider.Baker,
	}
}

type RegisterRequest struct {
	Email           string `json:"email,omitempty" validate:"required,email"`
	DisplayName     string `json:"display_name,omitempty" validate:"required,max=80"`
	Password        string `json:"password,omitempty" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (r RegisterRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("display_name", r.DisplayName),
		slog.String("password", maskChar),
		slog.String("password_confirm", maskChar),
	)
}

type RegisterResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := RegisterParams{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	}
	u, err := h.svc.Register(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			web.RespondConflict(w, err, MsgUserExists, nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgRegisterSuccess
	web.RespondCreated(w, &msg, &RegisterResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, MsgInvalidLinkToken, nil)
		return
	}

	if err := h.svc.Verify(r.Context(), userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			web.RespondNotFound(w, err, MsgInvalidLinkToken, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgVerifySuccess
	web.RespondOK[struct{}](w, &msg, nil)
}

type EmailRequest struct {
	Email string `json:"email,omitempty" validate:"required,email"`
}

func (r EmailRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar))
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[EmailRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		if errors.Is(err, ErrAlreadyVerified) {
			web.RespondConflict(w, err, MsgAlreadyVerified, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgReVerifySuccess
	web.RespondOK[struct{}](w, &msg, nil)
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (r LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type TokenResponse struct {
	AccessToken string `json:"access_token,omitempty"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	session, err := h.svc.Login(r.Context(), LoginParams(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		case errors.Is(err, ErrUserNotVerified):
			web.RespondForbidden(w, err, MsgNotVerified, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	refreshCookie := security.SessionCookie(h.cfg.Cookie.Name, session.RefreshToken, h.cfg.Cookie.MaxAge.Duration)
	http.SetCookie(w, refreshCookie)

	csrfCookie, err := h.baker.Bake()
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}
	http.SetCookie(w, csrfCookie)
	w.Header().Set(h.cfg.CSRF.HeaderName, csrfCookie.Value)

	msg := MsgLoggedIn
	web.RespondOK(w, &msg, &TokenResponse{AccessToken: session.AccessToken})
}

// Refresh issues a new access token from the refresh cookie. CSRFGuard runs before it.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie(h.cfg.Cookie.Name)
	if err != nil || refreshCookie.Value == "" {
		web.RespondUnauthorized(w, ErrInvalidToken, message.InvalidUser, nil)
		return
	}

	accessToken, err := h.svc.Refresh(r.Context(), refreshCookie.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUserNotFound) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgRefreshed
	web.RespondOK(w, &msg, &TokenResponse{AccessToken: accessToken})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(h.cfg.Cookie.Name); err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	http.SetCookie(w, security.ExpiredCookie(h.cfg.Cookie.Name))

	csrfCookie, err := h.baker.Bake()
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}
	http.SetCookie(w, csrfCookie)

	msg := MsgLoggedOut
	web.RespondOK[struct{}](w, &msg, nil)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[EmailRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.SendPasswordReset(r.Context(), req.Email); err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.ResetSent
	web.RespondOK[struct{}](w, &msg, nil)
}

type ResetPasswordRequest struct {
	NewPassword    string `json:"new_password,omitempty" validate:"required,min=8"`
	RepeatPassword string `json:"repeat_password,omitempty" validate:"required,eqfield=NewPassword"`
}

func (r ResetPasswordRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("new_password", maskChar),
		slog.String("repeat_password", maskChar),
	)
}

// ResetPassword changes the password of the user named by the reset link token.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, MsgInvalidLinkToken, nil)
		return
	}

	req, err := web.ParamsFromContext[ResetPasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), userID, req.NewPassword); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			web.RespondNotFound(w, err, MsgInvalidLinkToken, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.ResetSuccess
	web.RespondOK[struct{}](w, &msg, nil)
}
