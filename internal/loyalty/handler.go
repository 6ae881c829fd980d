package loyalty

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

type LoyaltyService interface {
	Tasks(ctx context.Context, userID string) ([]TaskState, error)
	Complete(ctx context.Context, userID, taskID string) (*Task, error)
	Balance(ctx context.Context, userID string) (int, error)
	CreateTask(ctx context.Context, params CreateTaskParams) (*Task, error)
	DeactivateTask(ctx context.Context, id string) (*Task, error)
}

type Handler struct {
	svc LoyaltyService
}

func NewHandler(svc LoyaltyService) *Handler {
	return &Handler{svc: svc}
}

type TaskData struct {
	ID          string     `json:"id"`
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Points      int        `json:"points"`
	Active      bool       `json:"active"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type TasksResponse struct {
	Tasks   []TaskData `json:"tasks"`
	Balance int        `json:"balance"`
}

type BalanceResponse struct {
	Balance int `json:"balance"`
}

type CreateTaskRequest struct {
	Key    string `json:"key,omitempty" validate:"required,max=50"`
	Title  string `json:"title,omitempty" validate:"required,max=120"`
	Points int    `json:"points,omitempty" validate:"required,gt=0,lte=10000"`
}

func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	tasks, err := h.svc.Tasks(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	balance, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]TaskData, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, TaskData{
			ID:          t.ID,
			Key:         t.Key,
			Title:       t.Title,
			Points:      t.Points,
			Active:      t.Active,
			Completed:   t.Completed,
			CompletedAt: t.CompletedAt,
		})
	}

	web.RespondOK(w, nil, &TasksResponse{Tasks: data, Balance: balance})
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	task, err := h.svc.Complete(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	balance, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := fmt.Sprintf("Task completed. You earned %d points.", task.Points)
	web.RespondOK(w, &msg, &BalanceResponse{Balance: balance})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	balance, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, &BalanceResponse{Balance: balance})
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[CreateTaskRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	task, err := h.svc.CreateTask(r.Context(), CreateTaskParams{Key: req.Key, Title: req.Title, Points: req.Points})
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Task created."
	web.RespondCreated(w, &msg, &TaskData{ID: task.ID, Key: task.Key, Title: task.Title, Points: task.Points, Active: task.Active})
}

func (h *Handler) DeactivateTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.DeactivateTask(r.Context(), r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	web.RespondOK(w, nil, &TaskData{ID: task.ID, Key: task.Key, Title: task.Title, Points: task.Points, Active: task.Active})
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		web.RespondNotFound(w, err, "Task not found.", nil)
	case errors.Is(err, ErrAlreadyCompleted):
		web.RespondConflict(w, err, "You already completed this task.", nil)
	case errors.Is(err, ErrDuplicateTask):
		web.RespondConflict(w, err, "A task with this key already exists.", map[string]string{"key": "already exists"})
	case errors.Is(err, ErrSystemTask):
		web.RespondForbidden(w, err, "This task is awarded automatically.", nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
