package campaign

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

type CampaignService interface {
	Create(ctx context.Context, params CreateParams) (*Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	Runs(ctx context.Context, limit int) ([]Run, error)
	Send(ctx context.Context, id string) (*Run, error)
	SendBulk(ctx context.Context, params BulkParams) (*Run, error)
}

type Handler struct {
	svc CampaignService
}

func NewHandler(svc CampaignService) *Handler {
	return &Handler{svc: svc}
}

type CreateRequest struct {
	Subject  string   `json:"subject,omitempty" validate:"required,max=200"`
	HTML     string   `json:"html,omitempty" validate:"required"`
	Audience Audience `json:"audience,omitempty" validate:"required,oneof=all card_owners"`
}

type BulkRequest struct {
	Subject    string   `json:"subject,omitempty" validate:"required,max=200"`
	HTML       string   `json:"html,omitempty" validate:"required"`
	Recipients []string `json:"recipients,omitempty" validate:"required,min=1,dive,email"`
}

type CampaignData struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Audience  Audience  `json:"audience"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type ListResponse struct {
	Campaigns []CampaignData `json:"campaigns"`
}

type RunData struct {
	ID           string    `json:"id"`
	CampaignID   *string   `json:"campaign_id,omitempty"`
	Subject      string    `json:"subject"`
	Recipients   int       `json:"recipients"`
	Chunks       int       `json:"chunks"`
	FailedChunks int       `json:"failed_chunks"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}

type RunsResponse struct {
	Runs []RunData `json:"runs"`
}

func toData(c *Campaign) CampaignData {
	return CampaignData{
		ID:        c.ID,
		Subject:   c.Subject,
		Audience:  c.Audience,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

func toRunData(run *Run) RunData {
	return RunData{
		ID:           run.ID,
		CampaignID:   run.CampaignID,
		Subject:      run.Subject,
		Recipients:   run.Recipients,
		Chunks:       run.Chunks,
		FailedChunks: run.FailedChunks,
		StartedAt:    run.StartedAt,
		CompletedAt:  run.CompletedAt,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	c, err := h.svc.Create(r.Context(), CreateParams{
		Subject:   req.Subject,
		HTML:      req.HTML,
		Audience:  req.Audience,
		CreatedBy: userID,
	})
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Campaign created."
	data := toData(c)
	web.RespondCreated(w, &msg, &data)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.List(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]CampaignData, 0, len(campaigns))
	for _, c := range campaigns {
		data = append(data, toData(&c))
	}
	web.RespondOK(w, nil, &ListResponse{Campaigns: data})
}

func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	runs, err := h.svc.Runs(r.Context(), web.QueryInt(r, "limit", 20, 100))
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]RunData, 0, len(runs))
	for _, run := range runs {
		data = append(data, toRunData(&run))
	}
	web.RespondOK(w, nil, &RunsResponse{Runs: data})
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.Send(r.Context(), r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Campaign sent."
	data := toRunData(run)
	web.RespondOK(w, &msg, &data)
}

func (h *Handler) SendBulk(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[BulkRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	run, err := h.svc.SendBulk(r.Context(), BulkParams{
		Subject:    req.Subject,
		HTML:       req.HTML,
		Recipients: req.Recipients,
	})
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Bulk email sent."
	data := toRunData(run)
	web.RespondOK(w, &msg, &data)
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.RespondNotFound(w, err, "Campaign not found.", nil)
	case errors.Is(err, ErrUnknownAudience):
		web.RespondUnprocessableEntity(w, err, "Unknown campaign audience.", map[string]string{"audience": "must be all or card_owners"})
	case errors.Is(err, ErrNoRecipients):
		web.RespondUnprocessableEntity(w, err, "There are no recipients for this campaign.", nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
