package document

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type DocumentService interface {
	Report(ctx context.Context, params CreateParams) (*Document, error)
	Mine(ctx context.Context, reporterID string) ([]Document, error)
	Search(ctx context.Context, number, docType string, limit int) ([]Document, error)
	Pending(ctx context.Context) ([]Document, error)
	Approve(ctx context.Context, id string) (*Document, error)
	Reject(ctx context.Context, id string) (*Document, error)
	MarkReturned(ctx context.Context, reporterID, id string) (*Document, error)
}

type Handler struct {
	svc DocumentService
}

func NewHandler(svc DocumentService) *Handler {
	return &Handler{svc: svc}
}

type ReportRequest struct {
	Kind        Kind   `json:"kind,omitempty" validate:"required,oneof=lost found"`
	DocType     string `json:"doc_type,omitempty" validate:"required,max=50"`
	DocNumber   string `json:"doc_number,omitempty" validate:"required,max=64"`
	HolderName  string `json:"holder_name,omitempty" validate:"max=120"`
	Location    string `json:"location,omitempty" validate:"max=200"`
	Contact     string `json:"contact,omitempty" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

type DocumentData struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	DocType     string     `json:"doc_type"`
	DocNumber   string     `json:"doc_number"`
	HolderName  string     `json:"holder_name,omitempty"`
	Location    string     `json:"location,omitempty"`
	Contact     string     `json:"contact,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toData(d *Document) DocumentData {
	return DocumentData{
		ID:          d.ID,
		Kind:        d.Kind,
		DocType:     d.DocType,
		DocNumber:   d.DocNumber,
		HolderName:  d.HolderName,
		Location:    d.Location,
		Contact:     d.Contact,
		Description: d.Description,
		Status:      d.Status,
		ReviewedAt:  d.ReviewedAt,
		CreatedAt:   d.CreatedAt,
	}
}

type ListResponse struct {
	Documents []DocumentData `json:"documents"`
}

func respondList(w http.ResponseWriter, docs []Document) {
	data := make([]DocumentData, 0, len(docs))
	for _, d := range docs {
		data = append(data, toData(&d))
	}
	web.RespondOK(w, nil, &ListResponse{Documents: data})
}

func respondOne(w http.ResponseWriter, msg string, d *Document) {
	data := toData(d)
	web.RespondOK(w, &msg, &data)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[ReportRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if NormalizeNumber(req.DocNumber) == "" {
		web.RespondUnprocessableEntity(w, nil, message.InvalidInput, map[string]string{"doc_number": "doc_number must contain letters or digits"})
		return
	}

	d, err := h.svc.Report(r.Context(), CreateParams{
		ReporterID:  userID,
		Kind:        req.Kind,
		DocType:     req.DocType,
		DocNumber:   req.DocNumber,
		HolderName:  req.HolderName,
		Location:    req.Location,
		Contact:     req.Contact,
		Description: req.Description,
	})
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Report submitted for review."
	data := toData(d)
	web.RespondCreated(w, &msg, &data)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	docs, err := h.svc.Mine(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	respondList(w, docs)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	number := q.Get("number")
	if number == "" {
		web.RespondBadRequest(w, nil, message.InvalidInput, map[string]string{"number": "number is required"})
		return
	}

	docs, err := h.svc.Search(r.Context(), number, q.Get("type"), web.QueryInt(r, "limit", defaultSearchLimit, maxSearchLimit))
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	respondList(w, docs)
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Pending(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	respondList(w, docs)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	respondOne(w, "Report approved.", d)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	respondOne(w, "Report rejected.", d)
}

func (h *Handler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	d, err := h.svc.MarkReturned(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	respondOne(w, "Marked as returned.", d)
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.RespondNotFound(w, err, "Report not found.", nil)
	case errors.Is(err, ErrForbidden):
		web.RespondForbidden(w, err, message.Forbidden, nil)
	case errors.Is(err, ErrInvalidStatus):
		web.RespondConflict(w, err, "The report cannot be changed in its current state.", nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
