package adminhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/handlers/response"
	"koistore/internal/models"
	"koistore/pkg/lib/urlparser"

	"github.com/go-chi/chi/v5"
)

const maxImageBytes = 5 << 20

type Backoffice interface {
	OrderDetailAction(ctx context.Context, id int, action backend.OrderDetailAction, staffId int) (models.OrderDetail, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (models.Order, error)
	GetConsignment(ctx context.Context, id int) (models.Consignment, error)
	ApproveWithdrawal(ctx context.Context, id int) error
	RejectWithdrawal(ctx context.Context, id int) error

	CreateFish(ctx context.Context, fish models.KoiFish) (models.KoiFish, error)
	UpdateFish(ctx context.Context, fish models.KoiFish) (models.KoiFish, error)
	DeleteFish(ctx context.Context, id int) error

	ListBreeds(ctx context.Context) ([]models.Breed, error)
	CreateBreed(ctx context.Context, b models.Breed) (models.Breed, error)
	UpdateBreed(ctx context.Context, b models.Breed) (models.Breed, error)
	DeleteBreed(ctx context.Context, id int) error

	CreateDiet(ctx context.Context, d models.Diet) (models.Diet, error)
	UpdateDiet(ctx context.Context, d models.Diet) (models.Diet, error)
	DeleteDiet(ctx context.Context, id int) error

	ListCertificates(ctx context.Context, q *odata.Query) (backend.Page[backend.CertificateView], error)
	CreateCertificate(ctx context.Context, cert models.Certificate) (models.Certificate, error)
	UpdateCertificate(ctx context.Context, cert models.Certificate) (models.Certificate, error)
	DeleteCertificate(ctx context.Context, id int) error

	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error)
	UpdateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error)
	DeleteFAQ(ctx context.Context, id int) error
}

type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, sessionId string) (context.Context, error)
}

type AssignRequest struct {
	StaffId int `json:"staffId" validate:"required,gt=0"`
}

type Uploaded struct {
	URL string `json:"url"`
}

type Handler struct {
	log      *slog.Logger
	backend  Backoffice
	uploader Uploader
	auth     Authorizer
}

func New(log *slog.Logger, backend Backoffice, uploader Uploader, auth Authorizer) *Handler {
	return &Handler{
		log:      log,
		backend:  backend,
		uploader: uploader,
		auth:     auth,
	}
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, log *slog.Logger) (context.Context, bool) {
	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return nil, false
	}
	ctx, err := h.auth.Authorize(r.Context(), sid)
	if err != nil {
		response.Error(w, log, err, "Failed to authorize")
		return nil, false
	}
	return ctx, true
}

// POST /sessions/{sid}/admin/order-details/{id}/{action}
func (h *Handler) OrderDetailAction(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.OrderDetailAction"
	log := h.log.With("op", op)

	id, err := urlparser.Int(r, "id")
	if err != nil {
		response.Error(w, log, err, "")
		return
	}
	action, err := backend.ParseOrderDetailAction(chi.URLParam(r, "action"))
	if err != nil {
		response.Error(w, log, fmt.Errorf("%w: %v", urlparser.ErrBadParam, err), "")
		return
	}

	var staffId int
	if action == backend.ActionAssign {
		var req AssignRequest
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, log, err, "")
			return
		}
		staffId = req.StaffId
	}

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	detail, err := h.backend.OrderDetailAction(ctx, id, action, staffId)
	if err != nil {
		response.Error(w, log, err, "Failed to update order detail")
		return
	}
	log.Info("order detail updated", slog.Int("id", id), slog.String("action", string(action)))
	response.OK(w, log, detail)
}

// POST /sessions/{sid}/admin/withdrawals/{id}/{decision}
func (h *Handler) DecideWithdrawal(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.DecideWithdrawal"
	log := h.log.With("op", op)

	id, err := urlparser.Int(r, "id")
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var decide func(context.Context, int) error
	switch chi.URLParam(r, "decision") {
	case "approve":
		decide = h.backend.ApproveWithdrawal
	case "reject":
		decide = h.backend.RejectWithdrawal
	default:
		response.Error(w, log, fmt.Errorf("%w: decision must be approve or reject", urlparser.ErrBadParam), "")
		return
	}

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	if err := decide(ctx, id); err != nil {
		response.Error(w, log, err, "Failed to decide withdrawal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadFormImage uploads the multipart file under field, if present.
func (h *Handler) uploadFormImage(ctx context.Context, r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", response.ErrBadRequest, err)
	}
	defer file.Close()

	return h.uploader.Upload(ctx, header.Filename, file)
}

// POST /sessions/{sid}/admin/uploads
//
// The image host is billed to the server's key, so only signed-in staff
// may upload.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.Upload"
	log := h.log.With("op", op)

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, log, fmt.Errorf("%w: %v", response.ErrBadRequest, err), "")
		return
	}

	url, err := h.uploadFormImage(ctx, r, "image")
	if err != nil {
		response.Error(w, log, err, "Failed to upload image")
		return
	}
	if url == "" {
		response.Error(w, log, fmt.Errorf("%w: image is required", response.ErrBadRequest), "")
		return
	}
	response.JSON(w, log, http.StatusCreated, Uploaded{URL: url})
}

// POST /sessions/{sid}/admin/fish
//
// Multipart form: "fish" holds the JSON record and "image" an optional
// picture, uploaded first so the record is created with its URL.
func (h *Handler) CreateFish(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.CreateFish"
	log := h.log.With("op", op)

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, log, fmt.Errorf("%w: %v", response.ErrBadRequest, err), "")
		return
	}

	var fish models.KoiFish
	if err := json.Unmarshal([]byte(r.FormValue("fish")), &fish); err != nil {
		response.Error(w, log, fmt.Errorf("%w: fish must be a JSON record", response.ErrBadRequest), "")
		return
	}
	if err := response.Validate(&fish); err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	url, err := h.uploadFormImage(ctx, r, "image")
	if err != nil {
		response.Error(w, log, err, "Failed to upload image")
		return
	}
	if url != "" {
		fish.Images = append(fish.Images, url)
	}

	created, err := h.backend.CreateFish(ctx, fish)
	if err != nil {
		response.Error(w, log, err, "Failed to create fish")
		return
	}
	response.JSON(w, log, http.StatusCreated, created)
}
