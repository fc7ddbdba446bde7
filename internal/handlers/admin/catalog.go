package adminhandler

import (
	"context"
	"log/slog"
	"net/http"

	"koistore/internal/backend/odata"
	"koistore/internal/handlers/response"
	"koistore/internal/models"
	"koistore/pkg/lib/urlparser"
)

const certificatePageSize = 20

// Shared record flows. Each handler method below binds one backend call.

func createRecord[T any](h *Handler, w http.ResponseWriter, r *http.Request, op, what string, save func(context.Context, T) (T, error)) {
	log := h.log.With("op", op)

	var rec T
	if err := response.Decode(r, &rec); err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	out, err := save(ctx, rec)
	if err != nil {
		response.Error(w, log, err, "Failed to create "+what)
		return
	}
	log.Info(what + " created")
	response.JSON(w, log, http.StatusCreated, out)
}

// updateRecord takes the id from the path; an id in the body is ignored.
func updateRecord[T any](h *Handler, w http.ResponseWriter, r *http.Request, op, what string, setId func(*T, int), save func(context.Context, T) (T, error)) {
	log := h.log.With("op", op)

	id, err := urlparser.Int(r, "id")
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var rec T
	if err := response.Decode(r, &rec); err != nil {
		response.Error(w, log, err, "")
		return
	}
	setId(&rec, id)

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	out, err := save(ctx, rec)
	if err != nil {
		response.Error(w, log, err, "Failed to update "+what)
		return
	}
	log.Info(what+" updated", slog.Int("id", id))
	response.OK(w, log, out)
}

func deleteRecord(h *Handler, w http.ResponseWriter, r *http.Request, op, what string, del func(context.Context, int) error) {
	log := h.log.With("op", op)

	id, err := urlparser.Int(r, "id")
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	if err := del(ctx, id); err != nil {
		response.Error(w, log, err, "Failed to delete "+what)
		return
	}
	log.Info(what+" deleted", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func getRecord[T any](h *Handler, w http.ResponseWriter, r *http.Request, op, what string, get func(context.Context, int) (T, error)) {
	log := h.log.With("op", op)

	id, err := urlparser.Int(r, "id")
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	out, err := get(ctx, id)
	if err != nil {
		response.Error(w, log, err, "Failed to load "+what)
		return
	}
	response.OK(w, log, out)
}

func listRecords[T any](h *Handler, w http.ResponseWriter, r *http.Request, op, what string, all func(context.Context) ([]T, error)) {
	log := h.log.With("op", op)

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	out, err := all(ctx)
	if err != nil {
		response.Error(w, log, err, "Failed to list "+what)
		return
	}
	if out == nil {
		out = []T{}
	}
	response.OK(w, log, out)
}

// PUT /sessions/{sid}/admin/fish/{id}
func (h *Handler) UpdateFish(w http.ResponseWriter, r *http.Request) {
	updateRecord(h, w, r, "handlers.admin.UpdateFish", "fish",
		func(f *models.KoiFish, id int) { f.Id = id }, h.backend.UpdateFish)
}

// DELETE /sessions/{sid}/admin/fish/{id}
func (h *Handler) DeleteFish(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "handlers.admin.DeleteFish", "fish", h.backend.DeleteFish)
}

func (h *Handler) ListBreeds(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "handlers.admin.ListBreeds", "breeds", h.backend.ListBreeds)
}

func (h *Handler) CreateBreed(w http.ResponseWriter, r *http.Request) {
	createRecord(h, w, r, "handlers.admin.CreateBreed", "breed", h.backend.CreateBreed)
}

func (h *Handler) UpdateBreed(w http.ResponseWriter, r *http.Request) {
	updateRecord(h, w, r, "handlers.admin.UpdateBreed", "breed",
		func(b *models.Breed, id int) { b.Id = id }, h.backend.UpdateBreed)
}

func (h *Handler) DeleteBreed(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "handlers.admin.DeleteBreed", "breed", h.backend.DeleteBreed)
}

func (h *Handler) CreateDiet(w http.ResponseWriter, r *http.Request) {
	createRecord(h, w, r, "handlers.admin.CreateDiet", "diet", h.backend.CreateDiet)
}

func (h *Handler) UpdateDiet(w http.ResponseWriter, r *http.Request) {
	updateRecord(h, w, r, "handlers.admin.UpdateDiet", "diet",
		func(d *models.Diet, id int) { d.Id = id }, h.backend.UpdateDiet)
}

func (h *Handler) DeleteDiet(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "handlers.admin.DeleteDiet", "diet", h.backend.DeleteDiet)
}

// GET /sessions/{sid}/admin/certificates?fishId=&page=
func (h *Handler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.ListCertificates"
	log := h.log.With("op", op)

	page, err := urlparser.QueryInt(r, "page", 1)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}
	fishId, err := urlparser.QueryInt(r, "fishId", 0)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	q := odata.New().Expand("KoiFish").OrderBy("CreatedAt", true).Page(page, certificatePageSize).Count()
	if fishId > 0 {
		q.Eq("KoiFishId", fishId)
	}

	ctx, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	certs, err := h.backend.ListCertificates(ctx, q)
	if err != nil {
		response.Error(w, log, err, "Failed to list certificates")
		return
	}
	response.OK(w, log, certs)
}

func (h *Handler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	createRecord(h, w, r, "handlers.admin.CreateCertificate", "certificate", h.backend.CreateCertificate)
}

func (h *Handler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	updateRecord(h, w, r, "handlers.admin.UpdateCertificate", "certificate",
		func(c *models.Certificate, id int) { c.Id = id }, h.backend.UpdateCertificate)
}

func (h *Handler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "handlers.admin.DeleteCertificate", "certificate", h.backend.DeleteCertificate)
}

func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "handlers.admin.ListFAQs", "faqs", h.backend.ListFAQs)
}

func (h *Handler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	createRecord(h, w, r, "handlers.admin.CreateFAQ", "faq", h.backend.CreateFAQ)
}

func (h *Handler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	updateRecord(h, w, r, "handlers.admin.UpdateFAQ", "faq",
		func(f *models.FAQ, id int) { f.Id = id }, h.backend.UpdateFAQ)
}

func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "handlers.admin.DeleteFAQ", "faq", h.backend.DeleteFAQ)
}

// GET /sessions/{sid}/admin/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "handlers.admin.ListOrders", "orders", h.backend.ListOrders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	getRecord(h, w, r, "handlers.admin.GetOrder", "order", h.backend.GetOrder)
}

func (h *Handler) GetConsignment(w http.ResponseWriter, r *http.Request) {
	getRecord(h, w, r, "handlers.admin.GetConsignment", "consignment", h.backend.GetConsignment)
}
