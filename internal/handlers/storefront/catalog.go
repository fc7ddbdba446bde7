package storefronthandler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/handlers/response"
	"koistore/internal/models"
	"koistore/pkg/lib/urlparser"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

type Catalog interface {
	ListFish(ctx context.Context, q *odata.Query) (backend.Page[models.KoiFish], error)
	GetFish(ctx context.Context, id int) (models.KoiFish, error)
	ListDiets(ctx context.Context, q *odata.Query) (backend.Page[models.Diet], error)
}

var fishOrderFields = map[string]string{
	"name":  "Name",
	"price": "Price",
	"age":   "Age",
	"size":  "Size",
}

type CatalogHandler struct {
	log     *slog.Logger
	catalog Catalog
}

func NewCatalog(log *slog.Logger, catalog Catalog) *CatalogHandler {
	return &CatalogHandler{
		log:     log,
		catalog: catalog,
	}
}

func pageParams(r *http.Request, q *odata.Query) error {
	page, err := urlparser.QueryInt(r, "page", 1)
	if err != nil {
		return err
	}
	size, err := urlparser.QueryInt(r, "pageSize", defaultPageSize)
	if err != nil {
		return err
	}
	if size < 1 || size > maxPageSize {
		return fmt.Errorf("%w: pageSize must be between 1 and %d", urlparser.ErrBadParam, maxPageSize)
	}
	q.Page(page, size).Count()
	return nil
}

// FishQuery turns the public catalog query parameters into an OData query.
func FishQuery(r *http.Request) (*odata.Query, error) {
	q := odata.New()
	values := r.URL.Query()

	if s := strings.TrimSpace(values.Get("search")); s != "" {
		q.Contains("Name", s)
	}
	if g := values.Get("gender"); g != "" {
		q.Eq("Gender", g)
	}
	breedId, err := urlparser.QueryInt(r, "breedId", 0)
	if err != nil {
		return nil, err
	}
	if breedId > 0 {
		q.Filter(fmt.Sprintf("KoiBreeds/any(b: b/Id eq %d)", breedId))
	}
	minPrice, err := urlparser.QueryInt(r, "minPrice", 0)
	if err != nil {
		return nil, err
	}
	if minPrice > 0 {
		q.Ge("Price", minPrice)
	}
	maxPrice, err := urlparser.QueryInt(r, "maxPrice", 0)
	if err != nil {
		return nil, err
	}
	if maxPrice > 0 {
		q.Le("Price", maxPrice)
	}
	if values.Get("available") != "" {
		available, err := urlparser.QueryBool(r, "available")
		if err != nil {
			return nil, err
		}
		q.Eq("IsAvailable", available)
	}

	if raw := values.Get("orderBy"); raw != "" {
		field, ok := fishOrderFields[strings.ToLower(raw)]
		if !ok {
			return nil, fmt.Errorf("%w: cannot order by %q", urlparser.ErrBadParam, raw)
		}
		desc, err := urlparser.QueryBool(r, "desc")
		if err != nil {
			return nil, err
		}
		q.OrderBy(field, desc)
	}

	if err := pageParams(r, q); err != nil {
		return nil, err
	}
	return q, nil
}

// GET /fish
func (h *CatalogHandler) ListFish(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.ListFish"
	log := h.log.With("op", op)

	q, err := FishQuery(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	page, err := h.catalog.ListFish(r.Context(), q)
	if err != nil {
		response.Error(w, log, err, "Failed to list fish")
		return
	}
	response.OK(w, log, page)
}

// GET /fish/{fishId}
func (h *CatalogHandler) GetFish(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.GetFish"
	log := h.log.With("op", op)

	id, err := urlparser.Int(r, "fishId")
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	fish, err := h.catalog.GetFish(r.Context(), id)
	if err != nil {
		response.Error(w, log, err, "Failed to load fish")
		return
	}
	response.OK(w, log, fish)
}

// GET /diets
func (h *CatalogHandler) ListDiets(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.ListDiets"
	log := h.log.With("op", op)

	q := odata.New().OrderBy("Name", false)
	if s := strings.TrimSpace(r.URL.Query().Get("search")); s != "" {
		q.Contains("Name", s)
	}

	page, err := h.catalog.ListDiets(r.Context(), q)
	if err != nil {
		response.Error(w, log, err, "Failed to list diets")
		return
	}
	response.OK(w, log, page)
}
