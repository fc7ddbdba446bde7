package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"koistore/internal/backend/odata"
	"koistore/internal/models"
)

func (c *Client) ListFish(ctx context.Context, q *odata.Query) (Page[models.KoiFish], error) {
	const op = "backend.ListFish"
	return query[models.KoiFish](ctx, c, op, "KoiFish", q)
}

func (c *Client) GetFish(ctx context.Context, id int) (models.KoiFish, error) {
	const op = "backend.GetFish"
	return call[models.KoiFish](ctx, c, op, http.MethodGet, "KoiFish/"+strconv.Itoa(id), nil)
}

func (c *Client) CreateFish(ctx context.Context, fish models.KoiFish) (models.KoiFish, error) {
	const op = "backend.CreateFish"
	return call[models.KoiFish](ctx, c, op, http.MethodPost, "KoiFish", fish)
}

func (c *Client) UpdateFish(ctx context.Context, fish models.KoiFish) (models.KoiFish, error) {
	const op = "backend.UpdateFish"
	return call[models.KoiFish](ctx, c, op, http.MethodPut, "KoiFish/"+strconv.Itoa(fish.Id), fish)
}

func (c *Client) DeleteFish(ctx context.Context, id int) error {
	const op = "backend.DeleteFish"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodDelete, "KoiFish/"+strconv.Itoa(id), nil)
	return err
}

func (c *Client) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	const op = "backend.ListBreeds"
	return call[[]models.Breed](ctx, c, op, http.MethodGet, "koi-breeds", nil)
}

func (c *Client) CreateBreed(ctx context.Context, b models.Breed) (models.Breed, error) {
	const op = "backend.CreateBreed"
	return call[models.Breed](ctx, c, op, http.MethodPost, "koi-breeds", b)
}

func (c *Client) UpdateBreed(ctx context.Context, b models.Breed) (models.Breed, error) {
	const op = "backend.UpdateBreed"
	return call[models.Breed](ctx, c, op, http.MethodPut, "koi-breeds/"+strconv.Itoa(b.Id), b)
}

func (c *Client) DeleteBreed(ctx context.Context, id int) error {
	const op = "backend.DeleteBreed"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodDelete, "koi-breeds/"+strconv.Itoa(id), nil)
	return err
}

// dietRow is the PascalCase shape of odata/diets.
type dietRow struct {
	Id          int    `json:"Id"`
	Name        string `json:"Name"`
	DietCost    int64  `json:"DietCost"`
	Description string `json:"Description"`
}

func (r dietRow) toModel() models.Diet {
	return models.Diet{Id: r.Id, Name: r.Name, DietCost: r.DietCost, Description: r.Description}
}

func (c *Client) ListDiets(ctx context.Context, q *odata.Query) (Page[models.Diet], error) {
	const op = "backend.ListDiets"
	page, err := query[dietRow](ctx, c, op, "odata/diets", q)
	if err != nil {
		return Page[models.Diet]{}, err
	}
	return mapPage(page, dietRow.toModel), nil
}

func (c *Client) CreateDiet(ctx context.Context, d models.Diet) (models.Diet, error) {
	const op = "backend.CreateDiet"
	return call[models.Diet](ctx, c, op, http.MethodPost, "diets", d)
}

func (c *Client) UpdateDiet(ctx context.Context, d models.Diet) (models.Diet, error) {
	const op = "backend.UpdateDiet"
	return call[models.Diet](ctx, c, op, http.MethodPut, "diets/"+strconv.Itoa(d.Id), d)
}

func (c *Client) DeleteDiet(ctx context.Context, id int) error {
	const op = "backend.DeleteDiet"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodDelete, "diets/"+strconv.Itoa(id), nil)
	return err
}

// certificateRow is the PascalCase shape of odata/koi-certificates with the
// fish expanded.
type certificateRow struct {
	Id              int              `json:"Id"`
	KoiFishId       int              `json:"KoiFishId"`
	CertificateType string           `json:"CertificateType"`
	URL             string           `json:"CertificateUrl"`
	CreatedAt       models.Timestamp `json:"CreatedAt"`
	KoiFish         *fishNameRow     `json:"KoiFish"`
}

type fishNameRow struct {
	Name string `json:"Name"`
}

type CertificateView struct {
	models.Certificate
	FishName string `json:"fishName,omitempty"`
}

func (r certificateRow) toModel() CertificateView {
	v := CertificateView{Certificate: models.Certificate{
		Id:              r.Id,
		KoiFishId:       r.KoiFishId,
		CertificateType: r.CertificateType,
		URL:             r.URL,
		CreatedAt:       r.CreatedAt,
	}}
	if r.KoiFish != nil {
		v.FishName = r.KoiFish.Name
	}
	return v
}

func (c *Client) ListCertificates(ctx context.Context, q *odata.Query) (Page[CertificateView], error) {
	const op = "backend.ListCertificates"
	page, err := query[certificateRow](ctx, c, op, "odata/koi-certificates", q)
	if err != nil {
		return Page[CertificateView]{}, err
	}
	return mapPage(page, certificateRow.toModel), nil
}

func (c *Client) CreateCertificate(ctx context.Context, cert models.Certificate) (models.Certificate, error) {
	const op = "backend.CreateCertificate"
	return call[models.Certificate](ctx, c, op, http.MethodPost, "koi-certificates", cert)
}

func (c *Client) UpdateCertificate(ctx context.Context, cert models.Certificate) (models.Certificate, error) {
	const op = "backend.UpdateCertificate"
	return call[models.Certificate](ctx, c, op, http.MethodPut, "koi-certificates/"+strconv.Itoa(cert.Id), cert)
}

func (c *Client) DeleteCertificate(ctx context.Context, id int) error {
	const op = "backend.DeleteCertificate"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodDelete, "koi-certificates/"+strconv.Itoa(id), nil)
	return err
}

func (c *Client) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	const op = "backend.ListFAQs"
	return call[[]models.FAQ](ctx, c, op, http.MethodGet, "faqs", nil)
}

func (c *Client) CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	const op = "backend.CreateFAQ"
	return call[models.FAQ](ctx, c, op, http.MethodPost, "faqs", f)
}

func (c *Client) UpdateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	const op = "backend.UpdateFAQ"
	return call[models.FAQ](ctx, c, op, http.MethodPut, "faqs/"+strconv.Itoa(f.Id), f)
}

func (c *Client) DeleteFAQ(ctx context.Context, id int) error {
	const op = "backend.DeleteFAQ"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodDelete, "faqs/"+strconv.Itoa(id), nil)
	return err
}
