package models

type BreedRef struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type KoiFish struct {
	Id          int        `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Price       int64      `json:"price" validate:"gt=0"`
	Images      []string   `json:"images,omitempty"`
	Breeds      []BreedRef `json:"breeds,omitempty"`
	Size        float64    `json:"size,omitempty"`
	Age         int        `json:"age,omitempty"`
	Origin      string     `json:"origin,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Description string     `json:"description,omitempty"`
	IsAvailable bool       `json:"isAvailable"`
}

type Breed struct {
	Id          int    `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Diet is reference data priced per day of consignment.
type Diet struct {
	Id          int    `json:"id"`
	Name        string `json:"name" validate:"required"`
	DietCost    int64  `json:"dietCost" validate:"gte=0"`
	Description string `json:"description,omitempty"`
}

type Certificate struct {
	Id              int       `json:"id"`
	KoiFishId       int       `json:"koiFishId" validate:"required"`
	CertificateType string    `json:"certificateType" validate:"required"`
	URL             string    `json:"url" validate:"required,url"`
	CreatedAt       Timestamp `json:"createdAt"`
}

type FAQ struct {
	Id       int    `json:"id"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}
