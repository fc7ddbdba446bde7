package models

import "encoding/json"

type User struct {
	Id          int    `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type AuthTokens struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type WalletTransaction struct {
	Id          int       `json:"id"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
}

type Wallet struct {
	Id           int                 `json:"id"`
	UserId       int                 `json:"userId"`
	Balance      int64               `json:"balance"`
	Transactions []WalletTransaction `json:"transactions,omitempty"`
}

type WithdrawnRequest struct {
	Id          int              `json:"id"`
	UserId      int              `json:"userId"`
	Amount      int64            `json:"amount"`
	BankName    string           `json:"bankName"`
	BankAccount string           `json:"bankAccount"`
	Status      WithdrawalStatus `json:"status"`
	CreatedAt   Timestamp        `json:"createdAt"`
	Reviewable  bool             `json:"reviewable"`
}

func (w *WithdrawnRequest) UnmarshalJSON(b []byte) error {
	type plain WithdrawnRequest
	if err := json.Unmarshal(b, (*plain)(w)); err != nil {
		return err
	}
	w.Reviewable = w.Status.IsPending()
	return nil
}
