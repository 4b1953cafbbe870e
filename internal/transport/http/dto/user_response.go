package dto

import (
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// UserView is the standard user payload. The password hash never
// appears here by construction.
type UserView struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserViews(users []domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, ToUserView(u))
	}
	return views
}

// LoginResponse carries the access token only; the refresh token lives
// in the HttpOnly cookie and is never returned in JSON.
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"` // "Bearer"
	ExpiresIn   int64    `json:"expiresIn"` // seconds
	User        UserView `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type LogoutResponse struct {
	Status string `json:"status"` // "ok"
}
