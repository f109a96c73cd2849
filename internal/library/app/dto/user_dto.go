package dto

import (
	"time"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
)

// UserRequest тело регистрации и полной замены читателя.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PatchUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r PatchUserRequest) ToPatch() entities.UserPatch {
	return entities.UserPatch{Name: r.Name, Email: r.Email, Password: r.Password}
}

// User публичный профиль читателя, без хеша пароля.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *entities.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func FromUsers(users []*entities.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// LoginRequest принимает JSON {email,password} или форму OAuth2 username/password.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login возвращает email из email либо username.
func (r LoginRequest) Login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

const TokenTypeBearer = "bearer"

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func FromAccessToken(t *api.AccessToken) TokenResponse {
	return TokenResponse{AccessToken: t.Token, TokenType: TokenTypeBearer, ExpiresAt: t.ExpiresAt}
}
