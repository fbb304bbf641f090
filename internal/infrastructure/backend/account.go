package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// AccountBackend calls the backend's authentication and profile endpoints.
// Credentials pass through to /token/ and are never retained.
type AccountBackend struct {
	client *Client
}

func NewAccountBackend(client *Client) *AccountBackend {
	return &AccountBackend{client: client}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access string `json:"access"`
}

func (b *AccountBackend) ObtainToken(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	err := b.client.do(ctx, http.MethodPost, "/token/", "token", "",
		tokenRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrBackendUnavailable)
	}
	return resp.Access, nil
}

type registerRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Password2      string `json:"password2"`
	FirstName      string `json:"nombre"`
	LastName       string `json:"apellidos"`
	RUT            string `json:"rut"`
	Phone          string `json:"numero_personal"`
	EmergencyPhone string `json:"numero_emergencia"`
}

func (b *AccountBackend) Register(ctx context.Context, input ports.RegisterInput) error {
	req := registerRequest{
		Username:       input.Username,
		Email:          input.Email,
		Password:       input.Password,
		Password2:      input.Password,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		RUT:            input.RUT,
		Phone:          input.Phone,
		EmergencyPhone: input.EmergencyPhone,
	}
	return b.client.do(ctx, http.MethodPost, "/register/", "register", "", req, nil)
}

func (b *AccountBackend) Profile(ctx context.Context, token string) (domain.Profile, error) {
	var profile domain.Profile
	err := b.client.do(ctx, http.MethodGet, "/profile/", "profile", token, nil, &profile)
	return profile, err
}

type updateProfileRequest struct {
	Email          string `json:"email,omitempty"`
	FirstName      string `json:"nombre,omitempty"`
	LastName       string `json:"apellidos,omitempty"`
	Phone          string `json:"numero_personal,omitempty"`
	EmergencyPhone string `json:"numero_emergencia,omitempty"`
}

func (b *AccountBackend) UpdateProfile(ctx context.Context, token string, input ports.UpdateProfileInput) (domain.Profile, error) {
	req := updateProfileRequest{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Phone:          input.Phone,
		EmergencyPhone: input.EmergencyPhone,
	}
	var profile domain.Profile
	err := b.client.do(ctx, http.MethodPut, "/profile/", "profile", token, req, &profile)
	return profile, err
}
