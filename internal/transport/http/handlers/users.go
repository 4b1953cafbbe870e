package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ultimatetechie/ecommerce-api/internal/application/accounts"
	"github.com/ultimatetechie/ecommerce-api/internal/domain"
	"github.com/ultimatetechie/ecommerce-api/internal/infrastructure/security"
	"github.com/ultimatetechie/ecommerce-api/internal/logger"
	"github.com/ultimatetechie/ecommerce-api/internal/metrics"
	"github.com/ultimatetechie/ecommerce-api/internal/transport/http/dto"
	"github.com/ultimatetechie/ecommerce-api/internal/transport/http/response"
)

// UserHandler serves the /api/user surface: account CRUD plus the
// login/refresh/logout session endpoints.
type UserHandler struct {
	svc           *accounts.Service
	secureCookies bool
}

func NewUserHandler(svc *accounts.Service, secureCookies bool) *UserHandler {
	return &UserHandler{svc: svc, secureCookies: secureCookies}
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.SignUp(r.Context(), accounts.SignUpInput{
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordSignup()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("user signed up")

	response.Created(w, dto.ToUserView(u))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, "invalid_credentials") {
			metrics.RecordLoginFailed()
		}
		response.WriteError(w, r, err)
		return
	}

	security.SetRefreshCookie(w, res.Tokens.RefreshToken, h.svc.RefreshCookieTTL(), h.secureCookies)

	metrics.RecordLogin()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user logged in")

	response.OK(w, dto.LoginResponse{
		AccessToken: res.Tokens.AccessToken,
		TokenType:   res.Tokens.TokenType,
		ExpiresIn:   res.Tokens.ExpiresIn,
		User:        dto.ToUserView(res.User),
	})
}

// Refresh mints a new access token from the cookie session. The cookie
// itself is left untouched; the stored refresh token does not rotate.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.svc.Refresh(r.Context(), security.ReadRefreshCookie(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordTokenRefresh()

	response.OK(w, dto.RefreshResponse{
		AccessToken: tokens.AccessToken,
		TokenType:   tokens.TokenType,
		ExpiresIn:   tokens.ExpiresIn,
	})
}

// Logout revokes the stored session and clears the cookie. It succeeds
// even when the cookie is absent or stale.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), security.ReadRefreshCookie(r)); err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.ClearRefreshCookie(w, h.secureCookies)
	response.OK(w, dto.LogoutResponse{Status: "ok"})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToUserViews(users))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToUserView(u))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), chi.URLParam(r, "id"), req.Firstname, req.Lastname)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToUserView(u))
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdatePassword(r.Context(), chi.URLParam(r, "id"), req.Password, req.ConfirmPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("password updated")

	response.OK(w, dto.ToUserView(u))
}

// Deactivate soft-deletes the account and echoes back the record with
// active flipped off.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Deactivate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("user deactivated")

	response.OK(w, dto.ToUserView(u))
}
