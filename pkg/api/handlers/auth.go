package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Clay-Ferguson/quanta-docs/internal/logger"
	"github.com/Clay-Ferguson/quanta-docs/pkg/api/auth"
	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
)

// AuthHandler issues bearer tokens against the configured user list.
type AuthHandler struct {
	users      []config.UserConfig
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users []config.UserConfig, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
	}
}

// TokenRequest is the request body for POST /auth/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token handles POST /auth/token. Validates credentials against the
// configured users and returns a signed access token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		BadRequest(w, "username and password are required")
		return
	}

	var user *config.UserConfig
	for i := range h.users {
		if h.users[i].Username == req.Username {
			user = &h.users[i]
			break
		}
	}
	if user == nil {
		// Burn a bcrypt round so missing users cost the same as bad passwords.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000000000000000000000000000000000"), []byte(req.Password))
		Unauthorized(w, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.WarnCtx(r.Context(), "failed login attempt", logger.KeyUsername, req.Username)
		Unauthorized(w, "invalid username or password")
		return
	}

	token, err := h.jwtService.GenerateToken(user.Username, user.OwnerID)
	if err != nil {
		InternalServerError(w, "failed to generate token")
		return
	}

	WriteJSONOK(w, token)
}
