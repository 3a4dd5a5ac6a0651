package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenRequest is the demo login payload: a username, no password.
// Issued tokens carry the staff role only.
type TokenRequest struct {
	Username string `json:"username"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Handler serves the token issuance endpoint.
type Handler struct {
	cfg TokenConfig
}

func NewHandler(cfg TokenConfig) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/token", h.IssueToken)
}

func (h *Handler) IssueToken(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	token, _, err := IssueToken(h.cfg, req.Username, []string{"staff"})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "token issuance failed")
	}

	return c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresIn: int64(h.cfg.TTL.Seconds()),
	})
}
