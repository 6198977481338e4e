package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
	"github.com/chronicle-app/chronicle-api/pkg/response"
)

type tokenIssuer interface {
	IssueToken(req dto.TokenRequest) (*dto.TokenResponse, error)
}

// AuthHandler exposes the token exchange endpoint.
type AuthHandler struct {
	service tokenIssuer
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc tokenIssuer) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Token godoc
// @Summary Exchange the access key for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.TokenRequest true "Token payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid token payload"))
		return
	}
	token, err := h.service.IssueToken(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token, nil)
}
