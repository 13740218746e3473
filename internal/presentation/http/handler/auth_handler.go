package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-ticket-api/internal/application/service"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/dto/request"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/dto/response"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/middleware"
	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login. Both JSON and OAuth2 password form bodies are accepted.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/jwt/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"access_token": output.AccessToken,
		"token_type":   output.TokenType,
	})
}

// Register handles user registration
// @Summary Register
// @Tags user
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration successful", user)
}

// GetDetails returns the authenticated user
// @Summary Current user
// @Tags user
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /user/details [get]
func (h *AuthHandler) GetDetails(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if apperror.HasCode(err, apperror.ErrInvalidToken.Code) {
			response.Unauthorized(c, apperror.ErrInvalidToken.Message)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved", user)
}
