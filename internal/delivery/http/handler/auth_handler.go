package handler

import (
	"strings"

	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/domain/user"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"
	ucauth "studentshub/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Bad request", err)
	}

	usr, tokens, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      user.Role(strings.ToLower(strings.TrimSpace(req.Role))),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Created(c, dto.AuthResponse{
		User:         dto.NewUserResponse(usr),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Bad request", err)
	}

	usr, tokens, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:         dto.NewUserResponse(usr),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Refresh takes the refresh token from the body, falling back to the
// Authorization header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest("Bad request", err)
		}
	}
	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get("Authorization"))
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}
