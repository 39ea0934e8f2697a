package middleware

import (
	"errors"
	"strings"

	"studentshub/internal/domain/user"
	"studentshub/internal/pkg/jwt"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		setCaller(c, claims)
		return c.Next()
	}
}

// Optional attaches the caller when a valid token is present and lets
// anonymous requests through otherwise.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := BearerToken(c.Get("Authorization")); ok {
			if claims, err := m.jwt.ValidateAccessToken(token); err == nil {
				setCaller(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireRole must run after Middleware.
func RequireRole(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		caller := Caller(c)
		if caller.UserID == uuid.Nil {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		for _, r := range roles {
			if caller.Role == r {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}

// Caller returns the authenticated principal, or the zero Caller for
// anonymous requests.
func Caller(c fiber.Ctx) usecase.Caller {
	id, _ := c.Locals(CtxUserIDKey).(uuid.UUID)
	role, _ := c.Locals(CtxRoleKey).(user.Role)
	return usecase.Caller{UserID: id, Role: role}
}

func setCaller(c fiber.Ctx, claims jwt.Claims) {
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxEmailKey, claims.Email)
	c.Locals(CtxRoleKey, user.Role(claims.Role))
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
