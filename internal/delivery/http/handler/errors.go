package handler

import (
	"errors"
	"strconv"
	"strings"

	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/domain"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError turns classified usecase errors into HTTP errors. The
// detail after the sentinel is shown for client-side mistakes only.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var dup *usecase.DuplicateApplicationError
	switch {
	case errors.As(err, &dup):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job",
			map[string]any{"application_id": dup.ApplicationID}, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, detail(err, usecase.ErrInvalidInput), nil, err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, detail(err, usecase.ErrForbidden), nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, detail(err, usecase.ErrNotFound), nil, err)
	case errors.Is(err, usecase.ErrJobUnavailable):
		return middleware.NewAppError(fiber.StatusBadRequest, detail(err, usecase.ErrJobUnavailable), nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusBadRequest, detail(err, usecase.ErrInvalidTransition), nil, err)
	case errors.Is(err, usecase.ErrRateLimited):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Too many requests, slow down", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// detail keeps the reason that directly follows the sentinel.
func detail(err, sentinel error) string {
	msg := sentinel.Error()
	if rest, ok := strings.CutPrefix(err.Error(), msg+": "); ok && rest != "" {
		msg += ": " + rest
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func badRequest(message string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, message, nil, cause)
}

func paramUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, badRequest("Invalid "+name, err)
	}
	return id, nil
}

func pageFromQuery(c fiber.Ctx) domain.Page {
	return domain.Page{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}.Normalize()
}

func queryInt(c fiber.Ctx, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return n
}

func queryBool(c fiber.Ctx, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return b
}
