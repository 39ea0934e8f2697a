package response

import "github.com/gofiber/fiber/v3"

// Envelope is the body of every JSON response, success or failure.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageCreated             = "created"
	MessageInternalServerError = "internal server error"
)

var statusText = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusCreated:             MessageCreated,
	fiber.StatusBadRequest:          "bad request",
	fiber.StatusUnauthorized:        "unauthorized",
	fiber.StatusForbidden:           "forbidden",
	fiber.StatusNotFound:            "not found",
	fiber.StatusConflict:            "conflict",
	fiber.StatusUnprocessableEntity: "unprocessable entity",
	fiber.StatusTooManyRequests:     "too many requests",
	fiber.StatusServiceUnavailable:  "service unavailable",
}

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func Created(c fiber.Ctx, data interface{}) error {
	return write(c, fiber.StatusCreated, MessageCreated, data)
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data interface{}) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = Text(status)
	}
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}

// Text returns the default envelope message for status.
func Text(status int) string {
	if msg, ok := statusText[status]; ok {
		return msg
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	return "error"
}
