// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Ошибка всегда возвращается
// как {"status":"Error","message":"..."}.
package response

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// ErrorResponse описывает тело ответа с ошибкой.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status  string `json:"status" example:"Error"`
	Message string `json:"message" example:"Invalid credentials"`
}

// MessageResponse ответ, содержащий только сообщение.
type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: msg,
	}
}

// NewValidator создает validator с дополнительным правилом maxbytes=N,
// которое ограничивает длину строки в байтах, а не в символах.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	errsMsgs := make([]string, 0, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "required_without":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is required when %s is empty", err.Field(), err.Param()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		case "maxbytes":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s bytes", err.Field(), err.Param()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
