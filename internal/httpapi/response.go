package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/cart-service/internal/result"
)

type successResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

type validationResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func statusFromCode(code string) int {
	switch code {
	case result.CodeNotFound:
		return http.StatusNotFound
	case result.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, successResponse{Message: message, Data: data})
}

func writeFailure(c *gin.Context, outcome result.Outcome) {
	writeError(c, statusFromCode(outcome.Code()), outcome.Error())
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeValidation(c *gin.Context, errs []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, validationResponse{
		Message: "validation failed",
		Errors:  errs,
	})
}

var registerTagName sync.Once

// useJSONFieldNames makes validation errors report JSON names instead of Go
// field names.
func useJSONFieldNames() {
	registerTagName.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return msgs
}
