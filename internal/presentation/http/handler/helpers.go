package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/middleware"
	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
)

var registerTagNames sync.Once

// RegisterValidatorTagNames makes validation errors report json field names
// instead of Go struct field names.
func RegisterValidatorTagNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// bindingError converts a ShouldBind failure into a 422 application error
func bindingError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		return apperror.NewValidationError(fieldErrors)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperror.NewFieldError(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type))
	}
	return apperror.NewFieldError("body", "Invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("should have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("should have at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// currentUser rebuilds the authenticated user from the token claims
func currentUser(c *gin.Context) *entity.User {
	id := middleware.GetUserID(c)
	if id == uuid.Nil {
		return nil
	}
	return &entity.User{
		ID:    id,
		Login: c.GetString(middleware.ContextUserLogin),
		Name:  c.GetString(middleware.ContextUserName),
	}
}
