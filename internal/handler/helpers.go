package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/apierror"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/middleware"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON tidak valid: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// actorFrom builds the store actor from the request's JWT claims. Anonymous
// requests yield a zero actor, which user-scoped state transitions reject.
func actorFrom(c *gin.Context) store.Actor {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return store.Actor{}
	}
	return store.Actor{UserID: claims.UserID, Username: claims.Username}
}

// cartKeyFrom resolves the cart owner: the authenticated user id, or the
// anonymous session header for guest carts.
func cartKeyFrom(c *gin.Context) string {
	if actor := actorFrom(c); !actor.IsZero() {
		return actor.UserID
	}
	return c.GetHeader("X-Cart-Session")
}

// writeStoreError maps reducer sentinel errors onto HTTP statuses.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, store.ErrNoActiveSession):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrAlreadyReceived),
		errors.Is(err, store.ErrAlreadyResolved),
		errors.Is(err, store.ErrAlreadyClockedIn),
		errors.Is(err, store.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
