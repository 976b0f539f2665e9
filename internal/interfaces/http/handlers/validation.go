package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tempus/internal/domain/session"
)

// RegisterValidators installs the custom binding validators on Gin's
// validator engine. Call once at router setup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("accesscode", validAccessCode)
	}
}

// validAccessCode rejects codes that cannot exist, before they reach the
// store. The rejection is indistinguishable from any other bad body.
func validAccessCode(fl validator.FieldLevel) bool {
	return session.IsWellFormedCode(session.CanonicalizeCode(fl.Field().String()))
}
