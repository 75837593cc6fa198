package api

import (
	"sync"

	"schooltrip/internal/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator
// engine. "saudimobile" accepts an empty value when paired with omitempty;
// otherwise the number must be 10 digits starting with 05 after stripping
// spaces and hyphens.
func RegisterValidators() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("saudimobile", func(fl validator.FieldLevel) bool {
			return utils.ValidSaudiMobile(fl.Field().String())
		})
	})
}
