package timeslots

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingValidators adds the "timehhmm" tag used by the slot DTOs.
func RegisterBindingValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("timehhmm", validHHMM)
	}
}

func validHHMM(fl validator.FieldLevel) bool {
	_, err := ParseMinutes(fl.Field().String())
	return err == nil
}
