package validators

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Loose enough for international formats; forms keep phones free-text
// beyond requiring something that looks dialable.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{4,19}$`)

func Phone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}

// Register installs custom rules on gin's binding engine. Call once at
// startup before any request is served.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", Phone)
	}
}
