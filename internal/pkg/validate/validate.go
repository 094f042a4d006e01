package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. Custom tags are registered in init()
// before the first call to Struct.
var v = validator.New()

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{8,18}$`)

func init() {
	// identifier accepts an email address or a phone number.
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if strings.Contains(s, "@") {
			return v.Var(s, "email") == nil
		}
		return phonePattern.MatchString(s)
	})
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
