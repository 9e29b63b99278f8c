package validator

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	initOnce  sync.Once
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

// Init prepares the shared validator and HTML policy. Calling it more than
// once is harmless.
func Init() {
	initOnce.Do(func() {
		validate = validator.New()

		sanitizer = bluemonday.UGCPolicy()
		sanitizer.AllowAttrs("class", "id").Globally()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("route_path", validateRoutePath)
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

// IsRoutePath reports whether value looks like a site-relative route.
func IsRoutePath(value string) bool {
	if !strings.HasPrefix(value, "/") || strings.HasPrefix(value, "//") {
		return false
	}
	return !strings.ContainsAny(value, " \t\r\n?#")
}

func validateRoutePath(fl validator.FieldLevel) bool {
	return IsRoutePath(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}
