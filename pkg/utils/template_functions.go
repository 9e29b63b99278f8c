package utils

import (
	"fmt"
	"html/template"
	"net/url"
	"reflect"
	"strings"
	"time"

	"cawver-web/pkg/navigation"
)

// AssetVersionFunc returns a cache-busting token for a static asset path.
type AssetVersionFunc func(path string) (string, error)

func GetTemplateFuncs(assetVersion AssetVersionFunc) template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },

		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"hasPrefix": strings.HasPrefix,
		"contains":  strings.Contains,

		"isActive": navigation.IsActive,

		"default": func(defaultValue, value interface{}) interface{} {
			if isEmpty(value) {
				return defaultValue
			}
			return value
		},

		"mailto": Mailto,
		"year": func() int {
			return time.Now().Year()
		},

		"asset": func(path string) string {
			if path == "" || assetVersion == nil {
				return path
			}
			version, err := assetVersion(path)
			if err != nil || version == "" {
				return path
			}
			separator := "?"
			if strings.Contains(path, "?") {
				separator = "&"
			}
			return fmt.Sprintf("%s%sv=%s", path, separator, version)
		},
	}
}

// Mailto builds a mailto link with an optional subject line.
func Mailto(email, subject string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	link := "mailto:" + email
	if subject = strings.TrimSpace(subject); subject != "" {
		link += "?subject=" + url.PathEscape(subject)
	}
	return link
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}

	zero := reflect.Zero(v.Type())
	return reflect.DeepEqual(value, zero.Interface())
}
