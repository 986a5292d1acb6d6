package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag      = "notblank"
	usernameCharsTag = "username_chars"
	webURLTag        = "web_url"

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

	webURLSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "ftps": true}
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Report fields by their HTML form names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(usernameCharsTag, usernameCharsValidation)
	_ = Validate.RegisterValidation(webURLTag, webURLValidation)

	registerFormTranslations(notBlankTag, usernameCharsTag, webURLTag, "required", "max", "min", "email", "url", "oneof")
}

// registerFormTranslations overrides the default english messages for the
// tags used by the HTML forms. The default translations are already
// registered, so a noop register func is enough.
func registerFormTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateFormErr)
	}
}

func translateFormErr(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", notBlankTag:
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at least %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "url", webURLTag:
		return "Enter a valid URL."
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case usernameCharsTag:
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return fe.Error()
	}
}

func runeLen(v interface{}) int {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s)
	}
	return 0
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func usernameCharsValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return usernamePattern.MatchString(str)
	}
	return false
}

// webURLValidation accepts absolute http, https, ftp and ftps URLs with a host.
func webURLValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	u, err := url.Parse(str)
	if err != nil {
		return false
	}
	return webURLSchemes[strings.ToLower(u.Scheme)] && u.Host != ""
}

// Struct validates a form struct against its `validate` tags and converts
// the result into field-keyed messages.
func Struct(form interface{}) Errors {
	err := Validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: NonFieldErrors, Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fe.Translate(Translator)})
	}
	return out
}
