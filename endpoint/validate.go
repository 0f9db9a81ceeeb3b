package endpoint

import (
	"net"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("endpoint: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("scheme", isScheme); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("host", isHost); err != nil {
		panic(err)
	}
}

// FieldError describes a URL part that failed validation.
type FieldError struct {
	Field string
	Err   string
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface, returning a human-readable
// summary of all field errors.
func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, f := range fe {
		msgs[i] = f.Field + ": " + f.Err
	}
	return "invalid url: " + strings.Join(msgs, "; ")
}

func validateParts(p parts) error {
	if err := validate.Struct(p); err != nil {
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			fields = append(fields, FieldError{
				Field: strings.ToLower(verror.Field()),
				Err:   customErrForTag(verror.Tag(), verror),
			})
		}
		return fields
	}

	return nil
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required":
		return "is missing"
	case "scheme":
		return "must start with a letter followed by letters, digits, '+', '-' or '.'"
	case "host":
		return "must be a registered name, IPv4 address or bracketed IPv6 address, with an optional port"
	default:
		return verror.Translate(translator)
	}
}

// isScheme follows RFC 3986 section 3.1.
func isScheme(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for i, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return s != ""
}

func isHost(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if h, port, err := net.SplitHostPort(name); err == nil {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return false
		}
		name = h
	}

	if inner, ok := strings.CutPrefix(name, "["); ok {
		inner, ok = strings.CutSuffix(inner, "]")
		return ok && validate.Var(inner, "ipv6") == nil
	}

	// SplitHostPort strips brackets, so a bare IPv6 here came from "[::1]:80".
	if strings.Contains(name, ":") {
		return validate.Var(name, "ipv6") == nil && strings.Contains(fl.Field().String(), "]")
	}

	return isRegName(name)
}

// isRegName reports whether s is an RFC 3986 reg-name made only of
// unreserved characters. IPv4 literals fall within this set.
func isRegName(s string) bool {
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLetter(r), unicode.IsDigit(r):
		case r == '-' || r == '.' || r == '_' || r == '~':
		default:
			return false
		}
	}

	return s != ""
}
