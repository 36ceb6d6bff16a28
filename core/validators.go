package core

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	phoneTag   = "phone"
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	requiredTag  = "required"
	requiredText = "this field is required"

	oneofTag = "oneof"

	// gte is only ever used as gte=0 on currency amounts
	gteTag  = "gte"
	gteText = "{0} cannot be negative"
)

func init() {
	enLocale := en.New()
	Translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")

	Validate = validator.New()
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(phoneTag, phoneValidation)
	registerValueTranslation(phoneTag, "%v is not a valid phone number")

	// enum failures echo the offending value, eg. "boss is not a valid gender"
	registerValueTranslation(oneofTag, "%v is not a valid %s")

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(gteTag, gteText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// registerValueTranslation registers a translation whose message includes the
// offending value (and, when the format has a second verb, the field name).
func registerValueTranslation(tag, format string) {
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, format, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			if strings.Count(format, "%") > 1 {
				return fmt.Sprintf(format, fe.Value(), fe.Field())
			}
			return fmt.Sprintf(format, fe.Value())
		},
	)
}

// Custom Global Validators

// phoneValidation allows E.164-style phone numbers: optional leading "+",
// leading nonzero digit, at most 15 digits total.
func phoneValidation(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
