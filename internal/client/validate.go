// ABOUTME: Input validation for request bodies before they are sent
// ABOUTME: Uses validator tags with English messages from universal-translator

package client

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	enTrans  ut.Translator
)

// imageExtensions are the upload types the backend accepts
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uniTrans := ut.New(english, english)
	enTrans, _ = uniTrans.GetTranslator("en")

	_ = en_translations.RegisterDefaultTranslations(validate, enTrans)

	// report fields by their wire name, falling back to lowercase
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return strings.ToLower(field.Name)
	})

	_ = validate.RegisterValidation("image", func(fl validator.FieldLevel) bool {
		return IsImagePath(fl.Field().String())
	})

	_ = validate.RegisterTranslation("image", enTrans, func(ut ut.Translator) error {
		return ut.Add("image", "{0} must be a jpg, png, gif or webp file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("image", fe.Field())
		return t
	})
}

// Validate checks a request struct and returns a ValidationError listing every bad field
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Translate(enTrans)
	}
	return &ValidationError{Fields: fields}
}

// IsImagePath reports whether path has an extension the backend accepts for uploads
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}
