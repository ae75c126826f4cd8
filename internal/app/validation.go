package app

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"notepad/internal/domain"
)

const (
	tagNotBlank = "notblank"
	tagMaxBytes = "maxbytes"
	tagPgText   = "pgtext"
)

type credentialsInput struct {
	Email    string `json:"email" validate:"pgtext,notblank,max=255"`
	Password string `json:"password" validate:"notblank,maxbytes=72"`
}

type loginInput struct {
	Email    string `json:"email" validate:"pgtext,notblank"`
	Password string `json:"password" validate:"notblank"`
}

type ownerInput struct {
	OwnerID int64 `json:"userId" validate:"gt=0"`
}

type noteInput struct {
	OwnerID int64  `json:"userId" validate:"gt=0"`
	Title   string `json:"title" validate:"pgtext,notblank,max=255"`
	Content string `json:"content" validate:"pgtext,max=1024"`
}

type noteUpdateInput struct {
	NoteID  int64  `json:"noteId" validate:"gt=0"`
	OwnerID int64  `json:"userId" validate:"gt=0"`
	Title   string `json:"title" validate:"pgtext,notblank,max=255"`
	Content string `json:"content" validate:"pgtext,max=1024"`
}

type noteRefInput struct {
	NoteID  int64 `json:"noteId" validate:"gt=0"`
	OwnerID int64 `json:"userId" validate:"gt=0"`
}

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(tagNotBlank, validators.NotBlank)
	_ = v.RegisterValidation(tagMaxBytes, maxBytes)
	_ = v.RegisterValidation(tagPgText, pgText)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// pgText пропускает только строки, которые Postgres примет в столбец text.
func pgText(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return utf8.ValidString(value) && !strings.ContainsRune(value, 0)
}

// validateInput проверяет структуру и переводит первое нарушение в domain.InputError.
func validateInput(input any) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	fe := fieldErrs[0]
	return domain.NewInputError(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case tagNotBlank:
		return "must not be blank"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case tagMaxBytes:
		return "must be at most " + fe.Param() + " bytes"
	case tagPgText:
		return "must be valid UTF-8 without NUL characters"
	case "gt":
		return "must be a positive number"
	default:
		return "is invalid"
	}
}
