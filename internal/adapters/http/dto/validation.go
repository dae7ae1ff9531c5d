package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/nishantarora/portfolio/internal/domain"
)

// jsonTagParts is the number of parts when splitting a JSON tag by comma.
const jsonTagParts = 2

// Validation errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrBinding    = errors.New("binding failed")
)

// tagPattern matches the lowercase, hyphenated tags used in post metadata.
var tagPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.+#-]*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// RecordURI is the :id segment of record routes.
type RecordURI struct {
	ID string `uri:"id" json:"id" validate:"required,recordid"`
}

// RecordQuery is the ?id= parameter of the legacy post.html and
// project.html links.
type RecordQuery struct {
	ID string `form:"id" json:"id" validate:"required,recordid"`
}

// TagQuery filters the post listing by one tag.
type TagQuery struct {
	Tag string `form:"tag" json:"tag" validate:"omitempty,max=64,tag"`
}

// Validator returns the shared validator, registering custom rules on
// first use.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// Report JSON names in error details.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", jsonTagParts)[0]
			if name == "-" {
				return ""
			}

			return name
		})

		_ = validate.RegisterValidation("recordid", validateRecordID)
		_ = validate.RegisterValidation("tag", validateTag)
	})

	return validate
}

// Validate validates a struct using the shared validator.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindURIAndValidate binds path parameters and validates them.
func BindURIAndValidate(c *gin.Context, v any) error {
	err := c.ShouldBindUri(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate binds query parameters and validates them.
func BindQueryAndValidate(c *gin.Context, v any) error {
	err := c.ShouldBindQuery(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors extracts field-level messages from a validator error.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

// IsValidationError checks if the error came from the validator.
func IsValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}

// AbortWithValidation aborts with a 400 carrying err's field messages.
func AbortWithValidation(c *gin.Context, err error) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", ValidationErrors(err))
	c.AbortWithStatusJSON(HTTPStatusFromCode(ErrorCodeValidation), resp.WithTraceID(GetTraceID(c)))
}

// validationMessages maps validation tags to message templates.
var validationMessages = map[string]string{
	"required": "this field is required",
	"recordid": "must contain only letters, digits, '.', '_', '~' or '-'",
	"tag":      "must be a lowercase tag",
	"max":      "must be at most {param} characters",
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + fe.Tag()
}

func validateRecordID(fl validator.FieldLevel) bool {
	return domain.ValidID(fl.Field().String())
}

func validateTag(fl validator.FieldLevel) bool {
	return tagPattern.MatchString(fl.Field().String())
}
