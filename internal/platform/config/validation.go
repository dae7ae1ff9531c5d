package config

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their koanf key so messages match the YAML and env names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return v
}

// Validate validates the configuration and returns an error if invalid.
// Commands refuse to run with invalid config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	if err := c.validatePaths(); err != nil {
		return fmt.Errorf("config validation failed:\n  %w", err)
	}

	return nil
}

// validatePaths checks the constraints struct tags cannot express.
func (c *Config) validatePaths() error {
	if !strings.HasPrefix(c.Site.FeedPath, "/") {
		return errors.New("site.feed_path must start with /")
	}

	for key, p := range map[string]string{
		"content.posts_metadata":    c.Content.PostsMetadata,
		"content.projects_metadata": c.Content.ProjectsMetadata,
		"content.posts_dir":         c.Content.PostsDir,
		"content.projects_dir":      c.Content.ProjectsDir,
		"output.feed_file":          c.Output.FeedFile,
	} {
		if path.IsAbs(p) || strings.HasPrefix(path.Clean(p), "..") {
			return fmt.Errorf("%s must be relative to its root: %q", key, p)
		}
	}

	return nil
}

// formatValidationErrors converts validator errors to a readable format.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, formatFieldError(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath converts "Config.site.base_url" to "site.base_url".
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	return strings.Join(parts, ".")
}
