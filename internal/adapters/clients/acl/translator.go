package acl

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nishantarora/portfolio/internal/adapters/clients"
	"github.com/nishantarora/portfolio/internal/domain"
)

// BaseAdapter wraps a clients.Client and maps every failure to a domain error.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a BaseAdapter.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName names the remote host in logs and health output.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get fetches path and returns the body of a 2xx response; the caller
// closes it. resource names what is being fetched in error messages.
func (a *BaseAdapter) Get(ctx context.Context, path, resource string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, resource)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, resource)
	}

	return resp.Body, nil
}

// ValidateRequired returns a validation error when value is empty.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies translate to each item, stopping at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]*D, error) {
	result := make([]*D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
