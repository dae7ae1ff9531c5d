package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrValidation,
		ErrFetchFailed,
		ErrBuildFatal,
		ErrBuildPartial,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		id          string
		expectedMsg string
	}{
		{
			name:        "with id",
			kind:        KindPost,
			id:          "hello-world",
			expectedMsg: `post with id "hello-world" not found`,
		},
		{
			name:        "without id",
			kind:        KindProject,
			id:          "",
			expectedMsg: "project not found: no id supplied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.kind, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.kind, notFound.Kind)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestConflictError(t *testing.T) {
	err := NewConflictError(KindPost, "dup")

	assert.Equal(t, `post conflict: id "dup" appears more than once`, err.Error())
	require.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "dup", conflict.ID)
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "id",
			message:     "is required",
			expectedMsg: "validation failed for id: is required",
		},
		{
			name:        "without field",
			field:       "",
			message:     "bad metadata",
			expectedMsg: "validation failed: bad metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
			assert.Equal(t, tt.message, validation.Message)
		})
	}
}

func TestValidationErrorWithValue(t *testing.T) {
	err := NewValidationErrorWithValue("kind", "must be post or project", "page")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "page", validation.Value)
}

func TestFetchError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
		cause       error
	}{
		{
			name:        "with reason",
			err:         NewFetchError("posts/a.md", "HTTP 500"),
			expectedMsg: "fetching posts/a.md: HTTP 500",
		},
		{
			name:        "wrapping cause",
			err:         WrapFetchError("posts/posts.json", fs.ErrNotExist),
			expectedMsg: "fetching posts/posts.json: file does not exist",
			cause:       fs.ErrNotExist,
		},
		{
			name:        "bare",
			err:         &FetchError{Resource: "feed"},
			expectedMsg: "fetching feed failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
			require.ErrorIs(t, tt.err, ErrFetchFailed)
			assert.False(t, IsNotFound(tt.err))

			if tt.cause != nil {
				require.ErrorIs(t, tt.err, tt.cause)
			}
		})
	}
}

func TestBuildError(t *testing.T) {
	cause := WrapFetchError("posts/posts.json", fs.ErrNotExist)
	err := NewBuildError(KindPost, cause)

	assert.True(t, IsBuildFatal(err))
	assert.True(t, IsFetchFailure(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "post build aborted")
}

func TestPartialBuildError(t *testing.T) {
	err := &PartialBuildError{Kind: KindProject, Succeeded: 2, Total: 3}

	assert.Equal(t, "project build incomplete: 2 of 3 records written", err.Error())
	assert.True(t, IsBuildPartial(err))
	assert.False(t, IsBuildFatal(err))
}

func TestIsHelpers_Wrapped(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NewNotFoundError(KindPost, "x"), IsNotFound},
		{"conflict", NewConflictError(KindPost, "x"), IsConflict},
		{"validation", NewValidationError("id", "bad"), IsValidation},
		{"fetch", NewFetchError("x", "down"), IsFetchFailure},
		{"fatal", NewBuildError(KindPost, errors.New("boom")), IsBuildFatal},
		{"partial", &PartialBuildError{Kind: KindPost}, IsBuildPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("layer: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.False(t, tt.check(errors.New("other")))
			assert.False(t, tt.check(nil))
		})
	}
}
