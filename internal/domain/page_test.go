package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "March 5, 2024", FormatDate("2024-03-05"))
	assert.Equal(t, "December 31, 2023", FormatDate("2023-12-31T23:00:00Z"))
	assert.Equal(t, "someday", FormatDate("someday"))
	assert.Equal(t, "", FormatDate(""))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 1, 0, 0, 0, time.FixedZone("X", 5*3600))
	assert.Equal(t, "January 1, 2024", FormatTime(ts))
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		err  error
		want string
	}{
		{"post not found", KindPost, NewNotFoundError(KindPost, "x"), "Post not found."},
		{"project not found", KindProject, NewNotFoundError(KindProject, ""), "Project not found."},
		{"post fetch failure", KindPost, NewFetchError("content", "status 500"), "Error loading post. Please try again later."},
		{"project other error", KindProject, errors.New("boom"), "Error loading project. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Placeholder(tt.kind, tt.err))
		})
	}
}
