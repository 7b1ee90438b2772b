package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"ErrEntryNotFound", ErrEntryNotFound, true},
		{"wrapped ErrEntryNotFound", fmt.Errorf("get entry: %w", ErrEntryNotFound), true},
		{"ErrEmailExists", ErrEmailExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestEntityErrorsWrapCategories(t *testing.T) {
	assert.ErrorIs(t, ErrEmailExists, ErrDuplicate)
	assert.ErrorIs(t, fmt.Errorf("save: %w", ErrEmailExists), ErrDuplicate)
	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrUserNotFound, ErrEntryNotFound)
	assert.NotErrorIs(t, ErrEmailExists, ErrNotFound)
}

func TestFilterFromEntryIgnoresValueAndID(t *testing.T) {
	e := sampleEntry()
	f := FilterFromEntry(e)

	assert.Equal(t, e.Description, f.Description)
	assert.Equal(t, e.Month, f.Month)
	assert.Equal(t, e.Year, f.Year)
	assert.Equal(t, e.Type, f.Type)
	assert.Equal(t, e.Status, f.Status)
	assert.Equal(t, e.UserID, f.UserID)
}
