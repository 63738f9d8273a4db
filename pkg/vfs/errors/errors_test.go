package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError_Error(t *testing.T) {
	t.Parallel()

	err := NewNotFound("a/b.md")
	assert.Equal(t, "NotFound: node not found: a/b.md", err.Error())

	err = NewConflict("ordinal already in use among siblings")
	assert.Equal(t, "Conflict: ordinal already in use among siblings", err.Error())
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrNotFound, CodeOf(NewNotFound("x")))
	assert.Equal(t, ErrAlreadyExists, CodeOf(NewAlreadyExists("x")))
	assert.Equal(t, ErrorCode(0), CodeOf(nil))
	assert.Equal(t, ErrorCode(0), CodeOf(stderrors.New("plain")))
}

func TestCodeOf_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("while saving: %w", NewUnauthorized("a/b"))
	assert.Equal(t, ErrUnauthorized, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, ErrUnauthorized))
	assert.False(t, IsCode(wrapped, ErrNotFound))
}

func TestErrorsIs_MatchesByCode(t *testing.T) {
	t.Parallel()

	err := NewAlreadyExists("notes/file.md")
	assert.True(t, stderrors.Is(err, &StoreError{Code: ErrAlreadyExists}))
	assert.False(t, stderrors.Is(err, &StoreError{Code: ErrConflict}))
}

func TestErrorCode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NotFound", ErrNotFound.String())
	assert.Equal(t, "Timeout", ErrTimeout.String())
	assert.Equal(t, "Unknown(99)", ErrorCode(99).String())
}
