package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindValidation, KindOf(Validation("age", "too young")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("while handling request: %w", NotFound("gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("title", "title must not be empty")
	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "title", e.Field)
}

func TestIsMatchesByKind(t *testing.T) {
	assert.True(t, errors.Is(Conflict("dup"), Conflict("other")))
	assert.False(t, errors.Is(Conflict("dup"), NotFound("gone")))
}
