package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestPost_Excerpt(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"short", "short"},
		{"exactly fifteen", "exactly fifteen"},
		{"a considerably longer post body", "a considerably "},
		{"Тестовый пост номер один", "Тестовый пост н"},
	}
	for _, tt := range tests {
		p := &Post{Text: tt.text}
		assert.Equal(t, tt.want, p.Excerpt())
	}
}

func TestPost_IsOwnedBy(t *testing.T) {
	p := &Post{AuthorID: 7}
	assert.True(t, p.IsOwnedBy(7))
	assert.False(t, p.IsOwnedBy(8))
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "leo", (&User{Username: "leo"}).FullName())
	assert.Equal(t, "Leo Tolstoy", (&User{Username: "leo", FirstName: "Leo", LastName: "Tolstoy"}).FullName())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("Post", 1), http.StatusNotFound},
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"unauthenticated", NewUnauthenticatedError("login"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("nope"), http.StatusForbidden},
		{"internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NewNotFoundError("Group", "x")), http.StatusNotFound},
		{"fiber error", fiber.ErrNotFound, http.StatusNotFound},
		{"plain error", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewFieldValidationError(map[string]string{"text": "required"}))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsForbidden(errors.New("x")))
}
