package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostForm(t *testing.T) {
	form := PostForm{Text: "   \n\t "}
	form.Normalize()
	fields, err := Struct(form)
	require.NoError(t, err)
	assert.Equal(t, FieldErrors{"text": "This field is required."}, fields)

	group := uint(3)
	form = PostForm{Text: "  hello  ", GroupID: &group}
	form.Normalize()
	fields, err = Struct(form)
	require.NoError(t, err)
	assert.Nil(t, fields)
	assert.Equal(t, "hello", form.Text)
}

func TestCommentForm(t *testing.T) {
	form := CommentForm{Text: " "}
	form.Normalize()
	fields, err := Struct(form)
	require.NoError(t, err)
	assert.Contains(t, fields, "text")

	form = CommentForm{Text: "Nice post"}
	fields, err = Struct(form)
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestSignupForm(t *testing.T) {
	valid := SignupForm{
		Username:  "leo",
		Email:     "leo@example.com",
		Password1: "correct-horse",
		Password2: "correct-horse",
	}
	fields, err := Struct(valid)
	require.NoError(t, err)
	assert.Nil(t, fields)

	tests := []struct {
		name   string
		mutate func(*SignupForm)
		field  string
	}{
		{"Missing username", func(f *SignupForm) { f.Username = "" }, "username"},
		{"Bad username", func(f *SignupForm) { f.Username = "leo tolstoy" }, "username"},
		{"Bad email", func(f *SignupForm) { f.Email = "nope" }, "email"},
		{"Weak password", func(f *SignupForm) { f.Password1, f.Password2 = "12345678", "12345678" }, "password1"},
		{"Mismatch", func(f *SignupForm) { f.Password2 = "different-horse" }, "password2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			fields, err := Struct(form)
			require.NoError(t, err)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestSignupFormMessages(t *testing.T) {
	fields, err := Struct(SignupForm{
		Username:  "leo",
		Email:     "leo@example.com",
		Password1: "12345678",
		Password2: "12345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "This password is entirely numeric.", fields["password1"])
}

func TestStructRejectsNonStruct(t *testing.T) {
	_, err := Struct("not a struct")
	assert.Error(t, err)
}
