package validation

import "strings"

// PostForm is the create and edit form of a post. The image is validated separately.
type PostForm struct {
	Text    string `form:"text" validate:"required"`
	GroupID *uint  `form:"group"`
}

// Normalize trims surrounding whitespace so blank text counts as missing.
func (f *PostForm) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
}

// CommentForm is the comment form of a post.
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

// Normalize trims surrounding whitespace so blank text counts as missing.
func (f *CommentForm) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
}

// SignupForm creates an account.
type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,username"`
	Email     string `form:"email" validate:"required,email,max=254"`
	Password1 string `form:"password1" validate:"required,password"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

// Normalize trims the identity fields. Passwords are kept verbatim.
func (f *SignupForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

// LoginForm authenticates an account.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Normalize trims the username.
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}
