package server

import (
	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type authFormResponse struct {
	Form FormContext `json:"form"`
	Next string      `json:"next,omitempty"`
}

// startSession issues the session cookie for user.
func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	token, expires, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return models.NewInternalError(err)
	}
	s.sessions.SetCookie(c, token, expires)
	return nil
}

// SignupForm handles GET /auth/signup/
// @Summary Signup form
// @Tags auth
// @Produce json
// @Success 200 {object} object{form=FormContext}
// @Router /auth/signup/ [get]
func (s *Server) SignupForm(c *fiber.Ctx) error {
	return c.JSON(authFormResponse{Form: FormContext{Fields: signupFormFields}})
}

// Signup handles POST /auth/signup/
// @Summary Create an account
// @Description Creates the account, starts a session and redirects to the global feed.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param first_name formData string false "First name"
// @Param last_name formData string false "Last name"
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password1 formData string true "Password"
// @Param password2 formData string true "Password confirmation"
// @Success 302 "Redirect to /"
// @Failure 400 {object} object{form=FormContext}
// @Router /auth/signup/ [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var form validation.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.Signup(c.UserContext(), form)
	if err != nil {
		if models.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(authFormResponse{Form: FormContext{
				Fields: signupFormFields,
				Values: map[string]any{
					"first_name": form.FirstName,
					"last_name":  form.LastName,
					"username":   form.Username,
					"email":      form.Email,
				},
				Errors: fieldErrors(err),
			}})
		}
		return respondError(c, err)
	}

	if err := s.startSession(c, user); err != nil {
		return respondError(c, err)
	}
	return redirect(c, "/")
}

// LoginForm handles GET /auth/login/
// @Summary Login form
// @Tags auth
// @Produce json
// @Param next query string false "Where to go after login"
// @Success 200 {object} object{form=FormContext,next=string}
// @Router /auth/login/ [get]
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return c.JSON(authFormResponse{
		Form: FormContext{Fields: loginFormFields},
		Next: middleware.SafeNext(c.Query("next"), ""),
	})
}

// Login handles POST /auth/login/
// @Summary Log in
// @Description Starts a session and redirects to next, or / when next is missing or not a local path.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param next query string false "Where to go after login"
// @Success 302 "Redirect to next"
// @Failure 400 {object} object{form=FormContext}
// @Failure 401 {object} object{form=FormContext}
// @Router /auth/login/ [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	next := c.FormValue("next")
	if next == "" {
		next = c.Query("next")
	}

	user, err := s.accounts.Login(c.UserContext(), form)
	if err != nil {
		if models.IsValidation(err) || models.HasCode(err, models.CodeUnauthenticated) {
			return c.Status(models.StatusFor(err)).JSON(authFormResponse{
				Form: FormContext{
					Fields: loginFormFields,
					Values: map[string]any{"username": form.Username},
					Errors: fieldErrors(err),
				},
				Next: middleware.SafeNext(next, ""),
			})
		}
		return respondError(c, err)
	}

	if err := s.startSession(c, user); err != nil {
		return respondError(c, err)
	}
	return redirect(c, middleware.SafeNext(next, "/"))
}

// Logout handles POST /auth/logout/
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} object{status=string}
// @Router /auth/logout/ [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	s.sessions.ClearCookie(c)
	return c.JSON(fiber.Map{"status": "logged out"})
}
