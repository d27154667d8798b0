package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. respondError turns it into a nil error.
var errResponseWritten = errors.New("response already written")

// FormField describes one input of a form context.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	HelpText string `json:"help_text,omitempty"`
}

// FormContext is what a form page renders: its fields, the submitted
// values and any per-field errors.
type FormContext struct {
	Fields []FormField       `json:"fields"`
	Values map[string]any    `json:"values,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// parseID extracts a numeric route parameter. Anything other than a
// positive integer matches no resource, so it is reported as NotFound.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError("Resource", raw)
	}
	return uint(id), nil
}

// requestedPage reads the ?page= query parameter.
func requestedPage(c *fiber.Ctx) int {
	return pagination.ParsePage(c.Query("page"))
}

// respondError writes err with the status its code maps to.
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errResponseWritten) {
		return nil
	}
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error", slog.String("error", err.Error()))
		var appErr *models.AppError
		if !errors.As(err, &appErr) {
			err = models.NewInternalError(err)
		}
	}
	return models.RespondWithError(c, status, err)
}

// currentUser loads the authenticated user. A session for a user that no
// longer exists counts as anonymous.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	user, err := s.accounts.CurrentUser(c.UserContext(), userID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthenticatedError("Authentication required")
		}
		return nil, err
	}
	return user, nil
}

// requireUser is currentUser for login-required handlers: an anonymous
// result redirects to the login page and returns errResponseWritten.
func (s *Server) requireUser(c *fiber.Ctx) (*models.User, error) {
	user, err := s.currentUser(c)
	if err != nil && models.HasCode(err, models.CodeUnauthenticated) {
		s.sessions.ClearCookie(c)
		if rerr := c.Redirect(middleware.LoginRedirectURL(s.loginURL(), c.OriginalURL()), fiber.StatusFound); rerr != nil {
			return nil, rerr
		}
		return nil, errResponseWritten
	}
	return user, err
}

func redirect(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusFound)
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

var postFormFields = []FormField{
	{Name: "text", Label: "Text", Type: "textarea", Required: true, HelpText: "Text of the new post"},
	{Name: "group", Label: "Group", Type: "select", HelpText: "Group the post belongs to"},
	{Name: "image", Label: "Image", Type: "file", HelpText: "Image attached to the post"},
}

var commentFormFields = []FormField{
	{Name: "text", Label: "Text", Type: "textarea", Required: true, HelpText: "Text of the comment"},
}

var signupFormFields = []FormField{
	{Name: "first_name", Label: "First name", Type: "text"},
	{Name: "last_name", Label: "Last name", Type: "text"},
	{Name: "username", Label: "Username", Type: "text", Required: true},
	{Name: "email", Label: "Email", Type: "email", Required: true},
	{Name: "password1", Label: "Password", Type: "password", Required: true},
	{Name: "password2", Label: "Password confirmation", Type: "password", Required: true},
}

var loginFormFields = []FormField{
	{Name: "username", Label: "Username", Type: "text", Required: true},
	{Name: "password", Label: "Password", Type: "password", Required: true},
}

// fieldErrors extracts per-field messages from a validation error. An error
// without field detail is reported under "__all__".
func fieldErrors(err error) map[string]string {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return nil
	}
	if len(appErr.Fields) > 0 {
		return appErr.Fields
	}
	return map[string]string{"__all__": appErr.Message}
}
