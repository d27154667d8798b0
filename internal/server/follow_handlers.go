package server

import (
	"github.com/gofiber/fiber/v2"
)

// ProfileFollow handles GET and POST /profile/:username/follow/
// @Summary Follow an author
// @Description Following yourself or an author you already follow changes nothing.
// @Tags follows
// @Param username path string true "Author username"
// @Success 302 "Redirect to the author's profile"
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{username}/follow/ [post]
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return respondError(c, err)
	}
	username := c.Params("username")
	if _, err := s.follows.Follow(c.UserContext(), user, username); err != nil {
		return respondError(c, err)
	}
	return redirect(c, profilePath(username))
}

// ProfileUnfollow handles GET and POST /profile/:username/unfollow/
// @Summary Unfollow an author
// @Tags follows
// @Param username path string true "Author username"
// @Success 302 "Redirect to the author's profile"
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{username}/unfollow/ [post]
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return respondError(c, err)
	}
	username := c.Params("username")
	if err := s.follows.Unfollow(c.UserContext(), user, username); err != nil {
		return respondError(c, err)
	}
	return redirect(c, profilePath(username))
}
