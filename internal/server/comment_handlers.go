package server

import (
	"scribe/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:post_id/comment/
// @Summary Comment on a post
// @Description Blank comments are dropped without an error. Always redirects to the post.
// @Tags comments
// @Accept x-www-form-urlencoded
// @Param post_id path int true "Post ID"
// @Param text formData string true "Comment text"
// @Success 302 "Redirect to the post"
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{post_id}/comment/ [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := s.requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	_, err = s.comments.AddComment(c.UserContext(), user.ID, postID, c.FormValue("text"))
	if err != nil && !models.IsValidation(err) {
		return respondError(c, err)
	}
	return redirect(c, postPath(postID))
}
