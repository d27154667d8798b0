package server

import (
	"context"
	"strconv"
	"strings"

	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postFormResponse is the create and edit page context.
type postFormResponse struct {
	Form   FormContext    `json:"form"`
	Groups []models.Group `json:"groups"`
	IsEdit bool           `json:"is_edit"`
	Post   *models.Post   `json:"post,omitempty"`
}

func (s *Server) renderPostForm(c *fiber.Ctx, status int, values map[string]any, errs map[string]string, post *models.Post) error {
	groups, err := s.posts.GroupChoices(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(postFormResponse{
		Form:   FormContext{Fields: postFormFields, Values: values, Errors: errs},
		Groups: groups,
		IsEdit: post != nil,
		Post:   post,
	})
}

// postInput reads the submitted post form. The group is optional; a value
// that is not a number selects no existing group and fails validation.
func (s *Server) postInput(c *fiber.Ctx) (service.PostInput, error) {
	in := service.PostInput{
		Text:       c.FormValue("text"),
		ClearImage: c.FormValue("image-clear") != "",
	}

	if raw := strings.TrimSpace(c.FormValue("group")); raw != "" {
		var id uint
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id = uint(n)
		}
		in.GroupID = &id
	}

	// Urlencoded bodies and forms without a file carry no image.
	fh, err := c.FormFile("image")
	if err != nil || (fh.Size == 0 && fh.Filename == "") {
		return in, nil
	}
	data, err := s.media.ReadUpload(fh)
	if err != nil {
		return in, err
	}
	in.Image = &service.Upload{Filename: fh.Filename, Data: data}
	return in, nil
}

func postValues(in service.PostInput) map[string]any {
	return map[string]any{"text": in.Text, "group": in.GroupID}
}

// CreatePostForm handles GET /create/
// @Summary New post form
// @Tags posts
// @Produce json
// @Success 200 {object} object{form=FormContext,groups=[]models.Group,is_edit=bool}
// @Router /create/ [get]
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	if _, err := s.requireUser(c); err != nil {
		return respondError(c, err)
	}
	return s.renderPostForm(c, fiber.StatusOK, nil, nil, nil)
}

// CreatePost handles POST /create/
// @Summary Publish a post
// @Description Multipart form with text, optional group and optional image. Redirects to the author's profile.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Param text formData string true "Post text"
// @Param group formData int false "Group ID"
// @Param image formData file false "Image"
// @Success 302 "Redirect to the author's profile"
// @Failure 400 {object} object{form=FormContext}
// @Router /create/ [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	in, err := s.postInput(c)
	if err == nil {
		_, err = s.posts.CreatePost(c.UserContext(), user.ID, in)
	}
	if err != nil {
		if models.IsValidation(err) {
			return s.renderPostForm(c, fiber.StatusBadRequest, postValues(in), fieldErrors(err), nil)
		}
		return respondError(c, err)
	}
	return redirect(c, profilePath(user.Username))
}

// ownedPost loads the post behind :post_id for an edit. A requester other
// than the author is redirected to the post page.
func (s *Server) ownedPost(ctx context.Context, c *fiber.Ctx) (*models.User, *models.Post, error) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return nil, nil, err
	}
	user, err := s.requireUser(c)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if !post.IsOwnedBy(user.ID) {
		if rerr := redirect(c, postPath(post.ID)); rerr != nil {
			return nil, nil, rerr
		}
		return nil, nil, errResponseWritten
	}
	return user, post, nil
}

// EditPostForm handles GET /posts/:post_id/edit/
// @Summary Edit post form
// @Tags posts
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {object} object{form=FormContext,groups=[]models.Group,is_edit=bool,post=models.Post}
// @Success 302 "Redirect for non-authors"
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{post_id}/edit/ [get]
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	_, post, err := s.ownedPost(c.UserContext(), c)
	if err != nil {
		return respondError(c, err)
	}
	values := map[string]any{"text": post.Text, "group": post.GroupID, "image": post.Image}
	return s.renderPostForm(c, fiber.StatusOK, values, nil, post)
}

// EditPost handles POST /posts/:post_id/edit/
// @Summary Edit a post
// @Description Only the author may edit. Redirects to the post page.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Param post_id path int true "Post ID"
// @Param text formData string true "Post text"
// @Param group formData int false "Group ID"
// @Param image formData file false "Replacement image"
// @Success 302 "Redirect to the post"
// @Failure 400 {object} object{form=FormContext}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{post_id}/edit/ [post]
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, post, err := s.ownedPost(ctx, c)
	if err != nil {
		return respondError(c, err)
	}

	in, err := s.postInput(c)
	if err == nil {
		_, err = s.posts.EditPost(ctx, user.ID, post.ID, in)
	}
	switch {
	case err == nil, models.IsForbidden(err):
		return redirect(c, postPath(post.ID))
	case models.IsValidation(err):
		return s.renderPostForm(c, fiber.StatusBadRequest, postValues(in), fieldErrors(err), post)
	default:
		return respondError(c, err)
	}
}
