package server

import (
	"scribe/internal/middleware"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
// @Summary Global feed
// @Description All posts, newest first. Pages are cached for INDEX_CACHE_SECONDS.
// @Tags feeds
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} service.Page
// @Router / [get]
func (s *Server) Index(c *fiber.Ctx) error {
	doc, err := s.feeds.GlobalDocument(c.UserContext(), requestedPage(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(doc)
}

// GroupPosts handles GET /group/:slug/
// @Summary Group feed
// @Tags feeds
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query int false "Page number"
// @Success 200 {object} service.GroupFeed
// @Failure 404 {object} models.ErrorResponse
// @Router /group/{slug}/ [get]
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	feed, err := s.feeds.Group(c.UserContext(), c.Params("slug"), requestedPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// Profile handles GET /profile/:username/
// @Summary Author profile feed
// @Tags feeds
// @Produce json
// @Param username path string true "Author username"
// @Param page query int false "Page number"
// @Success 200 {object} service.ProfileFeed
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{username}/ [get]
func (s *Server) Profile(c *fiber.Ctx) error {
	requesterID, _ := middleware.CurrentUserID(c)
	feed, err := s.feeds.Profile(c.UserContext(), c.Params("username"), requesterID, requestedPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// postDetailResponse is the post page: the post, its comments and the
// comment form.
type postDetailResponse struct {
	*service.PostDetail
	Form FormContext `json:"form"`
}

// PostDetail handles GET /posts/:post_id/
// @Summary Post detail with comments
// @Tags posts
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {object} service.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{post_id}/ [get]
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return respondError(c, err)
	}
	detail, err := s.feeds.PostDetail(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(postDetailResponse{
		PostDetail: detail,
		Form:       FormContext{Fields: commentFormFields},
	})
}

// FollowIndex handles GET /follow/
// @Summary Following feed
// @Description Posts by the authors the current user follows.
// @Tags feeds
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} service.Page
// @Success 302 "Redirect to login"
// @Router /follow/ [get]
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.feeds.Following(c.UserContext(), user.ID, requestedPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"page_obj": page})
}
