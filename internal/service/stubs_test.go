package service

import (
	"context"

	"scribe/internal/models"
)

// postRepoStub is a stub for repository.PostRepository. Unset functions
// return zero values.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
	listFn    func(context.Context, int, int) ([]models.Post, error)
	countFn   func(context.Context) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}
func (s *postRepoStub) ListByGroup(context.Context, uint, int, int) ([]models.Post, error) {
	return nil, nil
}
func (s *postRepoStub) CountByGroup(context.Context, uint) (int64, error) { return 0, nil }
func (s *postRepoStub) ListByAuthor(context.Context, uint, int, int) ([]models.Post, error) {
	return nil, nil
}
func (s *postRepoStub) CountByAuthor(context.Context, uint) (int64, error) { return 0, nil }
func (s *postRepoStub) ListFollowed(context.Context, uint, int, int) ([]models.Post, error) {
	return nil, nil
}
func (s *postRepoStub) CountFollowed(context.Context, uint) (int64, error) { return 0, nil }

// groupRepoStub is a stub for repository.GroupRepository backed by a map.
type groupRepoStub struct {
	groups map[uint]*models.Group
}

func (s *groupRepoStub) Create(_ context.Context, g *models.Group) error {
	if s.groups == nil {
		s.groups = map[uint]*models.Group{}
	}
	g.ID = uint(len(s.groups) + 1)
	s.groups[g.ID] = g
	return nil
}
func (s *groupRepoStub) GetByID(_ context.Context, id uint) (*models.Group, error) {
	if g, ok := s.groups[id]; ok {
		return g, nil
	}
	return nil, models.NewNotFoundError("Group", id)
}
func (s *groupRepoStub) GetBySlug(_ context.Context, slug string) (*models.Group, error) {
	for _, g := range s.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, models.NewNotFoundError("Group", slug)
}
func (s *groupRepoStub) List(context.Context) ([]models.Group, error) {
	out := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, *g)
	}
	return out, nil
}
func (s *groupRepoStub) Delete(_ context.Context, id uint) error {
	delete(s.groups, id)
	return nil
}

// userRepoStub is a stub for repository.UserRepository keyed by username.
type userRepoStub struct {
	byName  map[string]*models.User
	lookups int
}

func newUserRepoStub(users ...*models.User) *userRepoStub {
	s := &userRepoStub{byName: map[string]*models.User{}}
	for _, u := range users {
		s.byName[u.Username] = u
	}
	return s
}

func (s *userRepoStub) Create(_ context.Context, u *models.User) error {
	if _, taken := s.byName[u.Username]; taken {
		return models.NewFieldValidationError(map[string]string{"username": "taken"})
	}
	u.ID = uint(len(s.byName) + 1)
	s.byName[u.Username] = u
	return nil
}
func (s *userRepoStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range s.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.NewNotFoundError("User", id)
}
func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.lookups++
	if u, ok := s.byName[username]; ok {
		return u, nil
	}
	return nil, models.NewNotFoundError("User", username)
}
func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return nil, models.NewNotFoundError("User", email)
}
func (s *userRepoStub) Delete(context.Context, uint) error { return nil }

type edge struct{ user, author uint }

// followRepoStub is an in-memory repository.FollowRepository.
type followRepoStub struct {
	edges map[edge]*models.Follow
}

func newFollowRepoStub() *followRepoStub {
	return &followRepoStub{edges: map[edge]*models.Follow{}}
}

func (s *followRepoStub) Create(_ context.Context, userID, authorID uint) (*models.Follow, error) {
	k := edge{userID, authorID}
	if _, ok := s.edges[k]; ok {
		return nil, models.NewValidationError("already following")
	}
	f := &models.Follow{ID: uint(len(s.edges) + 1), UserID: userID, AuthorID: authorID}
	s.edges[k] = f
	return f, nil
}
func (s *followRepoStub) Exists(_ context.Context, userID, authorID uint) (bool, error) {
	_, ok := s.edges[edge{userID, authorID}]
	return ok, nil
}
func (s *followRepoStub) Get(_ context.Context, userID, authorID uint) (*models.Follow, error) {
	if f, ok := s.edges[edge{userID, authorID}]; ok {
		return f, nil
	}
	return nil, models.NewNotFoundError("Follow", authorID)
}
func (s *followRepoStub) Delete(_ context.Context, userID, authorID uint) error {
	k := edge{userID, authorID}
	if _, ok := s.edges[k]; !ok {
		return models.NewNotFoundError("Follow", authorID)
	}
	delete(s.edges, k)
	return nil
}
func (s *followRepoStub) GetOrCreate(ctx context.Context, userID, authorID uint) (*models.Follow, bool, error) {
	if f, ok := s.edges[edge{userID, authorID}]; ok {
		return f, false, nil
	}
	f, err := s.Create(ctx, userID, authorID)
	return f, err == nil, err
}

// commentRepoStub records created comments.
type commentRepoStub struct {
	created []*models.Comment
}

func (s *commentRepoStub) Create(_ context.Context, c *models.Comment) error {
	c.ID = uint(len(s.created) + 1)
	s.created = append(s.created, c)
	return nil
}
func (s *commentRepoStub) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	return nil, models.NewNotFoundError("Comment", id)
}
func (s *commentRepoStub) ListByPost(context.Context, uint) ([]models.Comment, error) {
	return nil, nil
}
func (s *commentRepoStub) Delete(context.Context, uint) error { return nil }

// imageStoreStub accepts anything starting with "GIF" and names files after the upload.
type imageStoreStub struct {
	saved   []string
	deleted []string
}

func (s *imageStoreStub) Validate(data []byte) (string, error) {
	if len(data) < 3 || string(data[:3]) != "GIF" {
		return "", models.NewFieldValidationError(map[string]string{"image": "Upload a valid image."})
	}
	return "gif", nil
}
func (s *imageStoreStub) Save(filename string, data []byte) (string, error) {
	if _, err := s.Validate(data); err != nil {
		return "", err
	}
	stored := models.UploadDir + filename
	s.saved = append(s.saved, stored)
	return stored, nil
}
func (s *imageStoreStub) Delete(stored string) error {
	s.deleted = append(s.deleted, stored)
	return nil
}
