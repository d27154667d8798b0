package seed

import (
	"context"
	"testing"

	"scribe/internal/models"
	"scribe/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDefaultGroupsAreValid(t *testing.T) {
	groups, err := DefaultGroups()
	require.NoError(t, err)
	assert.NotEmpty(t, groups)
}

func TestLoadGroups(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "valid", yaml: "- {title: Cats, slug: cats, description: meow}\n"},
		{name: "bad slug", yaml: "- {title: Cats, slug: 'big cats'}\n", wantErr: "slug"},
		{name: "missing title", yaml: "- {slug: cats}\n", wantErr: "title"},
		{name: "duplicate slug", yaml: "- {title: A, slug: a}\n- {title: B, slug: a}\n", wantErr: "duplicate"},
		{name: "not a list", yaml: "title: Cats\n", wantErr: "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := LoadGroups([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, groups, 1)
			assert.Equal(t, "cats", groups[0].Slug)
		})
	}
}

func TestGroupsUpsertIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := []GroupFixture{{Title: "Cats", Slug: "cats", Description: "v1"}}

	first, err := Groups(db, fixtures)
	require.NoError(t, err)

	fixtures[0].Description = "v2"
	second, err := Groups(db, fixtures)
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)
	var stored []models.Group
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "v2", stored[0].Description)
}

func TestSeederRun(t *testing.T) {
	db := testutil.NewTestDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)
	seeder.WithGroups([]GroupFixture{
		{Title: "Cats", Slug: "cats"},
		{Title: "Dogs", Slug: "dogs"},
	})

	opts := Options{
		NumUsers:       5,
		NumPosts:       20,
		NumComments:    10,
		FollowsPerUser: 2,
		GroupedRatio:   0.5,
		RandSeed:       42,
		HashCost:       bcrypt.MinCost,
	}
	summary, err := seeder.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Groups: 2, Users: 5, Posts: 20, Comments: 10, Follows: 10}, summary)

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(5), count(&models.User{}))
	assert.Equal(t, int64(20), count(&models.Post{}))
	assert.Equal(t, int64(10), count(&models.Comment{}))
	assert.Equal(t, int64(10), count(&models.Follow{}))

	var selfFollows int64
	require.NoError(t, db.Model(&models.Follow{}).Where("user_id = author_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))

	// A clean run replaces everything instead of piling up.
	opts.ShouldClean = true
	_, err = seeder.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count(&models.User{}))
	assert.Equal(t, int64(2), count(&models.Group{}))
}

func TestSeederRunWithoutUsers(t *testing.T) {
	db := testutil.NewTestDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)

	summary, err := seeder.Run(context.Background(), Options{NumPosts: 10, HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.Zero(t, summary.Posts)
	assert.Positive(t, summary.Groups)
}
