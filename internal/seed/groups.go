package seed

import (
	_ "embed"
	"fmt"

	"scribe/internal/models"
	"scribe/internal/validation"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed groups.yml
var defaultGroups []byte

// GroupFixture is one group entry of a YAML fixture file.
type GroupFixture struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// LoadGroups parses a YAML list of groups and validates every slug.
func LoadGroups(data []byte) ([]GroupFixture, error) {
	var fixtures []GroupFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse group fixtures: %w", err)
	}

	seen := make(map[string]struct{}, len(fixtures))
	for i, g := range fixtures {
		if g.Title == "" {
			return nil, fmt.Errorf("group %d: title is required", i)
		}
		if err := validation.ValidateGroupSlug(g.Slug); err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Title, err)
		}
		if _, dup := seen[g.Slug]; dup {
			return nil, fmt.Errorf("group %q: duplicate slug %q", g.Title, g.Slug)
		}
		seen[g.Slug] = struct{}{}
	}
	return fixtures, nil
}

// DefaultGroups returns the groups bundled with the seeder.
func DefaultGroups() ([]GroupFixture, error) {
	return LoadGroups(defaultGroups)
}

// Groups upserts fixtures by slug and returns the stored rows. Running it
// twice leaves one row per slug.
func Groups(db *gorm.DB, fixtures []GroupFixture) ([]models.Group, error) {
	groups := make([]models.Group, 0, len(fixtures))
	for _, item := range fixtures {
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description"}),
		}).Create(&group).Error; err != nil {
			return nil, fmt.Errorf("upsert group %q: %w", item.Slug, err)
		}

		// Some drivers leave the ID unset after an upsert that updated.
		if err := db.Where("slug = ?", item.Slug).First(&group).Error; err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
