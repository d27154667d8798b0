// Command seed fills the database with demo groups, users and posts.
package main

import (
	"context"
	"flag"
	"log"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numComments := flag.Int("comments", 300, "Number of comments to create")
	follows := flag.Int("follows", 5, "Authors each user follows")
	grouped := flag.Float64("grouped", 0.6, "Share of posts placed in a group")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randSeed := flag.Int64("rand-seed", 0, "Seed for reproducible data (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to load group fixtures: %v", err)
	}

	summary, err := seeder.Run(context.Background(), seed.Options{
		NumUsers:       *numUsers,
		NumPosts:       *numPosts,
		NumComments:    *numComments,
		FollowsPerUser: *follows,
		GroupedRatio:   *grouped,
		ShouldClean:    *shouldClean,
		RandSeed:       *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d groups, %d users, %d posts, %d comments, %d follows",
		summary.Groups, summary.Users, summary.Posts, summary.Comments, summary.Follows)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
