// Command main runs the database seeder for FoodMedia.
package main

import (
	"flag"
	"log"
	"strings"

	"foodmedia/internal/config"
	"foodmedia/internal/database"
	"foodmedia/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named seeding preset (overrides count flags)")
	presetFile := flag.String("preset-file", "", "YAML file with additional presets")
	flag.Parse()

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}

	presets, err := seed.LoadPresets(*presetFile)
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}

	if *preset != "" {
		p, ok := presets[*preset]
		if !ok {
			log.Fatalf("Unknown preset %q (available: %s)", *preset,
				strings.Join(seed.PresetNames(presets), ", "))
		}
		opts = seed.Options{NumUsers: p.Users, NumPosts: p.Posts, ShouldClean: p.Clean}
		log.Printf("Applying preset: %s\n", p.Name)
	}

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts, clean=%v\n", opts.NumUsers, opts.NumPosts, opts.ShouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
