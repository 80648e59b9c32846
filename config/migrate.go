package config

import (
	"log"

	"github.com/codewith-lab/BlogHive/models"
	"gorm.io/gorm"
)

var seedArticles = []models.Article{
	{
		Name:  "learn-react",
		Title: "The Fastest Way to Learn React",
		Content: models.StringList{
			"Welcome! Today we're going to be talking about the fastest way to learn React.",
			"We'll be discussing some topics such as proin congue ligula id risus posuere, vel eleifend ex egestas.",
			"Sed auctor risus ut turpis tempor, sit amet venenatis lorem porta.",
		},
	},
	{
		Name:  "learn-node",
		Title: "How to Build a Node Server",
		Content: models.StringList{
			"This article walks you through the process of setting up a basic server in Node.",
			"Donec vel mauris lectus. Etiam nec lectus urna. Sed sodales ultrices dui, quis malesuada erat luctus vel.",
		},
	},
	{
		Name:  "mongodb",
		Title: "Learn MongoDB",
		Content: models.StringList{
			"MongoDB is a document database. Articles, comments, everything lives in flexible documents.",
			"Pellentesque sed rutrum nunc, quis efficitur justo. Fusce blandit enim eget lacus vulputate condimentum.",
		},
	},
}

// MigrateDB runs database migrations and seeds the starter articles.
// Seeding is idempotent: existing articles keep their upvotes and comments.
func MigrateDB(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Article{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	for _, a := range seedArticles {
		article := a
		if err := db.Where("name = ?", article.Name).FirstOrCreate(&article).Error; err != nil {
			log.Fatalf("Failed to seed article %s: %v", a.Name, err)
		}
	}

	log.Println("Database migration completed successfully")
}
