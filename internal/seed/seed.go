package seed

import (
	"fmt"
	"log"

	"devconnect/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated users, profiles, posts,
// comments and likes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Child tables go first so foreign keys
// stay satisfied on databases that enforce them.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Comment{},
		&models.Like{},
		&models.Experience{},
		&models.Education{},
		&models.Profile{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// Run generates the full data set: users with profiles, posts spread across
// authors, and random engagement on each post.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.User()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)

		// roughly two thirds of users fill in a profile
		if s.factory.rng.Intn(3) > 0 {
			if _, err := s.factory.Profile(user); err != nil {
				return fmt.Errorf("seed profile: %w", err)
			}
		}
	}
	log.Printf("seeded %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.Post(author)
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("seeded %d posts", len(posts))

	var likes, comments int
	for _, post := range posts {
		for i := 0; i < s.factory.rng.Intn(6); i++ {
			liker := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.Like(post, liker); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			likes++
		}
		for i := 0; i < s.factory.rng.Intn(4); i++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.Comment(post, commenter); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			comments++
		}
	}
	log.Printf("seeded %d likes, %d comments", likes, comments)

	return nil
}
