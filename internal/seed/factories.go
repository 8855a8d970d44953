// Package seed provides helpers to create development and demo data. These
// helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password shared by all seeded users.
const DefaultPassword = "password123"

var skillPool = []string{
	"Go", "TypeScript", "Python", "Rust", "JavaScript", "SQL",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "Terraform",
	"React", "Vue", "GraphQL", "gRPC", "Kafka", "AWS", "GCP",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, rng: rand.New(rand.NewSource(seed))}
}

// pastTime returns a timestamp up to maxDays in the past, spreading seeded
// content over a realistic timeline.
func (f *Factory) pastTime(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// User creates a user with a fake identity and the shared default password.
func (f *Factory) User(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	name := gofakeit.Name()
	email := strings.ToLower(fmt.Sprintf("%s.%d@%s",
		strings.ReplaceAll(name, " ", "."), f.rng.Intn(100000), gofakeit.DomainName()))

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Avatar:   gravatar.URL(email),
	}
	user.CreatedAt = f.pastTime(365)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Profile creates a developer profile for the given user.
func (f *Factory) Profile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	nSkills := 2 + f.rng.Intn(5)
	skills := make([]string, 0, nSkills)
	for _, i := range f.rng.Perm(len(skillPool))[:nSkills] {
		skills = append(skills, skillPool[i])
	}

	handle := strings.ToLower(strings.ReplaceAll(user.Name, " ", ""))
	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         gofakeit.JobTitle(),
		Skills:         skills,
		Bio:            gofakeit.Sentence(12),
		GithubUsername: handle,
		Social: models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", handle),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", handle),
		},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	// a couple of work history and education entries per profile
	for i := 0; i < 1+f.rng.Intn(3); i++ {
		from := f.pastTime(5 * 365)
		to := from.Add(time.Duration(90+f.rng.Intn(900)) * 24 * time.Hour)
		exp := models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			To:          &to,
			Description: gofakeit.Sentence(10),
		}
		if i == 0 {
			exp.To = nil
			exp.Current = true
		}
		if err := f.db.Create(&exp).Error; err != nil {
			return nil, err
		}
	}

	from := f.pastTime(10 * 365)
	to := from.Add(4 * 365 * 24 * time.Hour)
	edu := models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
	}
	if err := f.db.Create(&edu).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// Post creates a post authored by the given user, with the author snapshot
// stamped the way the API does it.
func (f *Factory) Post(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.HackerPhrase(),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	post.CreatedAt = f.pastTime(90)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Comment attaches a comment by the given user to the given post.
func (f *Factory) Comment(post *models.Post, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(8),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	comment.CreatedAt = post.CreatedAt.Add(time.Duration(f.rng.Intn(72)) * time.Hour)

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Like records a like by the given user on the given post. Duplicate pairs
// are skipped silently so callers can pick likers at random.
func (f *Factory) Like(post *models.Post, user *models.User) error {
	like := models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(&like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}
