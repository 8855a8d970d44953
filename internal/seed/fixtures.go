package seed

import (
	"fmt"
	"os"
	"strings"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML shape for deterministic seed data. Generated data from
// the factories covers volume; fixtures cover the accounts developers want to
// log in as.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

// FixtureUser declares one user, optionally with a profile and posts.
type FixtureUser struct {
	Name     string   `yaml:"name"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Status   string   `yaml:"status"`
	Skills   []string `yaml:"skills"`
	Posts    []string `yaml:"posts"`
}

// LoadFixture reads and parses a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses YAML fixture content.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, u := range fx.Users {
		if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" {
			return nil, fmt.Errorf("fixture user %d: name and email are required", i)
		}
	}
	return &fx, nil
}

// ApplyFixture creates the declared users, profiles and posts.
func (s *Seeder) ApplyFixture(fx *Fixture) error {
	for _, fu := range fx.Users {
		password := fu.Password
		if password == "" {
			password = DefaultPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			return err
		}

		user := &models.User{
			Name:     fu.Name,
			Email:    strings.ToLower(fu.Email),
			Password: string(hashed),
			Avatar:   gravatar.URL(fu.Email),
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("fixture user %q: %w", fu.Email, err)
		}

		if fu.Status != "" {
			profile := &models.Profile{
				UserID: user.ID,
				Status: fu.Status,
				Skills: fu.Skills,
			}
			if err := s.db.Create(profile).Error; err != nil {
				return fmt.Errorf("fixture profile %q: %w", fu.Email, err)
			}
		}

		for _, text := range fu.Posts {
			post := &models.Post{
				UserID: user.ID,
				Text:   text,
				Name:   user.Name,
				Avatar: user.Avatar,
			}
			if err := s.db.Create(post).Error; err != nil {
				return fmt.Errorf("fixture post for %q: %w", fu.Email, err)
			}
		}
	}
	return nil
}
