package service

import (
	"context"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// UpsertProfileInput carries the writable profile fields. Skills arrive as a
// single comma separated string, matching the API contract.
type UpsertProfileInput struct {
	UserID         uint
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

type ExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if err := validation.ValidateProfileStatus(in.Status); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	skills, err := validation.ParseSkills(in.Skills)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	profile := &models.Profile{
		UserID:         in.UserID,
		Company:        strings.TrimSpace(in.Company),
		Website:        strings.TrimSpace(in.Website),
		Location:       strings.TrimSpace(in.Location),
		Status:         strings.TrimSpace(in.Status),
		Skills:         skills,
		Bio:            strings.TrimSpace(in.Bio),
		GithubUsername: strings.TrimSpace(in.GithubUsername),
		Social: models.SocialLinks{
			Youtube:   strings.TrimSpace(in.Youtube),
			Twitter:   strings.TrimSpace(in.Twitter),
			Facebook:  strings.TrimSpace(in.Facebook),
			Linkedin:  strings.TrimSpace(in.Linkedin),
			Instagram: strings.TrimSpace(in.Instagram),
		},
	}
	return s.profileRepo.Upsert(ctx, profile)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, userID uint) error {
	return s.profileRepo.Delete(ctx, userID)
}

func (s *ProfileService) AddExperience(ctx context.Context, in ExperienceInput) (*models.Profile, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		return nil, models.NewValidationError("Company is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	exp := &models.Experience{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: strings.TrimSpace(in.Description),
	}
	return s.profileRepo.AddExperience(ctx, in.UserID, exp)
}

func (s *ProfileService) DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	return s.profileRepo.DeleteExperience(ctx, userID, expID)
}

func (s *ProfileService) AddEducation(ctx context.Context, in EducationInput) (*models.Profile, error) {
	if strings.TrimSpace(in.School) == "" {
		return nil, models.NewValidationError("School is required")
	}
	if strings.TrimSpace(in.Degree) == "" {
		return nil, models.NewValidationError("Degree is required")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		return nil, models.NewValidationError("Field of study is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	edu := &models.Education{
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  strings.TrimSpace(in.Description),
	}
	return s.profileRepo.AddEducation(ctx, in.UserID, edu)
}

func (s *ProfileService) DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	return s.profileRepo.DeleteEducation(ctx, userID, eduID)
}
