package server

import (
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profileRequest is the JSON payload shared by profile create/update.
type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// historyRequest is the shared JSON payload for experience/education entries.
type historyRequest struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	Location     string     `json:"location"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// GetMyProfile handles GET /api/profile/me
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{error=string}
// @Router /profile/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetOwnProfile(c.Context(), s.currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
// @Summary Create or update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body profileRequest true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} object{error=string}
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpsertProfile(c.Context(), service.UpsertProfileInput{
		UserID:         s.currentUserID(c),
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetProfiles handles GET /api/profile
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Profile
// @Router /profile [get]
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListProfiles(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:userId
// @Summary Get a profile by user ID
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{error=string}
// @Router /profile/user/{userId} [get]
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteProfile handles DELETE /api/profile
// @Summary Delete own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /profile [delete]
func (s *Server) DeleteProfile(c *fiber.Ctx) error {
	if err := s.profileService.DeleteProfile(c.Context(), s.currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile removed"})
}

// AddExperience handles PUT /api/profile/experience
// @Summary Add a work history entry to own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body historyRequest true "Experience entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /profile/experience [put]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req historyRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.Context(), service.ExperienceInput{
		UserID:      s.currentUserID(c),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:expId
// @Summary Remove a work history entry from own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param expId path int true "Experience ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{error=string}
// @Router /profile/experience/{expId} [delete]
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := s.parseID(c, "expId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.DeleteExperience(c.Context(), s.currentUserID(c), expID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
// @Summary Add an education entry to own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body historyRequest true "Education entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /profile/education [put]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req historyRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.Context(), service.EducationInput{
		UserID:       s.currentUserID(c),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:eduId
// @Summary Remove an education entry from own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param eduId path int true "Education ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{error=string}
// @Router /profile/education/{eduId} [delete]
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := s.parseID(c, "eduId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.DeleteEducation(c.Context(), s.currentUserID(c), eduID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
