package server

import (
	"net/http"
	"testing"
	"time"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertProfile(t *testing.T, app *fiber.App, token string, fields map[string]string) map[string]any {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/profile", token, fields)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	decodeJSON(t, resp, &profile)
	return profile
}

func TestUpsertProfile_Create(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")
	profile := upsertProfile(t, app, token, map[string]string{
		"status":  "Senior Developer",
		"skills":  "Go, PostgreSQL, Redis",
		"company": "Acme",
		"twitter": "https://twitter.com/dev",
	})

	assert.Equal(t, "Senior Developer", profile["status"])
	assert.Equal(t, []any{"Go", "PostgreSQL", "Redis"}, profile["skills"])
	assert.Equal(t, "Acme", profile["company"])

	social := profile["social"].(map[string]any)
	assert.Equal(t, "https://twitter.com/dev", social["twitter"])
}

func TestUpsertProfile_Update(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")
	created := upsertProfile(t, app, token, map[string]string{
		"status": "Junior Developer",
		"skills": "Go",
	})
	updated := upsertProfile(t, app, token, map[string]string{
		"status": "Senior Developer",
		"skills": "Go, Kubernetes",
	})

	assert.Equal(t, created["id"], updated["id"])
	assert.Equal(t, "Senior Developer", updated["status"])
	assert.Equal(t, []any{"Go", "Kubernetes"}, updated["skills"])
}

func TestUpsertProfile_Validation(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")

	resp := doJSON(t, app, http.MethodPost, "/api/profile", token, map[string]string{
		"skills": "Go",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMyProfile_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")

	resp := doJSON(t, app, http.MethodGet, "/api/profile/me", token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, models.CodeNotFound, body.Code)
}

func TestGetProfiles(t *testing.T) {
	app, _ := newTestApp(t)

	aliceToken := registerUser(t, app, "Alice", "alice@x.com", "secret1")
	bobToken := registerUser(t, app, "Bob", "bob@x.com", "secret1")
	upsertProfile(t, app, aliceToken, map[string]string{"status": "Developer", "skills": "Go"})
	upsertProfile(t, app, bobToken, map[string]string{"status": "Designer", "skills": "Figma"})

	resp := doJSON(t, app, http.MethodGet, "/api/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profiles []map[string]any
	decodeJSON(t, resp, &profiles)
	assert.Len(t, profiles, 2)
}

func TestGetProfileByUserID(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")
	upsertProfile(t, app, token, map[string]string{"status": "Developer", "skills": "Go"})

	// the first registered user gets ID 1
	resp := doJSON(t, app, http.MethodGet, "/api/profile/user/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	decodeJSON(t, resp, &profile)
	user := profile["user"].(map[string]any)
	assert.Equal(t, "Dev", user["name"])
}

func TestGetProfileByUserID_Errors(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")

	tests := []struct {
		name string
		path string
		code string
	}{
		{"no profile", "/api/profile/user/999", models.CodeNotFound},
		{"malformed id", "/api/profile/user/abc", models.CodeInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodGet, tt.path, token, nil)
			require.Equal(t, http.StatusNotFound, resp.StatusCode)

			var body struct {
				Code string `json:"code"`
			}
			decodeJSON(t, resp, &body)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestDeleteProfile(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")
	upsertProfile(t, app, token, map[string]string{"status": "Developer", "skills": "Go"})

	resp := doJSON(t, app, http.MethodDelete, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/profile/me", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExperienceRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")
	upsertProfile(t, app, token, map[string]string{"status": "Developer", "skills": "Go"})

	resp := doJSON(t, app, http.MethodPut, "/api/profile/experience", token, map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		"current": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	decodeJSON(t, resp, &profile)
	experience := profile["experience"].([]any)
	require.Len(t, experience, 1)

	entry := experience[0].(map[string]any)
	assert.Equal(t, "Engineer", entry["title"])
	expID := uint(entry["id"].(float64))

	resp = doJSON(t, app, http.MethodDelete,
		"/api/profile/experience/"+itoa(expID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeJSON(t, resp, &profile)
	assert.Empty(t, profile["experience"])
}

func TestEducationRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")
	upsertProfile(t, app, token, map[string]string{"status": "Developer", "skills": "Go"})

	resp := doJSON(t, app, http.MethodPut, "/api/profile/education", token, map[string]any{
		"school":         "State University",
		"degree":         "BSc",
		"field_of_study": "Computer Science",
		"from":           time.Now().Add(-4 * 365 * 24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	decodeJSON(t, resp, &profile)
	education := profile["education"].([]any)
	require.Len(t, education, 1)

	entry := education[0].(map[string]any)
	eduID := uint(entry["id"].(float64))

	resp = doJSON(t, app, http.MethodDelete,
		"/api/profile/education/"+itoa(eduID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeJSON(t, resp, &profile)
	assert.Empty(t, profile["education"])
}

func TestExperience_MissingProfile(t *testing.T) {
	app, _ := newTestApp(t)

	token := registerUser(t, app, "Dev", "dev@x.com", "secret1")

	resp := doJSON(t, app, http.MethodPut, "/api/profile/experience", token, map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
