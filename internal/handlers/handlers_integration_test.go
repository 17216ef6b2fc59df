package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"collabspace/internal/models"
	"collabspace/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp builds the full app over a private in-memory SQLite database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	app := server.New(server.Options{
		DB:            db,
		BcryptCost:    bcrypt.MinCost,
		DisableLogger: true,
	})
	return app, db
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// doJSON sends a request and decodes the JSON response into out when out is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func register(t *testing.T, app *fiber.App, name, email, password string) float64 {
	t.Helper()
	var resp map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, nil, &resp)
	require.Equal(t, http.StatusOK, status)
	return resp["user_id"].(float64)
}

func createSpace(t *testing.T, app *fiber.App, name string) uint {
	t.Helper()
	var resp map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/spaces", map[string]interface{}{
		"space_name":  name,
		"tags":        []string{"go"},
		"category":    "tools",
		"github_id":   "octo/" + name,
		"description": "A space",
	}, nil, &resp)
	require.Equal(t, http.StatusOK, status)
	return uint(resp["space_id"].(float64))
}

func TestRegisterAndLogin(t *testing.T) {
	app, db := setupApp(t)

	userID := register(t, app, "Ada", "ada@example.com", "password123")
	assert.NotZero(t, userID)

	// Duplicate registration
	var dup map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"name": "Imposter", "email": "ada@example.com", "password": "other",
	}, nil, &dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", dup["detail"])

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "ada@example.com").Error)
	assert.Equal(t, "Ada", stored.Name)
	assert.NotEqual(t, "password123", stored.Password)

	// Successful login
	var login map[string]interface{}
	status = doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email": "ada@example.com", "password": "password123",
	}, nil, &login)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login successful", login["message"])
	user := login["user"].(map[string]interface{})
	assert.Equal(t, userID, user["id"])
	assert.Equal(t, "Ada", user["name"])
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "password")

	// Wrong password
	status = doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	}, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Empty password is a failed login, not a validation error
	status = doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email": "ada@example.com", "password": "",
	}, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Unknown email
	status = doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	}, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupApp(t)

	var resp map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"name": "  ", "email": "ada@example.com", "password": "password123",
	}, nil, &resp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", resp["detail"])
	assert.Contains(t, resp["errors"], "Name")

	// bcrypt rejects passwords over 72 bytes; that is bad input, not a server fault.
	status = doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"name": "Ada", "email": "long@example.com", "password": strings.Repeat("x", 73),
	}, nil, &resp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp["detail"], "at most 72 bytes")

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res.Body.Close()
}

func TestMeRequiresIdentity(t *testing.T) {
	app, _ := setupApp(t)
	register(t, app, "Ada", "ada@example.com", "password123")

	status := doJSON(t, app, http.MethodGet, "/me", nil, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, app, http.MethodGet, "/me", nil, map[string]string{"email": "ghost@example.com"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var me map[string]interface{}
	status = doJSON(t, app, http.MethodGet, "/me", nil, map[string]string{"email": "ada@example.com"}, &me)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada", me["name"])
	assert.NotContains(t, me, "password")
}

func TestCreateAndListSpaces(t *testing.T) {
	app, db := setupApp(t)

	var created map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/spaces", map[string]interface{}{
		"space_name":  "Compiler Club",
		"tags":        []string{"a", " ", "b,c"},
		"category":    "education",
		"github_id":   "octo/compiler",
		"description": "Build a toy compiler",
	}, nil, &created)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Space created successfully", created["message"])
	spaceID := uint(created["space_id"].(float64))

	var stored models.Space
	require.NoError(t, db.First(&stored, spaceID).Error)
	assert.Equal(t, "a,b,c", stored.Tags)

	var spaces []map[string]interface{}
	status = doJSON(t, app, http.MethodGet, "/spaces", nil, nil, &spaces)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, spaces, 1)
	assert.Equal(t, "Compiler Club", spaces[0]["space_name"])
	assert.Equal(t, []interface{}{"a", "b", "c"}, spaces[0]["tags"])
	assert.Equal(t, []interface{}{}, spaces[0]["collaborators"])
}

func TestCreateSpaceValidation(t *testing.T) {
	app, _ := setupApp(t)

	base := func() map[string]interface{} {
		return map[string]interface{}{
			"space_name":  "Space",
			"tags":        []string{"go"},
			"category":    "tools",
			"github_id":   "octo/space",
			"description": "desc",
		}
	}

	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{"missing name", "space_name", ""},
		{"blank category", "category", "   "},
		{"blank tags", "tags", []string{" ", ""}},
		{"empty tags", "tags", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			body[tt.field] = tt.value
			status := doJSON(t, app, http.MethodPost, "/spaces", body, nil, nil)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}

	var spaces []map[string]interface{}
	doJSON(t, app, http.MethodGet, "/spaces", nil, nil, &spaces)
	assert.Empty(t, spaces)
}

func TestCreateSpaceStorageError(t *testing.T) {
	app, db := setupApp(t)
	require.NoError(t, db.Migrator().DropTable(&models.CollaborationRequest{}, &models.Space{}))

	var resp map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/spaces", map[string]interface{}{
		"space_name":  "Space",
		"tags":        []string{"go"},
		"category":    "tools",
		"github_id":   "octo/space",
		"description": "desc",
	}, nil, &resp)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", resp["detail"])
}

func TestCollaborationFlow(t *testing.T) {
	app, db := setupApp(t)

	// Missing space
	var missing map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/collaborate", map[string]interface{}{
		"space_id": 99, "collaborator_email": "dev@example.com",
	}, nil, &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Space not found", missing["detail"])

	// Zero matches no space either
	status = doJSON(t, app, http.MethodPost, "/collaborate", map[string]interface{}{
		"space_id": 0, "collaborator_email": "dev@example.com",
	}, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	first := createSpace(t, app, "first")
	second := createSpace(t, app, "second")

	var ok map[string]interface{}
	status = doJSON(t, app, http.MethodPost, "/collaborate", map[string]interface{}{
		"space_id": first, "collaborator_email": "dev@example.com",
	}, nil, &ok)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Collaboration request sent successfully", ok["message"])

	// Duplicate request
	status = doJSON(t, app, http.MethodPost, "/collaborate", map[string]interface{}{
		"space_id": first, "collaborator_email": "dev@example.com",
	}, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var count int64
	require.NoError(t, db.Model(&models.CollaborationRequest{}).Where("space_id = ?", first).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	status = doJSON(t, app, http.MethodPost, "/collaborate", map[string]interface{}{
		"space_id": second, "collaborator_email": "dev@example.com",
	}, nil, nil)
	require.Equal(t, http.StatusOK, status)

	// Approving a pair with no request
	approvePath := func(spaceID uint, email string) string {
		return fmt.Sprintf("/approve_collaboration?space_id=%d&collaborator_email=%s", spaceID, email)
	}
	status = doJSON(t, app, http.MethodPost, approvePath(first, "nobody@example.com"), nil, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Approving twice is idempotent
	for i := 0; i < 2; i++ {
		var approved map[string]interface{}
		status = doJSON(t, app, http.MethodPost, approvePath(first, "dev@example.com"), nil, nil, &approved)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Collaboration approved successfully", approved["message"])
	}
	require.NoError(t, db.Model(&models.CollaborationRequest{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var notifications []models.Notification
	status = doJSON(t, app, http.MethodGet, "/notifications?email=dev@example.com", nil, nil, &notifications)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []models.Notification{
		{SpaceID: first, SpaceName: "first", Status: models.StatusApproved},
		{SpaceID: second, SpaceName: "second", Status: models.StatusPending},
	}, notifications)

	status = doJSON(t, app, http.MethodGet, "/notifications?email=stranger@example.com", nil, nil, &notifications)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, notifications)

	status = doJSON(t, app, http.MethodGet, "/notifications", nil, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
