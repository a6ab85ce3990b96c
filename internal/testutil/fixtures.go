package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	username string
	password string
	name     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		username: fmt.Sprintf("testuser_%s", suffix),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Username:     b.username,
		Name:         b.name,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"username": b.username,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.AuthURL("/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Email:    authResp.User.Email,
		Username: authResp.User.Username,
	}

	return user, authResp.AccessToken
}

// ProjectBuilder creates test projects with a builder pattern
type ProjectBuilder struct {
	owner      *domain.User
	name       string
	isPublic   bool
	isFeatured bool
	updatedAt  time.Time
}

// NewProjectBuilder creates a new ProjectBuilder with default values
func NewProjectBuilder(owner *domain.User) *ProjectBuilder {
	return &ProjectBuilder{
		owner:     owner,
		name:      fmt.Sprintf("project_%s", uuid.New().String()[:8]),
		updatedAt: time.Now(),
	}
}

// WithName sets the project name
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.name = name
	return b
}

// Featured marks the project public and featured
func (b *ProjectBuilder) Featured() *ProjectBuilder {
	b.isPublic = true
	b.isFeatured = true
	return b
}

// Public marks the project public without featuring it
func (b *ProjectBuilder) Public() *ProjectBuilder {
	b.isPublic = true
	return b
}

// WithUpdatedAt sets the updated timestamp, for ordering tests
func (b *ProjectBuilder) WithUpdatedAt(at time.Time) *ProjectBuilder {
	b.updatedAt = at
	return b
}

// Build creates the project in the database
func (b *ProjectBuilder) Build(t *testing.T, db *gorm.DB) *domain.Project {
	t.Helper()

	project := &domain.Project{
		ID:         uuid.New(),
		Name:       b.name,
		Framework:  domain.FrameworkVanilla,
		Status:     domain.ProjectStatusDraft,
		IsPublic:   b.isPublic,
		IsFeatured: b.isFeatured,
		UserID:     b.owner.ID,
		CreatedAt:  b.updatedAt,
		UpdatedAt:  b.updatedAt,
	}

	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// GenerationBuilder creates test generations
type GenerationBuilder struct {
	project *domain.Project
	prompt  string
	html    string
	files   map[string]string
	created time.Time
}

// NewGenerationBuilder creates a new GenerationBuilder with default values
func NewGenerationBuilder(project *domain.Project) *GenerationBuilder {
	return &GenerationBuilder{
		project: project,
		prompt:  "a landing page",
		html:    "<h1>Hello</h1>",
		created: time.Now(),
	}
}

// WithPrompt sets the prompt
func (b *GenerationBuilder) WithPrompt(prompt string) *GenerationBuilder {
	b.prompt = prompt
	return b
}

// WithFiles sets the files blob
func (b *GenerationBuilder) WithFiles(files map[string]string) *GenerationBuilder {
	b.files = files
	return b
}

// WithCreatedAt sets the creation timestamp, for ordering tests
func (b *GenerationBuilder) WithCreatedAt(at time.Time) *GenerationBuilder {
	b.created = at
	return b
}

// Build creates the generation in the database
func (b *GenerationBuilder) Build(t *testing.T, db *gorm.DB) *domain.Generation {
	t.Helper()

	generation := &domain.Generation{
		ID:        uuid.New(),
		ProjectID: b.project.ID,
		Prompt:    b.prompt,
		HTML:      b.html,
		CreatedAt: b.created,
	}
	if b.files != nil {
		blob, err := json.Marshal(b.files)
		if err != nil {
			t.Fatalf("failed to marshal files: %v", err)
		}
		generation.Files = datatypes.JSON(blob)
	}

	if err := db.Create(generation).Error; err != nil {
		t.Fatalf("failed to create generation: %v", err)
	}

	return generation
}
