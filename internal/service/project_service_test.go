package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository/postgres"
	"github.com/lovico/lovico-server/internal/schema"
	"github.com/lovico/lovico-server/internal/service"
	"github.com/lovico/lovico-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   schema.CreateProject
		wantErr bool
	}{
		{
			name:  "successful creation",
			input: schema.CreateProject{Name: "Demo", Description: "a demo site"},
		},
		{
			name:    "empty name",
			input:   schema.CreateProject{Name: ""},
			wantErr: true,
		},
		{
			name:    "name over 100 chars",
			input:   schema.CreateProject{Name: strings.Repeat("x", 101)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := svc.Create(ctx, owner.ID, tt.input)

			if tt.wantErr {
				var verr *schema.ValidationError
				require.ErrorAs(t, err, &verr)

				// Nothing may be persisted on validation failure
				var count int64
				testDB.DB.Model(&domain.Project{}).Where("name = ?", tt.input.Name).Count(&count)
				assert.Zero(t, count)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner.ID, project.UserID)
			assert.Equal(t, domain.ProjectStatusDraft, project.Status)
			assert.Equal(t, domain.FrameworkVanilla, project.Framework)
		})
	}
}

func TestProjectService_OwnershipIsNotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	ownerB, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	callerA, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	project := testutil.NewProjectBuilder(ownerB).Build(t, testDB.DB)

	name := "hijacked"

	t.Run("get", func(t *testing.T) {
		_, err := svc.GetByID(ctx, callerA.ID, project.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		_, err := svc.Update(ctx, callerA.ID, project.ID, schema.UpdateProject{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.Delete(ctx, callerA.ID, project.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("create generation", func(t *testing.T) {
		_, err := svc.CreateGeneration(ctx, callerA.ID, schema.CreateGeneration{
			ProjectID: project.ID,
			Prompt:    "p",
			HTML:      "<h1/>",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get generation", func(t *testing.T) {
		generation := testutil.NewGenerationBuilder(project).Build(t, testDB.DB)
		_, err := svc.GetGenerationByID(ctx, callerA.ID, generation.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	// The owner still sees an untouched project
	got, err := svc.GetByID(ctx, ownerB.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Name, got.Name)
}

func TestProjectService_ListOwned(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	older := testutil.NewProjectBuilder(owner).
		WithUpdatedAt(time.Now().Add(-time.Hour)).Build(t, testDB.DB)
	newer := testutil.NewProjectBuilder(owner).Build(t, testDB.DB)
	testutil.NewProjectBuilder(other).Build(t, testDB.DB)

	// Two generations; only the newest should be attached
	testutil.NewGenerationBuilder(newer).
		WithPrompt("first").WithCreatedAt(time.Now().Add(-time.Minute)).Build(t, testDB.DB)
	testutil.NewGenerationBuilder(newer).WithPrompt("second").Build(t, testDB.DB)

	projects, err := svc.ListOwned(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	// Newest-updated first, never another user's project
	assert.Equal(t, newer.ID, projects[0].ID)
	assert.Equal(t, older.ID, projects[1].ID)
	for _, p := range projects {
		assert.Equal(t, owner.ID, p.UserID)
	}

	require.Len(t, projects[0].Generations, 1)
	assert.Equal(t, "second", projects[0].Generations[0].Prompt)
}

func TestProjectService_ListFeatured(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	testutil.NewProjectBuilder(owner).Build(t, testDB.DB)          // private
	testutil.NewProjectBuilder(owner).Public().Build(t, testDB.DB) // public, not featured
	for i := 0; i < 14; i++ {
		testutil.NewProjectBuilder(owner).Featured().Build(t, testDB.DB)
	}

	projects, err := svc.ListFeatured(ctx)
	require.NoError(t, err)

	// Capped at 12, only public+featured, owner preloaded
	assert.Len(t, projects, service.FeaturedLimit)
	for _, p := range projects {
		assert.True(t, p.IsPublic)
		assert.True(t, p.IsFeatured)
		require.NotNil(t, p.User)
		assert.Equal(t, owner.Username, p.User.Username)
	}
}

func TestProjectService_UpdateMergesFields(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	project, err := svc.Create(ctx, owner.ID, schema.CreateProject{
		Name:        "Original",
		Description: "keep me",
	})
	require.NoError(t, err)

	name := "Renamed"
	public := true
	updated, err := svc.Update(ctx, owner.ID, project.ID, schema.UpdateProject{
		Name:     &name,
		IsPublic: &public,
	})
	require.NoError(t, err)

	// Exactly the supplied fields change; everything else is retained
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, project.Framework, updated.Framework)
	assert.Equal(t, project.Status, updated.Status)
}

func TestProjectService_DeleteTwice(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	project := testutil.NewProjectBuilder(owner).Build(t, testDB.DB)

	require.NoError(t, svc.Delete(ctx, owner.ID, project.ID))

	// Second delete reports NotFound, not a silent no-op
	err := svc.Delete(ctx, owner.ID, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_GenerationScenario(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	u1, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	u2, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	project, err := svc.Create(ctx, u1.ID, schema.CreateProject{Name: "Demo"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, u1.ID, project.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Generations)

	_, err = svc.CreateGeneration(ctx, u1.ID, schema.CreateGeneration{
		ProjectID: project.ID,
		Prompt:    "p",
		HTML:      "<h1/>",
	})
	require.NoError(t, err)

	got, err = svc.GetByID(ctx, u1.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, got.Generations, 1)
	assert.Equal(t, "p", got.Generations[0].Prompt)

	_, err = svc.GetByID(ctx, u2.ID, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_GetGenerationTree(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewProjectService(repos.Project, repos.Generation)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	project := testutil.NewProjectBuilder(owner).Build(t, testDB.DB)

	t.Run("from files blob", func(t *testing.T) {
		generation := testutil.NewGenerationBuilder(project).WithFiles(map[string]string{
			"index.html":   "<h1>Hi</h1>",
			"css/main.css": "body {}",
		}).Build(t, testDB.DB)

		tree, err := svc.GetGenerationTree(ctx, owner.ID, generation.ID)
		require.NoError(t, err)
		require.Len(t, tree, 2)
		assert.Equal(t, "css", tree[0].Name)
		assert.Equal(t, "index.html", tree[1].Name)
	})

	t.Run("synthesized from html", func(t *testing.T) {
		generation := testutil.NewGenerationBuilder(project).Build(t, testDB.DB)

		tree, err := svc.GetGenerationTree(ctx, owner.ID, generation.ID)
		require.NoError(t, err)
		require.Len(t, tree, 1)
		assert.Equal(t, "index.html", tree[0].Name)
		assert.Equal(t, "<h1>Hello</h1>", tree[0].Content)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetGenerationTree(ctx, owner.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
