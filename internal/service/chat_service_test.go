package service_test

import (
	"context"
	"testing"

	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository/postgres"
	"github.com/lovico/lovico-server/internal/schema"
	"github.com/lovico/lovico-server/internal/service"
	"github.com/lovico/lovico-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_SendMessage(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	chatService := service.NewChatService(repos.Message, repos.Project)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	project := testutil.NewProjectBuilder(owner).Build(t, testDB.DB)

	t.Run("stores user turn and mocked reply", func(t *testing.T) {
		userMsg, reply, err := chatService.SendMessage(ctx, owner.ID, schema.ChatRequest{
			ProjectID: project.ID,
			Message:   "build a portfolio site",
			Model:     "gpt-4o",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.MessageRoleUser, userMsg.Role)
		assert.Equal(t, "build a portfolio site", userMsg.Content)
		assert.Equal(t, domain.MessageRoleAssistant, reply.Role)
		require.NotNil(t, reply.ParentMessageID)
		assert.Equal(t, userMsg.ID, *reply.ParentMessageID)
		assert.Contains(t, reply.Content, "build a portfolio site")

		// Both turns are persisted in order
		messages, err := chatService.ListMessages(ctx, owner.ID, project.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, userMsg.ID, messages[0].ID)
		assert.Equal(t, reply.ID, messages[1].ID)
	})

	t.Run("threaded reply", func(t *testing.T) {
		first, _, err := chatService.SendMessage(ctx, owner.ID, schema.ChatRequest{
			ProjectID: project.ID,
			Message:   "start",
			Model:     "gpt-4o",
		})
		require.NoError(t, err)

		followUp, _, err := chatService.SendMessage(ctx, owner.ID, schema.ChatRequest{
			ProjectID:       project.ID,
			Message:         "make it darker",
			Model:           "gpt-4o",
			ParentMessageID: &first.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, followUp.ParentMessageID)
		assert.Equal(t, first.ID, *followUp.ParentMessageID)
	})

	t.Run("parent from another project", func(t *testing.T) {
		otherProject := testutil.NewProjectBuilder(owner).Build(t, testDB.DB)
		stray, _, err := chatService.SendMessage(ctx, owner.ID, schema.ChatRequest{
			ProjectID: otherProject.ID,
			Message:   "unrelated",
			Model:     "gpt-4o",
		})
		require.NoError(t, err)

		_, _, err = chatService.SendMessage(ctx, owner.ID, schema.ChatRequest{
			ProjectID:       project.ID,
			Message:         "reply across projects",
			Model:           "gpt-4o",
			ParentMessageID: &stray.ID,
		})
		assert.ErrorIs(t, err, domain.ErrParentMessageMismatch)
	})

	t.Run("parent owned by another user", func(t *testing.T) {
		foreignProject := testutil.NewProjectBuilder(other).Build(t, testDB.DB)
		foreignMsg, _, err := chatService.SendMessage(ctx, other.ID, schema.ChatRequest{
			ProjectID: foreignProject.ID,
			Message:   "private thread",
			Model:     "gpt-4o",
		})
		require.NoError(t, err)

		// Indistinguishable from a nonexistent parent id
		_, _, err = chatService.SendMessage(ctx, owner.ID, schema.ChatRequest{
			ProjectID:       project.ID,
			Message:         "reply into someone else's thread",
			Model:           "gpt-4o",
			ParentMessageID: &foreignMsg.ID,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("not the project owner", func(t *testing.T) {
		_, _, err := chatService.SendMessage(ctx, other.ID, schema.ChatRequest{
			ProjectID: project.ID,
			Message:   "hello",
			Model:     "gpt-4o",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = chatService.ListMessages(ctx, other.ID, project.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown model", func(t *testing.T) {
		_, _, err := chatService.SendMessage(ctx, owner.ID, schema.ChatRequest{
			ProjectID: project.ID,
			Message:   "hello",
			Model:     "gpt-99",
		})

		var verr *schema.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
