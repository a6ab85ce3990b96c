package schema_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestCreateUser_Normalization(t *testing.T) {
	in := schema.CreateUser{
		Email:    "  USER@Example.com ",
		Username: " NewUser_01 ",
		Password: "password123",
	}

	err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", in.Email)
	assert.Equal(t, "newuser_01", in.Username)
}

func TestCreateUser_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     schema.CreateUser
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing email",
			input:     schema.CreateUser{Username: "someone", Password: "password123"},
			wantField: "email",
			wantMsg:   "is required",
		},
		{
			name:      "malformed email",
			input:     schema.CreateUser{Email: "not-an-email", Username: "someone", Password: "password123"},
			wantField: "email",
			wantMsg:   "invalid format",
		},
		{
			name:      "short password",
			input:     schema.CreateUser{Email: "a@b.com", Username: "someone", Password: "short"},
			wantField: "password",
			wantMsg:   "must be at least 8 characters",
		},
		{
			name:      "username with invalid characters",
			input:     schema.CreateUser{Email: "a@b.com", Username: "some one!", Password: "password123"},
			wantField: "username",
			wantMsg:   "may only contain letters, numbers, underscores and hyphens",
		},
		{
			name:      "username too short",
			input:     schema.CreateUser{Email: "a@b.com", Username: "ab", Password: "password123"},
			wantField: "username",
			wantMsg:   "must be at least 3 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			require.Error(t, err)

			verr, ok := err.(*schema.ValidationError)
			require.True(t, ok, "expected *schema.ValidationError, got %T", err)

			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.wantField {
					found = true
					assert.Equal(t, tt.wantMsg, f.Message)
				}
			}
			assert.True(t, found, "no error reported for field %q: %v", tt.wantField, verr.Fields)
		})
	}
}

func TestCreateProject_Validate(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name    string
		input   schema.CreateProject
		wantErr bool
	}{
		{name: "valid", input: schema.CreateProject{Name: "Demo"}},
		{name: "empty name", input: schema.CreateProject{Name: ""}, wantErr: true},
		{name: "whitespace-only name", input: schema.CreateProject{Name: "   "}, wantErr: true},
		{name: "name too long", input: schema.CreateProject{Name: string(long)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				var verr *schema.ValidationError
				require.ErrorAs(t, err, &verr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUpdateProject_Fields(t *testing.T) {
	name := "Renamed"
	public := true

	in := schema.UpdateProject{Name: &name, IsPublic: &public}
	require.NoError(t, in.Validate())

	fields := in.Fields()
	assert.Equal(t, map[string]any{"name": "Renamed", "is_public": true}, fields)
}

func TestUpdateProject_RejectsBadEnum(t *testing.T) {
	bad := "angular"
	in := schema.UpdateProject{Framework: &bad}

	err := in.Validate()
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "framework", verr.Fields[0].Field)
}

func TestChatRequest_UnknownModel(t *testing.T) {
	in := schema.ChatRequest{
		ProjectID: mustUUID(t),
		Message:   "make it blue",
		Model:     "gpt-99",
	}

	err := in.Validate()
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "model", verr.Fields[0].Field)
}
