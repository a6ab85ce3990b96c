package schema

import "strings"

// CreateUser is the registration payload. Email and username are
// normalized to trimmed lowercase before validation, so "  USER@Example.com "
// validates as "user@example.com".
type CreateUser struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

func (in *CreateUser) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Name = strings.TrimSpace(in.Name)
}

func (in *CreateUser) Validate() error {
	in.Normalize()
	return Validate(in)
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *Login) Validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return Validate(in)
}

// UpdateUser is the partial-update payload for the account record. The id,
// email, emailVerified flag and timestamps are server-assigned and absent
// here; nil fields are left untouched.
type UpdateUser struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50,username"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

func (in *UpdateUser) Normalize() {
	if in.Username != nil {
		u := strings.ToLower(strings.TrimSpace(*in.Username))
		in.Username = &u
	}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
}

func (in *UpdateUser) Validate() error {
	in.Normalize()
	return Validate(in)
}

// Fields returns the set columns for a single conditional UPDATE.
func (in *UpdateUser) Fields() map[string]any {
	fields := make(map[string]any)
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	return fields
}

type UpdateProfile struct {
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Website  *string `json:"website" validate:"omitempty,url"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Twitter  *string `json:"twitter" validate:"omitempty,max=100"`
	GitHub   *string `json:"github" validate:"omitempty,max=100"`
}

func (in *UpdateProfile) Validate() error {
	return Validate(in)
}

func (in *UpdateProfile) Fields() map[string]any {
	fields := make(map[string]any)
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Website != nil {
		fields["website"] = *in.Website
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Twitter != nil {
		fields["twitter"] = *in.Twitter
	}
	if in.GitHub != nil {
		fields["github"] = *in.GitHub
	}
	return fields
}

type UpdateSettings struct {
	Theme              *string `json:"theme" validate:"omitempty,oneof=light dark system"`
	DefaultModel       *string `json:"defaultModel" validate:"omitempty,max=50"`
	CodeEditorTheme    *string `json:"codeEditorTheme" validate:"omitempty,max=50"`
	AutoSave           *bool   `json:"autoSave"`
	EmailNotifications *bool   `json:"emailNotifications"`
	Language           *string `json:"language" validate:"omitempty,max=10"`
}

func (in *UpdateSettings) Validate() error {
	return Validate(in)
}

func (in *UpdateSettings) Fields() map[string]any {
	fields := make(map[string]any)
	if in.Theme != nil {
		fields["theme"] = *in.Theme
	}
	if in.DefaultModel != nil {
		fields["default_model"] = *in.DefaultModel
	}
	if in.CodeEditorTheme != nil {
		fields["code_editor_theme"] = *in.CodeEditorTheme
	}
	if in.AutoSave != nil {
		fields["auto_save"] = *in.AutoSave
	}
	if in.EmailNotifications != nil {
		fields["email_notifications"] = *in.EmailNotifications
	}
	if in.Language != nil {
		fields["language"] = *in.Language
	}
	return fields
}
