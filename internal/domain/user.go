package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
	RolePro   UserRole = "pro"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

type User struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Username      string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Name          string     `json:"name"`
	Avatar        string     `json:"avatar"`
	Role          UserRole   `json:"role" gorm:"type:varchar(10);not null;default:'user'"`
	Status        UserStatus `json:"status" gorm:"type:varchar(10);not null;default:'active'"`
	EmailVerified bool       `json:"emailVerified" gorm:"not null;default:false"`
	PasswordHash  string     `json:"-" gorm:"not null"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// PublicUser is the subset of User safe to show to other users.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
	}
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}

type UserProfile struct {
	UserID   uuid.UUID `json:"userId" gorm:"type:uuid;primary_key"`
	Bio      string    `json:"bio" gorm:"size:500"`
	Website  string    `json:"website"`
	Location string    `json:"location" gorm:"size:100"`
	Twitter  string    `json:"twitter" gorm:"size:100"`
	GitHub   string    `json:"github" gorm:"size:100;column:github"`
}

type UserSettings struct {
	UserID             uuid.UUID      `json:"userId" gorm:"type:uuid;primary_key"`
	Theme              string         `json:"theme" gorm:"type:varchar(10);not null;default:'system'"`
	DefaultModel       string         `json:"defaultModel" gorm:"not null;default:'gpt-4o'"`
	CodeEditorTheme    string         `json:"codeEditorTheme" gorm:"not null;default:'vs-dark'"`
	AutoSave           bool           `json:"autoSave" gorm:"not null;default:true"`
	EmailNotifications bool           `json:"emailNotifications" gorm:"not null;default:true"`
	Language           string         `json:"language" gorm:"not null;default:'en'"`
	Extra              datatypes.JSON `json:"extra,omitempty" gorm:"type:jsonb"`
}
