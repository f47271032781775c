// File: internal/user/model.go
package user

import (
	"time"

	"poi_backend/internal/common"

	"github.com/google/uuid"
)

// User represents an identity in the system. Users and administrators share
// one table and are distinguished by Role; email is unique across both.
type User struct {
	common.BaseModel
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null;default:'user'"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetRole() string {
	return u.Role
}

// --- DTOs ---

// RegisterRequest defines the structure for signing up a new user.
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"firstName" binding:"required,max=100"`
	LastName  string `json:"last_name" form:"lastName" binding:"required,max=100"`
	Email     string `json:"email" form:"email" binding:"required,email,max=255"`
	Password  string `json:"password" form:"password" binding:"required,min=1,max=72"`
}

// UpdateUserRequest overwrites an identity's profile. All four fields are
// required; this is a full overwrite, not a patch.
type UpdateUserRequest struct {
	FirstName string `json:"first_name" form:"firstName" binding:"required,max=100"`
	LastName  string `json:"last_name" form:"lastName" binding:"required,max=100"`
	Email     string `json:"email" form:"email" binding:"required,email,max=255"`
	Password  string `json:"password" form:"password" binding:"required,min=1,max=72"`
}

// UserResponse defines the structure for identity data sent in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO. The password
// hash never leaves the service layer.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
