package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleBuyer = "buyer"
)

type User struct {
	gorm.Model
	Name            string `json:"name"`
	Email           string `json:"email" gorm:"uniqueIndex;not null"`
	Password        string `json:"-"`
	Role            string `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified" gorm:"default:false"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Profile is the identity projection returned by auth and profile
// endpoints. It never carries the password hash.
type Profile struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
	}
}
