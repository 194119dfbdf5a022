package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"yazar@universite.edu.tr"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, never serialized
	FirstName   string     `json:"firstName" db:"first_name" example:"Ayşe"`
	LastName    string     `json:"lastName" db:"last_name" example:"Yılmaz"`
	Title       string     `json:"title,omitempty" db:"title" example:"Doç. Dr."`
	Institution string     `json:"institution,omitempty" db:"institution" example:"Ankara Üniversitesi"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"AUTHOR"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the display name including the academic title
func (u *User) FullName() string {
	name := u.FirstName + " " + u.LastName
	if u.Title != "" {
		return u.Title + " " + name
	}
	return name
}
