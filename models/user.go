package models

import (
	"time"
)

// User is an account that can sign in.
type User struct {
	ID          string     `bson:"_id" json:"id"`
	Email       string     `bson:"email" json:"email"`
	Password    string     `bson:"password" json:"-"`
	FirstName   string     `bson:"firstName" json:"firstName"`
	LastName    string     `bson:"lastName" json:"lastName"`
	Role        UserRole   `bson:"role" json:"role"`
	Department  string     `bson:"department,omitempty" json:"department,omitempty"`
	IsActive    bool       `bson:"isActive" json:"isActive"`
	LastLoginAt *time.Time `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	Timestamps  `bson:",inline"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type (
	RegisterRequest struct {
		Email      string   `json:"email" binding:"required,email,max=255"`
		Password   string   `json:"password" binding:"required,min=8,max=128"`
		FirstName  string   `json:"firstName" binding:"required,min=1,max=50"`
		LastName   string   `json:"lastName" binding:"required,min=1,max=50"`
		Role       UserRole `json:"role" binding:"omitempty,oneof=ADMIN SALES_MANAGER SALES_REP SUPPORT MARKETING"`
		Department string   `json:"department" binding:"max=100"`
	}

	LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	RefreshTokenRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8,max=128"`
	}

	// LoginResponse is returned by login and refresh.
	LoginResponse struct {
		User         *User  `json:"user,omitempty"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken,omitempty"`
		ExpiresIn    int64  `json:"expiresIn"`
	}

	UserFilter struct {
		Role   UserRole
		Search string
	}
)
