package dto

import "time"

// UserDTO 用户信息
type UserDTO struct {
	UserID          *uint64    `json:"user_id,omitempty"`
	Username        *string    `json:"username,omitempty"`
	Email           *string    `json:"email,omitempty"`
	Tier            *string    `json:"tier,omitempty"`
	Nickname        *string    `json:"nickname,omitempty" validate:"omitempty,max=30"`
	AvatarURL       *string    `json:"avatar_url,omitempty"`
	Bio             *string    `json:"bio,omitempty" validate:"omitempty,max=200"`
	TargetRole      *string    `json:"target_role,omitempty" validate:"omitempty,max=100"`
	Country         *string    `json:"country,omitempty"`
	City            *string    `json:"city,omitempty"`
	YearsExperience *int       `json:"years_experience,omitempty" validate:"omitempty,min=0,max=60"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// RegisterDTO 注册
type RegisterDTO struct {
	Username *string `json:"username" binding:"required" validate:"min=3,max=50"`
	Email    *string `json:"email" binding:"required" validate:"email"`
	Password *string `json:"password" binding:"required" validate:"min=6,max=64"`

	Nickname   string  `json:"nickname" validate:"omitempty,max=30"`
	TargetRole *string `json:"target_role"`
	Country    *string `json:"country"`
	City       *string `json:"city"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password" binding:"required"`
}

// ChangePasswordDTO 修改密码
type ChangePasswordDTO struct {
	OldPassword *string `json:"old_password" binding:"required" validate:"min=6,max=64"`
	NewPassword *string `json:"new_password" binding:"required" validate:"min=6,max=64"`
}

// ChangeTierDTO 管理端调整订阅档位
type ChangeTierDTO struct {
	Tier string `json:"tier" binding:"required"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// SessionDTO 登录会话
type SessionDTO struct {
	LoginAt   time.Time  `json:"login_at"`
	LogoutAt  *time.Time `json:"logout_at,omitempty"`
	IP        string     `json:"ip"`
	UserAgent string     `json:"user_agent"`
	Country   string     `json:"country,omitempty"`
	City      string     `json:"city,omitempty"`
	IsActive  bool       `json:"is_active"`
}
