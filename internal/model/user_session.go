package model

import "time"

// UserSession 登录会话，登录时追加，登出或清理任务关闭
type UserSession struct {
	ID        uint64     `gorm:"primaryKey"`
	UserID    uint64     `gorm:"not null;index:idx_session_user"`
	LoginAt   time.Time  `gorm:"not null"`
	LogoutAt  *time.Time `gorm:"default:null"`
	IP        string     `gorm:"type:varchar(45)"`
	UserAgent string     `gorm:"type:varchar(255)"`
	Country   string     `gorm:"type:varchar(60)"`
	City      string     `gorm:"type:varchar(60)"`
	IsActive  bool       `gorm:"type:tinyint(1);default:1;index:idx_session_active"`
	CreatedAt time.Time
}

func (UserSession) TableName() string {
	return "user_sessions"
}
