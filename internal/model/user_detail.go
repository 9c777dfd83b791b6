package model

import "time"

// UserDetail 求职者档案，支撑画像强度与地区统计
type UserDetail struct {
	ID              uint64 `gorm:"primaryKey"`
	UserID          uint64 `gorm:"not null;uniqueIndex:idx_detail_user"`
	Nickname        string `gorm:"type:varchar(50)"`
	AvatarURL       string `gorm:"type:varchar(255)"`
	Bio             string `gorm:"type:varchar(200)"`
	TargetRole      string `gorm:"type:varchar(100)"`
	Country         string `gorm:"type:varchar(60)"`
	City            string `gorm:"type:varchar(60)"`
	YearsExperience int    `gorm:"type:int"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UserDetail) TableName() string {
	return "user_details"
}
