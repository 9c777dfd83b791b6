package model

import "time"

// UserDailyMetric 每日活动快照，由定时任务从脏集合同步
type UserDailyMetric struct {
	ID                uint64    `gorm:"primaryKey"`
	UserID            uint64    `gorm:"not null;uniqueIndex:idx_user_metric_date"`
	MetricDate        time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_metric_date"`
	ApplicationsTotal int       `gorm:"type:int;not null;default:0"`
	StatusChanges     int       `gorm:"type:int;not null;default:0"`
	InterviewsTotal   int       `gorm:"type:int;not null;default:0"`
	OffersTotal       int       `gorm:"type:int;not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (UserDailyMetric) TableName() string {
	return "user_daily_metrics"
}
