package session

import "time"

// Session mirrors the sessions table. The session store itself talks to the
// table through sqlx; the model exists so AutoMigrate creates it.
type Session struct {
	SID    string    `gorm:"column:sid;primaryKey"`
	Sess   string    `gorm:"column:sess;not null"`
	Expire time.Time `gorm:"column:expire;not null;index"`
}

func (Session) TableName() string {
	return "sessions"
}
