package entity

import "time"

// DbActivity is an append-only audit entry recorded as a side effect of auth
// and admin operations. Entries are never mutated; the log keeps only the
// most recent entries (see service.ActivityLogCap).
type DbActivity struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`
	UserName  string    `gorm:"column:user_name;type:varchar(255)" json:"user_name"`
	Action    string    `gorm:"column:action;type:varchar(255);not null" json:"action"`
	Details   string    `gorm:"column:details;type:text" json:"details,omitempty"`
}

// TableName overrides default pluralised name.
func (DbActivity) TableName() string {
	return "activities"
}

type ActivityListResponse struct {
	Activities []DbActivity `json:"activities"`
	Meta       *Meta        `json:"meta"`
}
