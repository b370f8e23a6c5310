package contact

import "time"

// Request is one saved escalation to a human representative. Phone and
// notes are optional; a skipped phone number stays NULL.
type Request struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName         string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email            string     `gorm:"type:varchar(255);not null;index" json:"email"`
	PhoneNumber      *string    `gorm:"type:varchar(50)" json:"phone_number,omitempty"`
	RequestTimestamp time.Time  `gorm:"not null;index" json:"request_timestamp"`
	Notes            *string    `gorm:"type:text" json:"notes,omitempty"`
	DispatchedAt     *time.Time `json:"dispatched_at,omitempty"`
}

func (Request) TableName() string { return "contact_requests" }
