package models

import "gorm.io/datatypes"

const (
	NotificationMeetingInvitation = "meeting_invitation"
	NotificationMeetingUpdate     = "meeting_update"
	NotificationMeetingCancelled  = "meeting_cancelled"
)

// Notification rows are written only as side effects of team and meeting
// mutations, inside the same transaction as the write that caused them.
type Notification struct {
	BaseModel

	UserID    uint   `gorm:"not null;index"`
	Type      string `gorm:"not null"`
	Title     string `gorm:"not null"`
	Message   string
	RelatedID *uint // originating meeting, nil once that meeting is gone
	IsRead    bool  `gorm:"default:false"`
	Meta      datatypes.JSON

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
