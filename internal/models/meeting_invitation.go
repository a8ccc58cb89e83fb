package models

import "time"

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

type MeetingInvitation struct {
	BaseModel

	MeetingID      uint   `gorm:"not null;uniqueIndex:idx_meeting_user"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_meeting_user"`
	InvitationType string `gorm:"not null"`
	Status         string `gorm:"not null;default:'pending'"`
	RespondedAt    *time.Time

	// Relationships
	Meeting TeamMeeting `gorm:"foreignKey:MeetingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User    User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
