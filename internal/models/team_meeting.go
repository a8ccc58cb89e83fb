package models

const (
	// Mandatory meetings create their invitations pre-accepted.
	InvitationTypeMandatory = "mandatory"
	// Request meetings create pending invitations plus a notification.
	InvitationTypeRequest = "request"
)

type TeamMeeting struct {
	BaseModel

	TeamID         uint   `gorm:"not null;index"`
	Title          string `gorm:"not null"`
	Description    string
	Date           string  `gorm:"not null;index"` // YYYY-MM-DD
	StartTime      *string // HH:MM
	EndTime        *string // HH:MM
	InvitationType string  `gorm:"not null;default:'mandatory'"`

	// Relationships
	Team        Team                `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Invitations []MeetingInvitation `gorm:"foreignKey:MeetingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
