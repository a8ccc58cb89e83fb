package models

type User struct {
	BaseModel

	Name           string  `gorm:"not null"`
	Email          string  `gorm:"uniqueIndex;not null"`
	PasswordHash   *string
	GoogleID       *string `gorm:"uniqueIndex"`
	DateOfBirth    *string // YYYY-MM-DD
	Bio            string
	ProfilePicture string

	// Relationships
	Activities      []Activity          `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Goals           []Goal              `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedTeams    []Team              `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	TeamMemberships []TeamMembership    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Invitations     []MeetingInvitation `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Notifications   []Notification      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// Federated reports whether the account is backed by a Google identity
// instead of a local password.
func (u *User) Federated() bool {
	return u.GoogleID != nil
}
