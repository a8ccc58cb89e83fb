package models

type Team struct {
	BaseModel

	Name             string `gorm:"not null"`
	Description      string
	StartWorkingHour *string // HH:MM
	EndWorkingHour   *string // HH:MM
	CreatorID        uint    `gorm:"not null;index"`

	// Relationships
	Creator     User             `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Memberships []TeamMembership `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Meetings    []TeamMeeting    `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
