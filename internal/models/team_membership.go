package models

type TeamMembership struct {
	BaseModel

	TeamID uint `gorm:"not null;uniqueIndex:idx_team_user"`
	UserID uint `gorm:"not null;uniqueIndex:idx_team_user"`

	// Relationships
	Team Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
