package models

type Goal struct {
	BaseModel

	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Category    string
	Progress    int `gorm:"default:0"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Timelines []Timeline `gorm:"foreignKey:GoalID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
