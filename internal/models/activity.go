package models

type Activity struct {
	BaseModel

	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Category    string
	Urgency     string
	Date        string  `gorm:"not null;index"` // YYYY-MM-DD
	StartTime   *string // HH:MM
	EndTime     *string // HH:MM

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
