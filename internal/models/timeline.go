package models

// Timeline is one dated window of a Goal. Every Goal keeps at least one;
// the last timeline can only disappear together with its goal.
type Timeline struct {
	BaseModel

	GoalID    uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	StartDate string `gorm:"not null"` // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	StartTime *string // HH:MM
	EndTime   *string // HH:MM

	// Relationships
	Goal Goal `gorm:"foreignKey:GoalID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
