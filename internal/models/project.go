package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint64    `gorm:"not null" json:"creator_id"`
	Archived    bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator User   `gorm:"foreignKey:CreatorID" json:"-"`
	Members []User `gorm:"many2many:project_members;" json:"members,omitempty"`
	Tasks   []Task `gorm:"foreignKey:ProjectID" json:"-"`
}
