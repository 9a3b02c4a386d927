package models

import "time"

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Deadline    time.Time `json:"deadline"`
	ProjectID   uint64    `gorm:"not null" json:"project_id"`
	// Status is true once the task is done. It only ever flips.
	Status    bool      `gorm:"not null;default:false" json:"status"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project     Project `gorm:"foreignKey:ProjectID" json:"-"`
	Responsible []User  `gorm:"many2many:task_responsibles;" json:"responsible,omitempty"`
}
