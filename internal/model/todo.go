package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a single todo item. Every todo has exactly one owner and is only
// ever visible to that owner.
type Todo struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Text      string    `json:"text" gorm:"size:1024;not null"`
	Today     bool      `json:"today" gorm:"default:false"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:char(36);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
