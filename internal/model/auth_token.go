package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenPurposeAuth is the only purpose currently issued.
const TokenPurposeAuth = "auth"

// AuthToken is one entry in a user's active-token list. Deleting the row
// revokes the session; a structurally valid token with no matching row must
// not authenticate.
type AuthToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);index;not null"`
	Token     string    `json:"-" gorm:"size:512;index;not null"`
	Purpose   string    `json:"purpose" gorm:"size:32;not null;default:'auth'"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *AuthToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
