package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName         string    `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;type:varchar(255);not null" json:"-"`
	UserRole         string    `gorm:"column:user_role;type:varchar(20);not null;default:'STUDENT'" json:"user_role"`
	UserCreatedAt    time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt    time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

// Ids are assigned client-side so inserts work on any database.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
