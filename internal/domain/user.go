package domain

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	RootFolderID int64     `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	RootFolder *Folder `json:"-" gorm:"foreignKey:RootFolderID;references:ID"`
}

func (User) TableName() string { return "users" }

// Actor identifies the authenticated user a request acts on behalf of.
// It is resolved once by the auth middleware and threaded explicitly
// through every service call instead of an ambient "current user" lookup.
type Actor struct {
	UserID       int64
	RootFolderID int64
}
