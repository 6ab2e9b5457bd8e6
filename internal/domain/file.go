package domain

import "time"

// File is the metadata row of an uploaded file. Path is the opaque
// blob-store key and is never exposed through the API.
type File struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Path      string    `json:"-" gorm:"not null"`
	Size      int64     `json:"size" gorm:"not null"`
	OwnerID   int64     `json:"-" gorm:"not null;index"`
	FolderID  int64     `json:"-" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (File) TableName() string { return "files" }
