package domain

import "time"

// Folder is a storage node. Exactly one folder per user has a nil
// ParentFolderID: the root, created together with the user at
// registration. The root's Size mirrors the total bytes of every file
// the user owns; a non-root folder's Size covers only the files
// directly inside it.
type Folder struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	ParentFolderID *int64    `json:"-" gorm:"index"`
	Size           int64     `json:"size" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Folder) TableName() string { return "folders" }

// IsRoot reports whether the folder is a user's root folder.
func (f *Folder) IsRoot() bool { return f.ParentFolderID == nil }
