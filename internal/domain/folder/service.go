package folder

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"cloudstore/internal/blob"
	"cloudstore/internal/domain"
	"cloudstore/internal/domain/quota"
	"cloudstore/internal/pkg/logger"
)

const maxNameLength = 255

// Service owns the folder tree: creation, listing and the cascading
// delete. The tree is one level deep: every folder a user creates is
// parented to their root, and ownership of a folder is derived from
// that parent link.
type Service struct {
	db     *gorm.DB
	ledger *quota.Ledger
	blobs  blob.Store
}

func NewService(db *gorm.DB, ledger *quota.Ledger, blobs blob.Store) *Service {
	return &Service{db: db, ledger: ledger, blobs: blobs}
}

// Create adds a folder under the actor's root. Names are free-form and
// need not be unique.
func (s *Service) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Folder, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrNameTooLong
	}

	parentID := actor.RootFolderID
	folder := &domain.Folder{
		Name:           name,
		ParentFolderID: &parentID,
	}
	if err := s.db.WithContext(ctx).Create(folder).Error; err != nil {
		return nil, err
	}
	return folder, nil
}

// Delete removes a folder together with every file inside it. The root
// size decrement, the file rows and the folder row go away in one
// transaction; blob contents are cleaned up best-effort afterwards, an
// orphaned blob is preferable to a half-applied cascade.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, folderID int64) error {
	folder, err := s.get(ctx, folderID)
	if err != nil {
		return err
	}
	if folder.ID == actor.RootFolderID {
		return ErrRootFolderProtected
	}
	if folder.ParentFolderID == nil || *folder.ParentFolderID != actor.RootFolderID {
		return ErrNotOwner
	}

	var blobKeys []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.ApplyDelta(tx, actor.RootFolderID, actor.RootFolderID, -folder.Size); err != nil {
			return err
		}

		var files []domain.File
		if err := tx.Where("folder_id = ?", folder.ID).Find(&files).Error; err != nil {
			return err
		}
		for _, f := range files {
			blobKeys = append(blobKeys, f.Path)
		}

		if err := tx.Where("folder_id = ?", folder.ID).Delete(&domain.File{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Folder{}, folder.ID).Error
	})
	if err != nil {
		return err
	}

	for _, key := range blobKeys {
		if err := s.blobs.Delete(key); err != nil {
			logger.Log.Warn().Str("key", key).Err(err).Msg("failed to delete blob of removed file")
		}
	}
	return nil
}

// List returns the actor's folders (excluding the root) in insertion
// order.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.Folder, error) {
	var folders []domain.Folder
	err := s.db.WithContext(ctx).
		Where("parent_folder_id = ?", actor.RootFolderID).
		Order("id").
		Find(&folders).Error
	return folders, err
}

// Get returns a single folder of the actor's tree.
func (s *Service) Get(ctx context.Context, actor domain.Actor, folderID int64) (*domain.Folder, error) {
	folder, err := s.get(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.ParentFolderID == nil || *folder.ParentFolderID != actor.RootFolderID {
		return nil, ErrNotOwner
	}
	return folder, nil
}

// GetRoot returns the actor's root folder; its size is the total
// account usage.
func (s *Service) GetRoot(ctx context.Context, actor domain.Actor) (*domain.Folder, error) {
	return s.get(ctx, actor.RootFolderID)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Folder, error) {
	var folder domain.Folder
	err := s.db.WithContext(ctx).First(&folder, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}
