package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"gorm.io/gorm"

	"cloudstore/internal/blob"
	"cloudstore/internal/domain"
	"cloudstore/internal/domain/quota"
	"cloudstore/internal/pkg/logger"
)

const maxNameLength = 255

// sniffLen is how many leading bytes the content-type sniffer looks at.
const sniffLen = 512

// UploadInput describes one incoming file. DeclaredType is the
// client-provided Content-Type of the multipart part; the service
// additionally sniffs the content itself.
type UploadInput struct {
	Name         string
	Size         int64
	DeclaredType string
	Content      io.Reader
}

// Service owns file metadata and coordinates every multi-row mutation:
// the quota counters, the metadata row and the blob move together or
// not at all.
type Service struct {
	db     *gorm.DB
	ledger *quota.Ledger
	blobs  blob.Store
}

func NewService(db *gorm.DB, ledger *quota.Ledger, blobs blob.Store) *Service {
	return &Service{db: db, ledger: ledger, blobs: blobs}
}

// List returns the files directly inside the given folder, or inside
// the actor's root when folderID is nil. Not recursive.
func (s *Service) List(ctx context.Context, actor domain.Actor, folderID *int64) ([]domain.File, error) {
	folder, err := s.resolveFolder(ctx, actor, folderID)
	if err != nil {
		return nil, err
	}

	var files []domain.File
	err = s.db.WithContext(ctx).
		Where("folder_id = ?", folder.ID).
		Order("id").
		Find(&files).Error
	return files, err
}

// Upload validates the payload, persists the bytes to the blob store
// and then, in one transaction, charges the quota counters and creates
// the metadata row. A transaction failure after the blob write cleans
// the blob up again so no orphan survives a rejected upload.
func (s *Service) Upload(ctx context.Context, actor domain.Actor, folderID *int64, in UploadInput) (*domain.File, error) {
	if err := s.ledger.CheckFileSize(in.Size); err != nil {
		return nil, err
	}

	folder, err := s.resolveFolder(ctx, actor, folderID)
	if err != nil {
		return nil, err
	}

	// Cheap unlocked budget check so an oversized upload is rejected
	// before any bytes hit the disk. ApplyDelta re-validates under
	// lock, concurrent uploads racing past this point cannot both win.
	root, err := s.loadFolder(ctx, actor.RootFolderID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.CheckStorageBudget(root.Size, in.Size); err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Content, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	sniffed := http.DetectContentType(head[:n])

	if isRestrictedUpload(in.Name, in.DeclaredType, sniffed) {
		return nil, ErrRestrictedType
	}

	content := io.MultiReader(bytes.NewReader(head[:n]), in.Content)
	key, written, err := s.blobs.Save(content)
	if err != nil {
		return nil, fmt.Errorf("failed to store file content: %w", err)
	}

	// The declared size is what the pre-checks ran on; the written
	// byte count is what actually occupies storage, so that is what
	// gets charged.
	if err := s.ledger.CheckFileSize(written); err != nil {
		s.cleanupBlob(key)
		return nil, err
	}

	file := &domain.File{
		Name:     truncateName(in.Name),
		Path:     key,
		Size:     written,
		OwnerID:  actor.UserID,
		FolderID: folder.ID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.ApplyDelta(tx, folder.ID, actor.RootFolderID, written); err != nil {
			return err
		}
		return tx.Create(file).Error
	})
	if err != nil {
		s.cleanupBlob(key)
		return nil, err
	}

	return file, nil
}

// Rename changes the display name. An empty name keeps the current one
// (matching the partial-update semantics of the PATCH endpoint).
func (s *Service) Rename(ctx context.Context, actor domain.Actor, fileID int64, newName string) error {
	file, err := s.getOwned(ctx, actor, fileID)
	if err != nil {
		return err
	}

	if newName == "" {
		return nil
	}
	if utf8.RuneCountInString(newName) > maxNameLength {
		return ErrNameTooLong
	}

	return s.db.WithContext(ctx).
		Model(&domain.File{}).
		Where("id = ?", file.ID).
		Update("name", newName).Error
}

// Delete removes the metadata row and refunds the quota counters in
// one transaction, then drops the blob best-effort.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, fileID int64) error {
	file, err := s.getOwned(ctx, actor, fileID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.ApplyDelta(tx, file.FolderID, actor.RootFolderID, -file.Size); err != nil {
			return err
		}
		return tx.Delete(&domain.File{}, file.ID).Error
	})
	if err != nil {
		return err
	}

	s.cleanupBlob(file.Path)
	return nil
}

// Download opens the stored content. The caller is responsible for
// closing the reader; the file's user-visible name is the suggested
// download filename, the blob key stays internal.
func (s *Service) Download(ctx context.Context, actor domain.Actor, fileID int64) (*domain.File, io.ReadCloser, error) {
	file, err := s.getOwned(ctx, actor, fileID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(file.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file content: %w", err)
	}
	return file, rc, nil
}

func (s *Service) getOwned(ctx context.Context, actor domain.Actor, fileID int64) (*domain.File, error) {
	var file domain.File
	err := s.db.WithContext(ctx).First(&file, fileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	if file.OwnerID != actor.UserID {
		return nil, ErrNotOwner
	}
	return &file, nil
}

// resolveFolder maps an optional folder ID onto a folder of the
// actor's tree: nil means the root, anything else must be a direct
// child of the root (or the root itself).
func (s *Service) resolveFolder(ctx context.Context, actor domain.Actor, folderID *int64) (*domain.Folder, error) {
	if folderID == nil || *folderID == actor.RootFolderID {
		return s.loadFolder(ctx, actor.RootFolderID)
	}

	folder, err := s.loadFolder(ctx, *folderID)
	if err != nil {
		return nil, err
	}
	if folder.ParentFolderID == nil || *folder.ParentFolderID != actor.RootFolderID {
		return nil, ErrFolderNotYours
	}
	return folder, nil
}

func (s *Service) loadFolder(ctx context.Context, id int64) (*domain.Folder, error) {
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

func (s *Service) cleanupBlob(key string) {
	if err := s.blobs.Delete(key); err != nil {
		logger.Log.Warn().Str("key", key).Err(err).Msg("failed to clean up blob")
	}
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= maxNameLength {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxNameLength])
}
