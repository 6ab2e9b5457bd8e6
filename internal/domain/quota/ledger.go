package quota

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cloudstore/internal/domain"
)

const (
	// MaxFileSize caps a single upload.
	MaxFileSize = 20 * 1024 * 1024
	// MaxStorageSize caps the total bytes stored per account.
	MaxStorageSize = 100 * 1024 * 1024
)

var (
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	ErrStorageFull  = errors.New("account storage limit exceeded")
)

// Ledger tracks storage consumption on the folder size counters and
// enforces the per-file and per-account caps. All writes go through
// ApplyDelta inside the caller's transaction so that the folder and
// root counters can never diverge.
type Ledger struct {
	maxFileSize    int64
	maxStorageSize int64
}

// NewLedger builds a ledger with the given caps. Zero values fall back
// to the defaults.
func NewLedger(maxFileSize, maxStorageSize int64) *Ledger {
	if maxFileSize <= 0 {
		maxFileSize = MaxFileSize
	}
	if maxStorageSize <= 0 {
		maxStorageSize = MaxStorageSize
	}
	return &Ledger{maxFileSize: maxFileSize, maxStorageSize: maxStorageSize}
}

// CheckFileSize rejects payloads above the per-file cap.
func (l *Ledger) CheckFileSize(size int64) error {
	if size > l.maxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// CheckStorageBudget rejects an incoming payload that would push the
// account total above the storage cap. rootSize is the current root
// folder size; callers use this as a cheap pre-check, ApplyDelta
// re-validates under lock.
func (l *Ledger) CheckStorageBudget(rootSize, incoming int64) error {
	if rootSize+incoming > l.maxStorageSize {
		return ErrStorageFull
	}
	return nil
}

// ApplyDelta adds delta to the folder's size counter and, when the
// folder is not the root, mirrors the same delta into the root so the
// root always reflects total account usage. Rows are locked FOR UPDATE
// in a fixed order (root first) so concurrent mutations against the
// same tree serialize instead of losing updates. For a positive delta
// the storage budget is re-checked against the locked root size;
// a raced-out upload fails here with ErrStorageFull.
//
// Must be called inside a transaction: a partial update (one counter
// written, the other not) would corrupt the bookkeeping.
func (l *Ledger) ApplyDelta(tx *gorm.DB, folderID, rootFolderID, delta int64) error {
	var root domain.Folder
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&root, rootFolderID).Error; err != nil {
		return err
	}
	if delta > 0 {
		if err := l.CheckStorageBudget(root.Size, delta); err != nil {
			return err
		}
	}
	if err := tx.Model(&domain.Folder{}).Where("id = ?", root.ID).Update("size", root.Size+delta).Error; err != nil {
		return err
	}

	if folderID == rootFolderID {
		return nil
	}

	var folder domain.Folder
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&folder, folderID).Error; err != nil {
		return err
	}
	return tx.Model(&domain.Folder{}).Where("id = ?", folder.ID).Update("size", folder.Size+delta).Error
}
