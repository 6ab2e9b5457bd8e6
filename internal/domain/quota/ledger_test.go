package quota

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"cloudstore/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:quota_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Folder{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func createTree(t *testing.T, db *gorm.DB) (root, nested *domain.Folder) {
	t.Helper()
	root = &domain.Folder{Name: "/"}
	if err := db.Create(root).Error; err != nil {
		t.Fatalf("failed to create root: %v", err)
	}
	nested = &domain.Folder{Name: "docs", ParentFolderID: &root.ID}
	if err := db.Create(nested).Error; err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	return root, nested
}

func folderSize(t *testing.T, db *gorm.DB, id int64) int64 {
	t.Helper()
	var f domain.Folder
	if err := db.First(&f, id).Error; err != nil {
		t.Fatalf("failed to load folder %d: %v", id, err)
	}
	return f.Size
}

func TestCheckFileSize(t *testing.T) {
	l := NewLedger(100, 1000)

	if err := l.CheckFileSize(100); err != nil {
		t.Fatalf("size at the cap should pass, got %v", err)
	}
	if err := l.CheckFileSize(101); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestCheckStorageBudget(t *testing.T) {
	l := NewLedger(100, 1000)

	if err := l.CheckStorageBudget(900, 100); err != nil {
		t.Fatalf("total at the cap should pass, got %v", err)
	}
	if err := l.CheckStorageBudget(901, 100); !errors.Is(err, ErrStorageFull) {
		t.Fatalf("expected ErrStorageFull, got %v", err)
	}
}

func TestApplyDeltaMirrorsIntoRoot(t *testing.T) {
	db := setupTestDB(t)
	root, nested := createTree(t, db)
	l := NewLedger(0, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, nested.ID, root.ID, 40)
	})
	if err != nil {
		t.Fatalf("ApplyDelta returned error: %v", err)
	}

	if got := folderSize(t, db, nested.ID); got != 40 {
		t.Fatalf("expected folder size 40, got %d", got)
	}
	if got := folderSize(t, db, root.ID); got != 40 {
		t.Fatalf("expected root size 40, got %d", got)
	}
}

func TestApplyDeltaOnRootDoesNotDoubleCount(t *testing.T) {
	db := setupTestDB(t)
	root, _ := createTree(t, db)
	l := NewLedger(0, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, root.ID, root.ID, 25)
	})
	if err != nil {
		t.Fatalf("ApplyDelta returned error: %v", err)
	}

	if got := folderSize(t, db, root.ID); got != 25 {
		t.Fatalf("expected root size 25, got %d", got)
	}
}

func TestApplyDeltaNegative(t *testing.T) {
	db := setupTestDB(t)
	root, nested := createTree(t, db)
	l := NewLedger(0, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, nested.ID, root.ID, 70)
	})
	if err != nil {
		t.Fatalf("ApplyDelta returned error: %v", err)
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, nested.ID, root.ID, -30)
	})
	if err != nil {
		t.Fatalf("ApplyDelta returned error: %v", err)
	}

	if got := folderSize(t, db, nested.ID); got != 40 {
		t.Fatalf("expected folder size 40, got %d", got)
	}
	if got := folderSize(t, db, root.ID); got != 40 {
		t.Fatalf("expected root size 40, got %d", got)
	}
}

func TestApplyDeltaEnforcesBudgetUnderLock(t *testing.T) {
	db := setupTestDB(t)
	root, nested := createTree(t, db)
	l := NewLedger(0, 100)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, nested.ID, root.ID, 90)
	})
	if err != nil {
		t.Fatalf("ApplyDelta returned error: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, nested.ID, root.ID, 20)
	})
	if !errors.Is(err, ErrStorageFull) {
		t.Fatalf("expected ErrStorageFull, got %v", err)
	}

	// The failed transaction must leave both counters untouched.
	if got := folderSize(t, db, root.ID); got != 90 {
		t.Fatalf("expected root size 90 after rejected delta, got %d", got)
	}
	if got := folderSize(t, db, nested.ID); got != 90 {
		t.Fatalf("expected folder size 90 after rejected delta, got %d", got)
	}
}

func TestApplyDeltaRollsBackWithTransaction(t *testing.T) {
	db := setupTestDB(t)
	root, nested := createTree(t, db)
	l := NewLedger(0, 0)

	boom := errors.New("later write failed")
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := l.ApplyDelta(tx, nested.ID, root.ID, 55); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the injected error, got %v", err)
	}

	if got := folderSize(t, db, root.ID); got != 0 {
		t.Fatalf("expected root size 0 after rollback, got %d", got)
	}
	if got := folderSize(t, db, nested.ID); got != 0 {
		t.Fatalf("expected folder size 0 after rollback, got %d", got)
	}
}
