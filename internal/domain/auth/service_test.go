package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"cloudstore/internal/domain"
)

type stubJWT struct{}

func (stubJWT) GenerateToken(userID, rootFolderID int64) (string, error) {
	return fmt.Sprintf("token-%d-%d", userID, rootFolderID), nil
}

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Folder{}, &domain.User{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(NewUserRepository(db), stubJWT{}), db
}

func TestRegisterCreatesUserWithRootFolder(t *testing.T) {
	svc, db := setupTestService(t)

	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotZero(t, user.RootFolderID)

	var root domain.Folder
	require.NoError(t, db.First(&root, user.RootFolderID).Error)
	require.Nil(t, root.ParentFolderID)
	require.Zero(t, root.Size)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterRequest{Name: "B", Email: "a@b.c", Password: "y"})
	require.True(t, errors.Is(err, ErrEmailAlreadyExists), "expected ErrEmailAlreadyExists, got %v", err)
}

func TestLogin(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, LoginRequest{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.Equal(t, fmt.Sprintf("token-%d-%d", user.ID, user.RootFolderID), token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "a@b.c", Password: "wrong"})
	require.True(t, errors.Is(err, ErrInvalidCredentials), "expected ErrInvalidCredentials, got %v", err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := setupTestService(t)

	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@b.c", Password: "x"})
	require.True(t, errors.Is(err, ErrInvalidCredentials), "expected ErrInvalidCredentials, got %v", err)
}
