package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoppu-io/shoppu-backend/internal/users"
	"github.com/shoppu-io/shoppu-backend/pkg/config"
	"github.com/shoppu-io/shoppu-backend/pkg/db"
	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
	"github.com/shoppu-io/shoppu-backend/pkg/enums"
	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:auth_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(ServiceParams{
		DB:       db.NewFromConn(conn),
		UserRepo: users.NewRepository(conn),
		JWTConfig: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "shoppu",
			ExpirationMinutes: 30,
		},
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Email: "Shopper@Example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "shopper@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: "shopper@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatalf("unexpected login user %+v", resp.User)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Email: "A@B.com", Password: "hunter2hunter2"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT for duplicate email, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "wrong-password"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED for bad password, got %v", err)
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@b.com", Password: "hunter2hunter2"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED for unknown email, got %v", err)
	}

	// deactivated accounts cannot log in
	if err := conn.Model(&models.User{}).Where("email = ?", "a@b.com").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "hunter2hunter2"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED for inactive user, got %v", err)
	}
}
