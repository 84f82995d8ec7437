package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fadiapc/2026-Dashboard-BKD/config"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/dto"
	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *testRepos) {
	tr := newTestRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-0123456789abcdef",
			TokenTTL:  time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, tr.repo, jwtMgr, nil, zap.NewNop())
	return svc, tr
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	return string(hash)
}

func addTestUser(t *testing.T, tr *testRepos, initial, password string, isAdmin, isActive bool) *model.User {
	t.Helper()
	user := &model.User{
		UserID:       "user-" + initial,
		Name:         "测试用户 " + initial,
		Initial:      initial,
		PasswordHash: mustHash(t, password),
		IsAdmin:      isAdmin,
		IsActive:     isActive,
	}
	tr.user.users[user.UserID] = user
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, tr := setupTestAuthService()
	addTestUser(t, tr, "ABC", "password", false, true)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Initial:  "ABC",
		Password: "password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.User.Initial != "ABC" {
		t.Errorf("期望 Initial=ABC，实际=%s", result.User.Initial)
	}
	if result.User.Role != model.RoleUser {
		t.Errorf("期望 Role=user，实际=%s", result.User.Role)
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("期望 ExpiresIn=3600，实际=%d", result.ExpiresIn)
	}
}

func TestAuthService_Login_UnknownInitial(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Initial:  "XXX",
		Password: "password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, tr := setupTestAuthService()
	addTestUser(t, tr, "ABC", "password", false, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Initial:  "ABC",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	svc, tr := setupTestAuthService()
	addTestUser(t, tr, "ABC", "password", false, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Initial:  "ABC",
		Password: "password",
	})
	if !errors.Is(err, ErrAccountInactive) {
		t.Errorf("期望 ErrAccountInactive，实际: %v", err)
	}
}

// 禁用账号 + 密码错误时优先报凭证错误，不泄露账号状态
func TestAuthService_Login_InactiveWrongPassword(t *testing.T) {
	svc, tr := setupTestAuthService()
	addTestUser(t, tr, "ABC", "password", false, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Initial:  "ABC",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, tr := setupTestAuthService()
	user := addTestUser(t, tr, "ABC", "oldpass", false, true)
	oldHash := user.PasswordHash

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword:        "oldpass",
		NewPassword:        "newpass123",
		ConfirmNewPassword: "newpass123",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}
	if tr.user.users[user.UserID].PasswordHash == oldHash {
		t.Error("密码哈希应已更新")
	}
	if bcrypt.CompareHashAndPassword([]byte(tr.user.users[user.UserID].PasswordHash), []byte("newpass123")) != nil {
		t.Error("新密码应能通过校验")
	}
}

func TestAuthService_ChangePassword_Mismatch(t *testing.T) {
	svc, tr := setupTestAuthService()
	user := addTestUser(t, tr, "ABC", "oldpass", false, true)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword:        "oldpass",
		NewPassword:        "newpass123",
		ConfirmNewPassword: "different",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("期望 ErrPasswordMismatch，实际: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, tr := setupTestAuthService()
	user := addTestUser(t, tr, "ABC", "oldpass", false, true)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword:        "wrong",
		NewPassword:        "newpass123",
		ConfirmNewPassword: "newpass123",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

// ── Logout 测试 ──

// Redis 未配置时登出退化为无操作
func TestAuthService_Logout_NoRedis(t *testing.T) {
	svc, _ := setupTestAuthService()

	err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour))
	if err != nil {
		t.Errorf("无 Redis 时 Logout 应成功: %v", err)
	}
}
