package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/model"
	"Huntboard/internal/pkg/security"
	"Huntboard/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	setupTestConfig()

	t.Run("用户名已占用", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{user: newTestUser(1)}, &fakeSessionRepo{})
		err := svc.Register(context.Background(), &dto.RegisterDTO{
			Username: util.PtrString("taken"),
			Email:    util.PtrString("a@b.com"),
			Password: util.PtrString("secret123"),
		})
		assert.ErrorIs(t, err, ErrUserUsernameExist)
	})

	t.Run("注册成功", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{}, &fakeSessionRepo{})
		err := svc.Register(context.Background(), &dto.RegisterDTO{
			Username: util.PtrString("newbie"),
			Email:    util.PtrString("a@b.com"),
			Password: util.PtrString("secret123"),
		})
		assert.NoError(t, err)
	})
}

func TestUpdateTier(t *testing.T) {
	setupTestConfig()

	t.Run("非法档位", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{user: newTestUser(1)}, &fakeSessionRepo{})
		err := svc.UpdateTier(context.Background(), 1, "platinum")
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("用户不存在", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{}, &fakeSessionRepo{})
		err := svc.UpdateTier(context.Background(), 42, "pro")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("升级到 pro", func(t *testing.T) {
		repo := &fakeUserRepo{user: newTestUser(1)}
		svc := NewUserService(repo, &fakeSessionRepo{})
		require.NoError(t, svc.UpdateTier(context.Background(), 1, "pro"))
		assert.Equal(t, "pro", repo.tierSet)
	})
}

func TestRemoveUser(t *testing.T) {
	setupTestConfig()

	t.Run("软删除账号", func(t *testing.T) {
		repo := &fakeUserRepo{user: newTestUser(1)}
		svc := NewUserService(repo, &fakeSessionRepo{})
		require.NoError(t, svc.RemoveUser(context.Background(), 1))
		assert.True(t, repo.deleted)
	})

	t.Run("已删除账号重复删除", func(t *testing.T) {
		user := newTestUser(1)
		user.IsDelete = true
		svc := NewUserService(&fakeUserRepo{user: user}, &fakeSessionRepo{})
		err := svc.RemoveUser(context.Background(), 1)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestLogin(t *testing.T) {
	setupTestConfig()

	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)

	user := newTestUser(1)
	user.Username = util.PtrString("alice")
	user.Password = &hash
	user.Tier = "free"
	user.UserRoles = []model.UserRole{{RoleID: 1, Role: model.Role{ID: 1, Name: "USER"}}}

	t.Run("登录成功", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{user: user}, &fakeSessionRepo{})
		result, err := svc.Login(context.Background(), &dto.CredentialDTO{
			Username: util.PtrString("alice"),
			Password: util.PtrString("secret123"),
		}, "127.0.0.1", "go-test")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)

		claims, err := security.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), claims.UserID)
		assert.Equal(t, []string{"USER"}, claims.Roles)
	})

	t.Run("密码错误", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{user: user}, &fakeSessionRepo{})
		_, err := svc.Login(context.Background(), &dto.CredentialDTO{
			Username: util.PtrString("alice"),
			Password: util.PtrString("wrong"),
		}, "127.0.0.1", "go-test")
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})

	t.Run("缺少登录凭证", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{user: user}, &fakeSessionRepo{})
		_, err := svc.Login(context.Background(), &dto.CredentialDTO{
			Password: util.PtrString("secret123"),
		}, "127.0.0.1", "go-test")
		assert.ErrorIs(t, err, ErrMissingLoginCredentials)
	})

	t.Run("封禁用户拒绝登录", func(t *testing.T) {
		banned := *user
		banned.IsBan = true
		svc := NewUserService(&fakeUserRepo{user: &banned}, &fakeSessionRepo{})
		_, err := svc.Login(context.Background(), &dto.CredentialDTO{
			Username: util.PtrString("alice"),
			Password: util.PtrString("secret123"),
		}, "127.0.0.1", "go-test")
		assert.ErrorIs(t, err, ErrUserBan)
	})
}
