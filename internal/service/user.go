package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sprinta-dev/headhunter/backend/internal/domain"
	"github.com/sprinta-dev/headhunter/backend/internal/repository"
	"github.com/sprinta-dev/headhunter/backend/internal/utils"
)

type UserService struct {
	store  repository.Store
	hasher PasswordHasher
}

func NewUserService(store repository.Store, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

func (s *UserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	return s.store.GetAllUsers(ctx)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err, domain.NotFoundByEmail("user", email))
	}
	return user, nil
}

// Save 对密码进行哈希后插入用户，角色会先经过 NormalizeRoles
func (s *UserService) Save(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	roles, err := utils.NormalizeRoles(user.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user.Roles = roles
	user.PasswordHash = hash

	if err := s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.CreateUser(ctx, user)
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Register 是公开注册，无论请求中带了什么角色都只授予 user
func (s *UserService) Register(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	user.Roles = string(domain.RoleUser)
	return s.Save(ctx, user, password)
}

// Update 更新用户名和角色，username 为空时保持不变
func (s *UserService) Update(ctx context.Context, email string, username string, roles string) (*domain.User, error) {
	normalized, err := utils.NormalizeRoles(roles)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		found, err := tx.GetUserByEmail(ctx, email)
		if err != nil {
			return notFound(err, domain.NotFoundByEmail("user", email))
		}

		if username = strings.TrimSpace(username); username != "" {
			found.Username = username
		}
		found.Roles = normalized

		if err := tx.UpdateUser(ctx, found); err != nil {
			// 版本号不匹配说明读取之后被并发修改
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrEditConflict
			}
			return err
		}

		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete 删除用户，其职位和广告随之级联删除
func (s *UserService) Delete(ctx context.Context, email string) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		found, err := tx.GetUserByEmail(ctx, email)
		if err != nil {
			return notFound(err, domain.NotFoundByEmail("user", email))
		}
		return tx.DeleteUser(ctx, found.ID)
	})
}

// Authenticate 校验邮箱和密码，两者任一不正确都返回 ErrBadCredentials
func (s *UserService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Matches(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrBadCredentials
	}

	return user, nil
}
