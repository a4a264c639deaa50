// Package service 包含业务逻辑，不依赖 net/http；所有写操作都在一个事务中完成
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sprinta-dev/headhunter/backend/internal/chat"
)

// ChatClient 由 *chat.Client 实现
type ChatClient interface {
	Generate(ctx context.Context, req chat.Request) (*chat.Response, error)
}

// PasswordHasher 由 *security.PasswordHasher 实现
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) (bool, error)
}

// notFound 把 sql.ErrNoRows 转换成对应的 NotFoundError，其余错误原样返回
func notFound(err error, notFoundErr error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}
	return err
}
