package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/sprinta-dev/headhunter/backend/internal/config"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

//go:embed schema.sql
var schema string

// Store 是 service 层依赖的持久化接口，*Repository 是它基于 PostgreSQL 的实现
type Store interface {
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int64) error

	GetAllJobs(ctx context.Context) ([]*domain.Job, error)
	GetJobsByUserEmail(ctx context.Context, email string) ([]*domain.Job, error)
	GetJobByID(ctx context.Context, id int64) (*domain.Job, error)
	GetJobTitlesByUserEmail(ctx context.Context, email string) ([]*domain.JobTitle, error)
	CreateJob(ctx context.Context, job *domain.Job) error
	UpdateJob(ctx context.Context, job *domain.Job) error
	DeleteJob(ctx context.Context, id int64) error

	GetAllAds(ctx context.Context) ([]*domain.Ad, error)
	GetAdByID(ctx context.Context, id string) (*domain.Ad, error)
	GetAdsByJobID(ctx context.Context, jobID int64) ([]*domain.Ad, error)
	CreateAd(ctx context.Context, ad *domain.Ad) error

	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// dbtx 同时被 *sql.DB 和 *sql.Tx 满足
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	db     dbtx
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		db:     dbpool,
	}
}

func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// Transaction 在同一个事务中执行 fn，fn 返回错误时回滚。已经处于事务中时直接复用外层事务
func (r *Repository) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if _, ok := r.db.(*sql.Tx); ok {
		return fn(r)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&Repository{cfg: r.cfg, dbpool: r.dbpool, db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

// Migrate 创建缺失的表，可以重复执行
func (r *Repository) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, schema)
	return err
}
