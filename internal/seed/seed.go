// Package seed 向数据库写入演示和调试用的数据，所有写入都经过 service 层
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
	"github.com/sprinta-dev/headhunter/backend/internal/utils"
)

type UserSaver interface {
	Save(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type JobAdder interface {
	Add(ctx context.Context, email string, title string, description string, instruction string) (*domain.Job, error)
}

type AdSaver interface {
	Save(ctx context.Context, jobID int64, htmlCode string) (*domain.Ad, error)
}

// AdsPerJob 是完整演示数据中每个职位下的广告数量，按职位创建顺序排列
var AdsPerJob = []int{5, 2, 1, 2, 1}

// DemoUsers 返回两个演示用户：管理员 Mikael 和普通用户 Anders
func DemoUsers() []*domain.User {
	return []*domain.User{
		{Email: "m@e.se", Username: "Mikael", Roles: "admin user"},
		{Email: "a@l.se", Username: "Anders", Roles: "user"},
	}
}

// SeedDemoUsers 插入演示用户。已经存在的用户（例如 API 启动时创建的初始管理员）直接复用
func SeedDemoUsers(ctx context.Context, users UserSaver, password string) ([]*domain.User, error) {
	saved := make([]*domain.User, 0, 2)
	for _, user := range DemoUsers() {
		u, err := saveOrReuse(ctx, users, user, password)
		if err != nil {
			return saved, fmt.Errorf("save user %s: %w", user.Email, err)
		}
		saved = append(saved, u)
	}
	return saved, nil
}

func saveOrReuse(ctx context.Context, users UserSaver, user *domain.User, password string) (*domain.User, error) {
	existing, err := users.FindByEmail(ctx, user.Email)
	if err == nil {
		slog.Info("demo user already exists", "email", user.Email)
		return existing, nil
	}
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	u, err := users.Save(ctx, user, password)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key" {
		// 查询与插入之间被其他进程抢先创建
		return users.FindByEmail(ctx, user.Email)
	}
	return u, err
}

// SeedRandomUsers 插入 n 个随机用户，返回成功插入的数量；单个失败只记录日志
func SeedRandomUsers(ctx context.Context, users UserSaver, n int, password string, emailDomain string) int {
	cnt := 0
	for i := 0; i < n; i++ {
		user := utils.GenerateRandomUser(emailDomain)
		if _, err := users.Save(ctx, user, password); err != nil {
			slog.Error("failed to insert user", "email", user.Email, "error", err)
			continue
		}
		cnt++
	}
	return cnt
}

// SeedFullGraph 插入演示用户、五个职位（前三个属于 Mikael，后两个属于 Anders）以及它们的广告
func SeedFullGraph(ctx context.Context, users UserSaver, jobs JobAdder, ads AdSaver, password string) error {
	demo, err := SeedDemoUsers(ctx, users, password)
	if err != nil {
		return err
	}

	owners := []string{demo[0].Email, demo[0].Email, demo[0].Email, demo[1].Email, demo[1].Email}

	adNumber := 0
	for i, owner := range owners {
		n := i + 1
		job, err := jobs.Add(ctx, owner,
			fmt.Sprintf("job%d Title", n),
			fmt.Sprintf("job%d Description", n),
			fmt.Sprintf("job%d Instruction", n),
		)
		if err != nil {
			return fmt.Errorf("add job %d: %w", n, err)
		}

		for range AdsPerJob[i] {
			adNumber++
			if _, err := ads.Save(ctx, job.ID, fmt.Sprintf("htmlCode %d", adNumber)); err != nil {
				return fmt.Errorf("save ad %d: %w", adNumber, err)
			}
		}
	}

	slog.Info("full demo data inserted", "users", len(demo), "jobs", len(owners), "ads", adNumber)
	return nil
}
