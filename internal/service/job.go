package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sprinta-dev/headhunter/backend/internal/chat"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
	"github.com/sprinta-dev/headhunter/backend/internal/repository"
)

type JobService struct {
	store repository.Store
	chat  ChatClient
	model string
}

func NewJobService(store repository.Store, chatClient ChatClient, model string) *JobService {
	return &JobService{store: store, chat: chatClient, model: model}
}

func (s *JobService) FindAll(ctx context.Context) ([]*domain.Job, error) {
	return s.store.GetAllJobs(ctx)
}

func (s *JobService) FindAllByEmail(ctx context.Context, email string) ([]*domain.Job, error) {
	return s.store.GetJobsByUserEmail(ctx, email)
}

func (s *JobService) FindByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.store.GetJobByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.NotFoundByID("job", id))
	}
	return job, nil
}

func (s *JobService) JobTitles(ctx context.Context, email string) ([]*domain.JobTitle, error) {
	return s.store.GetJobTitlesByUserEmail(ctx, email)
}

// Add 为指定邮箱的用户创建职位，用户必须已经存在
func (s *JobService) Add(ctx context.Context, email string, title string, description string, instruction string) (*domain.Job, error) {
	job := &domain.Job{
		Title:       title,
		Description: description,
		Instruction: instruction,
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		owner, err := tx.GetUserByEmail(ctx, email)
		if err != nil {
			return notFound(err, domain.NotFoundByEmail("user", email))
		}

		job.UserID = owner.ID
		job.UserEmail = owner.Email
		return tx.CreateJob(ctx, job)
	})
	if err != nil {
		return nil, err
	}

	return job, nil
}

// Update 是全字段替换
func (s *JobService) Update(ctx context.Context, id int64, update domain.JobUpdate) (*domain.Job, error) {
	var job *domain.Job
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		found, err := tx.GetJobByID(ctx, id)
		if err != nil {
			return notFound(err, domain.NotFoundByID("job", id))
		}

		found.Apply(update)
		if err := tx.UpdateJob(ctx, found); err != nil {
			return err
		}

		job = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return job, nil
}

// Delete 只允许职位的所有者删除，邮箱比较不区分大小写
func (s *JobService) Delete(ctx context.Context, email string, id int64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		job, err := tx.GetJobByID(ctx, id)
		if err != nil {
			return notFound(err, domain.NotFoundByID("job", id))
		}

		user, err := tx.GetUserByEmail(ctx, email)
		if err != nil {
			return notFound(err, domain.NotFoundByEmail("user", email))
		}

		if !strings.EqualFold(job.UserEmail, user.Email) {
			return domain.ErrDoesNotExist
		}

		return tx.DeleteJob(ctx, job.ID)
	})
}

// Generate 用职位的 instruction 和 description 请求生成广告，截取其中的 HTML 后保存为新的广告
func (s *JobService) Generate(ctx context.Context, id int64) (*domain.Job, *domain.Ad, error) {
	job, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	// 调用上游期间不占用数据库事务
	resp, err := s.chat.Generate(ctx, chat.Request{
		Model: s.model,
		Messages: []chat.Message{
			{Role: "system", Content: job.Instruction},
			{Role: "user", Content: job.Description},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, nil, domain.ErrUpstream
	}

	html, err := ExtractHTML(resp.Choices[0].Message.Content)
	if err != nil {
		slog.Warn("generated ad is not pure html", "jobId", id, "length", len(resp.Choices[0].Message.Content))
		return nil, nil, err
	}

	ad := &domain.Ad{
		ID:       uuid.NewString(),
		HTMLCode: html,
		JobID:    job.ID,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		// 生成期间职位可能已被删除
		if _, err := tx.GetJobByID(ctx, job.ID); err != nil {
			return notFound(err, domain.NotFoundByID("job", job.ID))
		}
		return tx.CreateAd(ctx, ad)
	})
	if err != nil {
		return nil, nil, err
	}

	job.NumberOfAds++
	return job, ad, nil
}
