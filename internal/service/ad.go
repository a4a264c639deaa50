package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
	"github.com/sprinta-dev/headhunter/backend/internal/repository"
)

type AdService struct {
	store repository.Store
}

func NewAdService(store repository.Store) *AdService {
	return &AdService{store: store}
}

func (s *AdService) FindAll(ctx context.Context) ([]*domain.Ad, error) {
	return s.store.GetAllAds(ctx)
}

func (s *AdService) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	ad, err := s.store.GetAdByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.NotFoundByID("ad", id))
	}
	return ad, nil
}

func (s *AdService) FindByJobID(ctx context.Context, jobID int64) ([]*domain.Ad, error) {
	return s.store.GetAdsByJobID(ctx, jobID)
}

// FindUserByAdID 沿着 ad -> job -> user 找到广告的所有者
func (s *AdService) FindUserByAdID(ctx context.Context, adID string) (*domain.User, error) {
	ad, err := s.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	job, err := s.store.GetJobByID(ctx, ad.JobID)
	if err != nil {
		return nil, notFound(err, domain.NotFoundByID("job", ad.JobID))
	}

	user, err := s.store.GetUserByEmail(ctx, job.UserEmail)
	if err != nil {
		return nil, notFound(err, domain.NotFoundByEmail("user", job.UserEmail))
	}

	return user, nil
}

// Save 把手写的广告挂到已存在的职位下
func (s *AdService) Save(ctx context.Context, jobID int64, htmlCode string) (*domain.Ad, error) {
	ad := &domain.Ad{
		ID:       uuid.NewString(),
		HTMLCode: htmlCode,
		JobID:    jobID,
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.GetJobByID(ctx, jobID); err != nil {
			return notFound(err, domain.NotFoundByID("job", jobID))
		}
		return tx.CreateAd(ctx, ad)
	})
	if err != nil {
		return nil, err
	}

	return ad, nil
}
