package repository

import (
	"context"
	"database/sql"

	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

func scanAds(rows *sql.Rows) ([]*domain.Ad, error) {
	defer rows.Close()

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		ad := &domain.Ad{}
		if err := rows.Scan(&ad.ID, &ad.HTMLCode, &ad.JobID, &ad.CreatedAt); err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ads, nil
}

func (r *Repository) GetAllAds(ctx context.Context) ([]*domain.Ad, error) {
	query := `
		SELECT id, html_code, job_id, created_at FROM ads ORDER BY created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return scanAds(rows)
}

func (r *Repository) GetAdsByJobID(ctx context.Context, jobID int64) ([]*domain.Ad, error) {
	query := `
		SELECT id, html_code, job_id, created_at FROM ads WHERE job_id = $1 ORDER BY created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}

	return scanAds(rows)
}

func (r *Repository) GetAdByID(ctx context.Context, id string) (*domain.Ad, error) {
	query := `
		SELECT html_code, job_id, created_at FROM ads WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	ad := &domain.Ad{ID: id}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&ad.HTMLCode, &ad.JobID, &ad.CreatedAt); err != nil {
		return nil, err
	}

	return ad, nil
}

// CreateAd 要求 ad.ID 已由调用方生成，且 ad.JobID 指向一个存在的职位
func (r *Repository) CreateAd(ctx context.Context, ad *domain.Ad) error {
	query := `
		INSERT INTO ads (id, html_code, job_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if err := r.db.QueryRowContext(ctx, query, ad.ID, ad.HTMLCode, ad.JobID).Scan(&ad.CreatedAt); err != nil {
		return err
	}

	return nil
}
