package repository

import (
	"context"
	"database/sql"

	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

const jobColumns = `
	j.id, j.title, j.description, j.instruction, j.recruiter_name, j.ad_company, j.ad_email,
	j.ad_phone, j.application_deadline, j.user_id, u.email, j.created_at,
	(SELECT COUNT(*) FROM ads a WHERE a.job_id = j.id)
`

func jobDst(job *domain.Job) []any {
	return []any{
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Instruction,
		&job.RecruiterName,
		&job.AdCompany,
		&job.AdEmail,
		&job.AdPhone,
		&job.ApplicationDeadline,
		&job.UserID,
		&job.UserEmail,
		&job.CreatedAt,
		&job.NumberOfAds,
	}
}

func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{}
		if err := rows.Scan(jobDst(job)...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *Repository) GetAllJobs(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j JOIN users u ON u.id = j.user_id ORDER BY j.id`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return scanJobs(rows)
}

func (r *Repository) GetJobsByUserEmail(ctx context.Context, email string) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j JOIN users u ON u.id = j.user_id WHERE u.email = $1 ORDER BY j.id`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}

	return scanJobs(rows)
}

func (r *Repository) GetJobByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j JOIN users u ON u.id = j.user_id WHERE j.id = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	job := &domain.Job{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(jobDst(job)...); err != nil {
		return nil, err
	}

	return job, nil
}

func (r *Repository) GetJobTitlesByUserEmail(ctx context.Context, email string) ([]*domain.JobTitle, error) {
	query := `
		SELECT j.id, j.title
		FROM jobs j JOIN users u ON u.id = j.user_id
		WHERE u.email = $1
		ORDER BY j.id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	titles := make([]*domain.JobTitle, 0)
	for rows.Next() {
		title := &domain.JobTitle{}
		if err := rows.Scan(&title.ID, &title.Title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return titles, nil
}

// CreateJob 要求 job.UserID 已经指向一个存在的用户
func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (
			title, description, instruction, recruiter_name, ad_company,
			ad_email, ad_phone, application_deadline, user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		job.Title,
		job.Description,
		job.Instruction,
		job.RecruiterName,
		job.AdCompany,
		job.AdEmail,
		job.AdPhone,
		job.ApplicationDeadline,
		job.UserID,
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateJob(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET
			title = $1,
			description = $2,
			instruction = $3,
			recruiter_name = $4,
			ad_company = $5,
			ad_email = $6,
			ad_phone = $7,
			application_deadline = $8
		WHERE id = $9
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		job.Title,
		job.Description,
		job.Instruction,
		job.RecruiterName,
		job.AdCompany,
		job.AdEmail,
		job.AdPhone,
		job.ApplicationDeadline,
		job.ID,
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&job.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteJob(ctx context.Context, id int64) error {
	query := `
		DELETE FROM jobs WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
