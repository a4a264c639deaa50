package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	users  []*domain.User
	jobs   []*domain.Job
	failAt string
	// hidden 中的用户查询不到，但插入时会触发唯一约束
	hidden map[string]*domain.User
}

func (r *recorder) Save(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user.Email == r.failAt {
		return nil, errors.New("connection reset")
	}
	if u, ok := r.hidden[user.Email]; ok {
		delete(r.hidden, user.Email)
		r.users = append(r.users, u)
		return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	user.ID = int64(len(r.users) + 1)
	r.users = append(r.users, user)
	return user, nil
}

func (r *recorder) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.NotFoundByEmail("user", email)
}

func (r *recorder) Add(ctx context.Context, email string, title string, description string, instruction string) (*domain.Job, error) {
	job := &domain.Job{ID: int64(len(r.jobs) + 100), UserEmail: email, Title: title, Description: description, Instruction: instruction}
	r.jobs = append(r.jobs, job)
	return job, nil
}

type adRecorder struct {
	byJob map[int64][]string
}

func (a *adRecorder) Save(ctx context.Context, jobID int64, htmlCode string) (*domain.Ad, error) {
	a.byJob[jobID] = append(a.byJob[jobID], htmlCode)
	return &domain.Ad{ID: htmlCode, JobID: jobID, HTMLCode: htmlCode}, nil
}

func TestSeedFullGraph(t *testing.T) {
	rec := &recorder{}
	ads := &adRecorder{byJob: map[int64][]string{}}

	require.NoError(t, SeedFullGraph(context.Background(), rec, rec, ads, "a"))

	require.Len(t, rec.users, 2)
	assert.Equal(t, "admin user", rec.users[0].Roles)
	assert.Equal(t, "user", rec.users[1].Roles)

	require.Len(t, rec.jobs, 5)
	assert.Equal(t, "job1 Title", rec.jobs[0].Title)
	for i, want := range []string{"m@e.se", "m@e.se", "m@e.se", "a@l.se", "a@l.se"} {
		assert.Equal(t, want, rec.jobs[i].UserEmail)
	}

	total := 0
	for i, job := range rec.jobs {
		assert.Len(t, ads.byJob[job.ID], AdsPerJob[i])
		total += len(ads.byJob[job.ID])
	}
	assert.Equal(t, 11, total)
	assert.Equal(t, []string{"htmlCode 6", "htmlCode 7"}, ads.byJob[rec.jobs[1].ID])
}

func TestSeedFullGraphReusesInitialAdmin(t *testing.T) {
	admin := &domain.User{ID: 1, Email: "m@e.se", Username: "Mikael", Roles: "admin user"}
	rec := &recorder{users: []*domain.User{admin}}
	ads := &adRecorder{byJob: map[int64][]string{}}

	require.NoError(t, SeedFullGraph(context.Background(), rec, rec, ads, "a"))

	require.Len(t, rec.users, 2)
	assert.Same(t, admin, rec.users[0])
	require.Len(t, rec.jobs, 5)
	assert.Equal(t, "m@e.se", rec.jobs[0].UserEmail)

	total := 0
	for _, job := range rec.jobs {
		total += len(ads.byJob[job.ID])
	}
	assert.Equal(t, 11, total)
}

func TestSeedDemoUsersReusesUserCreatedConcurrently(t *testing.T) {
	admin := &domain.User{ID: 1, Email: "m@e.se", Username: "Mikael", Roles: "admin user"}
	rec := &recorder{hidden: map[string]*domain.User{"m@e.se": admin}}

	saved, err := SeedDemoUsers(context.Background(), rec, "a")
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Same(t, admin, saved[0])
	assert.Equal(t, "a@l.se", saved[1].Email)
}

func TestSeedDemoUsersStopsOnError(t *testing.T) {
	rec := &recorder{failAt: "a@l.se"}

	saved, err := SeedDemoUsers(context.Background(), rec, "a")
	assert.Error(t, err)
	assert.Len(t, saved, 1)
}

func TestSeedRandomUsers(t *testing.T) {
	rec := &recorder{}

	assert.Equal(t, 3, SeedRandomUsers(context.Background(), rec, 3, "a", "sprinta.se"))
	for _, u := range rec.users {
		assert.Contains(t, u.Email, "@sprinta.se")
	}
}
