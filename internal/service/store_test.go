package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/sprinta-dev/headhunter/backend/internal/chat"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
	"github.com/sprinta-dev/headhunter/backend/internal/repository"
)

// memStore 是测试用的内存实现，未命中时和 database/sql 一样返回 sql.ErrNoRows
type memStore struct {
	users  map[int64]*domain.User
	jobs   map[int64]*domain.Job
	ads    map[string]*domain.Ad
	nextID int64

	transactions int
}

var _ repository.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users: map[int64]*domain.User{},
		jobs:  map[int64]*domain.Job{},
		ads:   map[string]*domain.Ad{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) withCounts(u *domain.User) *domain.User {
	c := *u
	c.NumberOfJobs = 0
	for _, j := range m.jobs {
		if j.UserID == u.ID {
			c.NumberOfJobs++
		}
	}
	return &c
}

func (m *memStore) jobCopy(j *domain.Job) *domain.Job {
	c := *j
	c.UserEmail = m.users[j.UserID].Email
	c.NumberOfAds = 0
	for _, a := range m.ads {
		if a.JobID == j.ID {
			c.NumberOfAds++
		}
	}
	return &c
}

func (m *memStore) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, m.withCounts(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return m.withCounts(u), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) CreateUser(ctx context.Context, user *domain.User) error {
	user.ID = m.id()
	user.CreatedAt = time.Now()
	user.Version = 1
	c := *user
	m.users[user.ID] = &c
	return nil
}

func (m *memStore) UpdateUser(ctx context.Context, user *domain.User) error {
	stored, ok := m.users[user.ID]
	if !ok || stored.Version != user.Version {
		return sql.ErrNoRows
	}
	user.Version++
	c := *user
	m.users[user.ID] = &c
	return nil
}

func (m *memStore) DeleteUser(ctx context.Context, id int64) error {
	delete(m.users, id)
	for jobID, j := range m.jobs {
		if j.UserID == id {
			_ = m.DeleteJob(ctx, jobID)
		}
	}
	return nil
}

func (m *memStore) sortedJobs(filter func(*domain.Job) bool) []*domain.Job {
	jobs := make([]*domain.Job, 0)
	for _, j := range m.jobs {
		if filter(j) {
			jobs = append(jobs, m.jobCopy(j))
		}
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs
}

func (m *memStore) GetAllJobs(ctx context.Context) ([]*domain.Job, error) {
	return m.sortedJobs(func(*domain.Job) bool { return true }), nil
}

func (m *memStore) GetJobsByUserEmail(ctx context.Context, email string) ([]*domain.Job, error) {
	return m.sortedJobs(func(j *domain.Job) bool { return m.users[j.UserID].Email == email }), nil
}

func (m *memStore) GetJobByID(ctx context.Context, id int64) (*domain.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return m.jobCopy(j), nil
}

func (m *memStore) GetJobTitlesByUserEmail(ctx context.Context, email string) ([]*domain.JobTitle, error) {
	jobs, _ := m.GetJobsByUserEmail(ctx, email)
	titles := make([]*domain.JobTitle, 0, len(jobs))
	for _, j := range jobs {
		titles = append(titles, &domain.JobTitle{ID: j.ID, Title: j.Title})
	}
	return titles, nil
}

func (m *memStore) CreateJob(ctx context.Context, job *domain.Job) error {
	if _, ok := m.users[job.UserID]; !ok {
		return sql.ErrNoRows
	}
	job.ID = m.id()
	job.CreatedAt = time.Now()
	c := *job
	m.jobs[job.ID] = &c
	return nil
}

func (m *memStore) UpdateJob(ctx context.Context, job *domain.Job) error {
	if _, ok := m.jobs[job.ID]; !ok {
		return sql.ErrNoRows
	}
	c := *job
	m.jobs[job.ID] = &c
	return nil
}

func (m *memStore) DeleteJob(ctx context.Context, id int64) error {
	delete(m.jobs, id)
	for adID, a := range m.ads {
		if a.JobID == id {
			delete(m.ads, adID)
		}
	}
	return nil
}

func (m *memStore) sortedAds(filter func(*domain.Ad) bool) []*domain.Ad {
	ads := make([]*domain.Ad, 0)
	for _, a := range m.ads {
		if filter(a) {
			c := *a
			ads = append(ads, &c)
		}
	}
	sort.Slice(ads, func(i, j int) bool { return ads[i].CreatedAt.Before(ads[j].CreatedAt) })
	return ads
}

func (m *memStore) GetAllAds(ctx context.Context) ([]*domain.Ad, error) {
	return m.sortedAds(func(*domain.Ad) bool { return true }), nil
}

func (m *memStore) GetAdByID(ctx context.Context, id string) (*domain.Ad, error) {
	a, ok := m.ads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c := *a
	return &c, nil
}

func (m *memStore) GetAdsByJobID(ctx context.Context, jobID int64) ([]*domain.Ad, error) {
	return m.sortedAds(func(a *domain.Ad) bool { return a.JobID == jobID }), nil
}

func (m *memStore) CreateAd(ctx context.Context, ad *domain.Ad) error {
	if _, ok := m.jobs[ad.JobID]; !ok {
		return sql.ErrNoRows
	}
	ad.CreatedAt = time.Now().Add(time.Duration(len(m.ads)) * time.Millisecond)
	c := *ad
	m.ads[ad.ID] = &c
	return nil
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	m.transactions++
	return fn(m)
}

// seedUser 直接写入 store，绕过密码哈希
func (m *memStore) seedUser(email, username, roles string) *domain.User {
	u := &domain.User{Email: email, Username: username, Roles: roles}
	_ = m.CreateUser(context.Background(), u)
	return u
}

func (m *memStore) seedJob(owner *domain.User, title, description, instruction string) *domain.Job {
	j := &domain.Job{UserID: owner.ID, Title: title, Description: description, Instruction: instruction}
	_ = m.CreateJob(context.Background(), j)
	return j
}

type stubChat struct {
	resp *chat.Response
	err  error

	calls []chat.Request
}

func (s *stubChat) Generate(ctx context.Context, req chat.Request) (*chat.Response, error) {
	s.calls = append(s.calls, req)
	return s.resp, s.err
}

func reply(content string) *chat.Response {
	return &chat.Response{Choices: []chat.Choice{{Message: chat.Message{Role: "assistant", Content: content}}}}
}
