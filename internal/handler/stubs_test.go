package handler

import (
	"context"
	"encoding/json"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

type stubUsers struct {
	users     map[string]*domain.User
	passwords map[string]string
	saveErr   error
	updateErr error
}

func newStubUsers() *stubUsers {
	s := &stubUsers{users: map[string]*domain.User{}, passwords: map[string]string{}}
	s.users["m@e.se"] = &domain.User{ID: 1, Email: "m@e.se", Username: "Mikael", Roles: "admin user"}
	s.users["a@l.se"] = &domain.User{ID: 2, Email: "a@l.se", Username: "Anders", Roles: "user"}
	s.passwords["m@e.se"] = "a"
	s.passwords["a@l.se"] = "a"
	return s
}

func (s *stubUsers) FindAll(ctx context.Context) ([]*domain.User, error) {
	return []*domain.User{s.users["m@e.se"], s.users["a@l.se"]}, nil
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, domain.NotFoundByEmail("user", email)
	}
	return u, nil
}

func (s *stubUsers) Save(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	user.ID = int64(len(s.users) + 1)
	s.users[user.Email] = user
	s.passwords[user.Email] = password
	return user, nil
}

func (s *stubUsers) Register(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	user.Roles = "user"
	return s.Save(ctx, user, password)
}

func (s *stubUsers) Update(ctx context.Context, email string, username string, roles string) (*domain.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if username != "" {
		u.Username = username
	}
	u.Roles = strings.ReplaceAll(roles, `"`, "")
	return u, nil
}

func (s *stubUsers) Delete(ctx context.Context, email string) error {
	if _, err := s.FindByEmail(ctx, email); err != nil {
		return err
	}
	delete(s.users, email)
	return nil
}

func (s *stubUsers) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	u, ok := s.users[email]
	if !ok || s.passwords[email] != password {
		return nil, domain.ErrBadCredentials
	}
	return u, nil
}

type stubJobs struct {
	jobs        map[int64]*domain.Job
	generateErr error
	html        string
}

func newStubJobs() *stubJobs {
	return &stubJobs{jobs: map[int64]*domain.Job{
		1: {ID: 1, Title: "Java developer", UserEmail: "m@e.se"},
	}}
}

func (s *stubJobs) FindAll(ctx context.Context) ([]*domain.Job, error) {
	return []*domain.Job{s.jobs[1]}, nil
}

func (s *stubJobs) FindAllByEmail(ctx context.Context, email string) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)
	for _, j := range s.jobs {
		if j.UserEmail == email {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (s *stubJobs) FindByID(ctx context.Context, id int64) (*domain.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.NotFoundByID("job", id)
	}
	return j, nil
}

func (s *stubJobs) JobTitles(ctx context.Context, email string) ([]*domain.JobTitle, error) {
	return []*domain.JobTitle{{ID: 1, Title: "Java developer"}}, nil
}

func (s *stubJobs) Add(ctx context.Context, email string, title string, description string, instruction string) (*domain.Job, error) {
	j := &domain.Job{ID: int64(len(s.jobs) + 1), Title: title, Description: description, Instruction: instruction, UserEmail: email}
	s.jobs[j.ID] = j
	return j, nil
}

func (s *stubJobs) Update(ctx context.Context, id int64, update domain.JobUpdate) (*domain.Job, error) {
	j, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	j.Apply(update)
	return j, nil
}

func (s *stubJobs) Delete(ctx context.Context, email string, id int64) error {
	j, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(j.UserEmail, email) {
		return domain.ErrDoesNotExist
	}
	delete(s.jobs, id)
	return nil
}

func (s *stubJobs) Generate(ctx context.Context, id int64) (*domain.Job, *domain.Ad, error) {
	j, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.generateErr != nil {
		return nil, nil, s.generateErr
	}
	j.NumberOfAds++
	return j, &domain.Ad{ID: "ad-1", HTMLCode: s.html, JobID: id}, nil
}

type stubAds struct{}

func (stubAds) FindAll(ctx context.Context) ([]*domain.Ad, error) {
	return []*domain.Ad{}, nil
}

func (stubAds) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	return nil, domain.NotFoundByID("ad", id)
}

func (stubAds) FindByJobID(ctx context.Context, jobID int64) ([]*domain.Ad, error) {
	return []*domain.Ad{}, nil
}

func (stubAds) FindUserByAdID(ctx context.Context, adID string) (*domain.User, error) {
	return nil, domain.NotFoundByID("ad", adID)
}

func (stubAds) Save(ctx context.Context, jobID int64, htmlCode string) (*domain.Ad, error) {
	if jobID != 1 {
		return nil, domain.NotFoundByID("job", jobID)
	}
	return &domain.Ad{ID: "ad-2", HTMLCode: htmlCode, JobID: jobID}, nil
}

type published struct {
	key string
	msg domain.MailMessage
}

type stubMail struct {
	sent []published
}

func (s *stubMail) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	var m domain.MailMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}
	s.sent = append(s.sent, published{key: key, msg: m})
	return nil
}

type stubEvents struct {
	channels []string
}

func (s *stubEvents) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	s.channels = append(s.channels, channel)
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	cmd.SetVal(1)
	return cmd
}
