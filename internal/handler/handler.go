package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sprinta-dev/headhunter/backend/internal/config"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
	"github.com/sprinta-dev/headhunter/backend/internal/security"
)

type UserService interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	Register(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	Update(ctx context.Context, email string, username string, roles string) (*domain.User, error)
	Delete(ctx context.Context, email string) error
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)
}

type JobService interface {
	FindAll(ctx context.Context) ([]*domain.Job, error)
	FindAllByEmail(ctx context.Context, email string) ([]*domain.Job, error)
	FindByID(ctx context.Context, id int64) (*domain.Job, error)
	JobTitles(ctx context.Context, email string) ([]*domain.JobTitle, error)
	Add(ctx context.Context, email string, title string, description string, instruction string) (*domain.Job, error)
	Update(ctx context.Context, id int64, update domain.JobUpdate) (*domain.Job, error)
	Delete(ctx context.Context, email string, id int64) error
	Generate(ctx context.Context, id int64) (*domain.Job, *domain.Ad, error)
}

type AdService interface {
	FindAll(ctx context.Context) ([]*domain.Ad, error)
	FindByID(ctx context.Context, id string) (*domain.Ad, error)
	FindByJobID(ctx context.Context, jobID int64) ([]*domain.Ad, error)
	FindUserByAdID(ctx context.Context, adID string) (*domain.User, error)
	Save(ctx context.Context, jobID int64, htmlCode string) (*domain.Ad, error)
}

// MailPublisher 由 *amqp.Channel 实现
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EventPublisher 由 *redis.Client 实现
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	translator  ut.Translator
	users       UserService
	jobs        JobService
	ads         AdService
	tokens      *security.TokenService
	mailChannel MailPublisher
	events      EventPublisher

	Mux *chi.Mux
}

func NewHandler(
	cfg *config.Config,
	users UserService,
	jobs JobService,
	ads AdService,
	tokens *security.TokenService,
	mailCh MailPublisher,
	events EventPublisher,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		translator:  trans,
		users:       users,
		jobs:        jobs,
		ads:         ads,
		tokens:      tokens,
		mailChannel: mailCh,
		events:      events,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 未匹配的路由同样需要登录，登录后才返回 404
	h.Mux.NotFound(h.auth(http.HandlerFunc(h.notFound)).ServeHTTP)
	h.Mux.MethodNotAllowed(h.auth(http.HandlerFunc(h.notFound)).ServeHTTP)

	adminOnly := h.RequiredAuthority(domain.AuthorityPrefix + string(domain.RoleAdmin))

	h.Mux.Route(h.config.API.UsersBaseURL, func(r chi.Router) {
		r.Post("/register", h.RegisterUser)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.GetMe)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/findAll", h.FindAllUsers)
				r.Get("/findUser/{email}", h.FindUser)
				r.Post("/addUser", h.AddUser)
				r.Put("/update/{email}", h.UpdateUser)
				r.Delete("/delete/{email}", h.DeleteUser)
			})
		})
	})

	h.Mux.Route(h.config.API.JobsBaseURL, func(r chi.Router) {
		r.Get("/findAll", h.FindAllJobs)
		r.Get("/findAllJobsByEmail/{email}", h.FindAllJobsByEmail)
		r.Get("/findJob/{id}", h.FindJob)
		r.Get("/getJobTitles/{email}", h.GetJobTitles)
		r.Post("/addJob", h.AddJob)
		r.Put("/update/{id}", h.UpdateJob)
		r.Delete("/delete/{email}/{id}", h.DeleteJob)
		r.Post("/generate/{id}", h.GenerateAd)
	})

	h.Mux.Route(h.config.API.AdsBaseURL, func(r chi.Router) {
		r.Get("/findAllAds", h.FindAllAds)
		r.Get("/findAd/{adId}", h.FindAd)
		r.Get("/findAdsByJobId/{jobId}", h.FindAdsByJobID)
		r.Get("/findUserByAdId/{adId}", h.FindUserByAdID)
		r.Post("/saveAd/{jobId}", h.SaveAd)
	})
}
