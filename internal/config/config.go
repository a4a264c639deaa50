package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"120"` // 生成广告需要等待上游
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database     Database `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Email    string `env:"EMAIL" envDefault:"m@e.se"`
		Username string `env:"USERNAME" envDefault:"Mikael"`
		Password string `env:"PASSWORD,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration      int    `env:"EXPIRATION" envDefault:"2"` // 小时
		Issuer          string `env:"ISSUER" envDefault:"self"`
		RSAKeyBits      int    `env:"RSA_KEY_BITS" envDefault:"2048"`
		AuthoritiesName string `env:"AUTHORITIES_CLAIM" envDefault:"roles"`
	} `envPrefix:"JWT_"`
	Password Password `envPrefix:"PASSWORD_"`
	API      struct {
		UsersBaseURL string `env:"BASE_URL_USERS" envDefault:"/api/v1/users"`
		JobsBaseURL  string `env:"BASE_URL_JOBS" envDefault:"/api/v1/jobs"`
		AdsBaseURL   string `env:"BASE_URL_ADS" envDefault:"/api/v1/ads"`
	} `envPrefix:"API_"`
	OpenAI struct {
		APIKey  string `env:"API_KEY,required"`
		BaseURL string `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
		Model   string `env:"MODEL" envDefault:"gpt-4o"`
		Timeout int    `env:"TIMEOUT" envDefault:"90"`
	} `envPrefix:"OPENAI_"`
	CORS struct {
		AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	} `envPrefix:"CORS_"`
	Seed  Seed `envPrefix:"SEED_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"5"`
	} `envPrefix:"REDIS_"`
}

type Database struct {
	DSN                string `env:"DSN,required"`
	ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
	QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
	TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
	MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
	MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
}

type Password struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`
}

type Seed struct {
	User struct {
		Password string `env:"PASSWORD" envDefault:"a"`
	} `envPrefix:"USER_"`
	EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"sprinta.se"`
}

// seedEnv 是 seed 命令实际用到的配置，不要求上游、消息队列等 API 专用的变量
type seedEnv struct {
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	Database    Database `envPrefix:"DATABASE_"`
	Password    Password `envPrefix:"PASSWORD_"`
	Seed        Seed     `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadSeedConfig 只读取数据库、密码哈希和种子数据相关的配置，其余字段保持零值
func LoadSeedConfig() (*Config, error) {
	se := &seedEnv{}
	if err := parse(se); err != nil {
		return nil, err
	}

	return &Config{
		Environment: se.Environment,
		Database:    se.Database,
		Password:    se.Password,
		Seed:        se.Seed,
	}, nil
}

func parse(v any) error {
	if err := env.Parse(v); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return aggErr.Errors[0]
		}
		return err
	}
	return nil
}
