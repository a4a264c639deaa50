package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

const EventAdGenerated = "EVENT_AD_GENERATED"

// publishMail 把邮件投递到消息队列，由 mail worker 负责真正发送
func (h *Handler) publishMail(mailMessage domain.MailMessage) error {
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         mailData,
		},
	)
}

// notifyWelcome 失败只记录日志，用户已经创建成功
func (h *Handler) notifyWelcome(user *domain.User) {
	err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   user.Email,
		Data: domain.WelcomeMailData{
			Username: user.Username,
			Email:    user.Email,
			Roles:    user.Roles,
		},
	})
	if err != nil {
		slog.Error("failed to publish welcome mail", "email", user.Email, "error", err)
	}
}

// notifyAdGenerated 通知职位所有者，并在 redis 上发布事件；两者失败都不影响生成结果
func (h *Handler) notifyAdGenerated(ctx context.Context, job *domain.Job, ad *domain.Ad) {
	username := job.UserEmail
	if owner, err := h.users.FindByEmail(ctx, job.UserEmail); err == nil {
		username = owner.Username
	}

	err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeAdGenerated,
		To:   job.UserEmail,
		Data: domain.AdGeneratedMailData{
			Username: username,
			JobID:    job.ID,
			JobTitle: job.Title,
			AdID:     ad.ID,
		},
	})
	if err != nil {
		slog.Error("failed to publish ad generated mail", "jobId", job.ID, "error", err)
	}

	payload, err := json.Marshal(struct {
		JobID int64  `json:"jobId"`
		AdID  string `json:"adId"`
		Email string `json:"email"`
	}{job.ID, ad.ID, job.UserEmail})
	if err != nil {
		slog.Error("failed to encode ad generated event", "jobId", job.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.events.Publish(ctx, EventAdGenerated, payload).Err(); err != nil {
		slog.Warn("failed to publish event", "event", EventAdGenerated, "jobId", job.ID, "error", err)
	}
}
