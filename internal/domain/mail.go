package domain

const (
	MailTypeWelcome     = "welcome"
	MailTypeAdGenerated = "ad_generated"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    string `json:"roles"`
}

type AdGeneratedMailData struct {
	Username string `json:"username"`
	JobID    int64  `json:"jobId"`
	JobTitle string `json:"jobTitle"`
	AdID     string `json:"adId"`
}
