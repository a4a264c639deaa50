package domain

import "time"

type Ad struct {
	ID        string    `json:"id"`
	HTMLCode  string    `json:"htmlCode"`
	JobID     int64     `json:"jobId"`
	CreatedAt time.Time `json:"createdAt"`
}
