package domain

import "time"

type Job struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Instruction         string    `json:"instruction"`
	RecruiterName       string    `json:"recruiterName"`
	AdCompany           string    `json:"adCompany"`
	AdEmail             string    `json:"adEmail"`
	AdPhone             string    `json:"adPhone"`
	ApplicationDeadline string    `json:"applicationDeadline"`
	UserID              int64     `json:"-"`
	UserEmail           string    `json:"userEmail"`
	NumberOfAds         int       `json:"numberOfAds"`
	CreatedAt           time.Time `json:"createdAt"`
}

// JobTitle 只包含标题和 ID，用于前端的下拉列表
type JobTitle struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// JobUpdate 是全字段更新，未携带的字段会被清空
type JobUpdate struct {
	Title               string
	Description         string
	Instruction         string
	RecruiterName       string
	AdCompany           string
	AdEmail             string
	AdPhone             string
	ApplicationDeadline string
}

func (j *Job) Apply(update JobUpdate) {
	j.Title = update.Title
	j.Description = update.Description
	j.Instruction = update.Instruction
	j.RecruiterName = update.RecruiterName
	j.AdCompany = update.AdCompany
	j.AdEmail = update.AdEmail
	j.AdPhone = update.AdPhone
	j.ApplicationDeadline = update.ApplicationDeadline
}
