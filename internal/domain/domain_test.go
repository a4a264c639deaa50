package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMessage(t *testing.T) {
	assert.EqualError(t, NotFoundByID("job", int64(10)), "Could not find job with Id 10")
	assert.EqualError(t, NotFoundByEmail("user", "m@j.se"), "Could not find user with Email m@j.se")
	assert.EqualError(t, NotFoundByID("ad", "abc"), "Could not find ad with Id abc")

	var nf *NotFoundError
	assert.True(t, errors.As(NotFoundByID("job", 1), &nf))
	assert.Equal(t, "job", nf.Object)
}

func TestUserAuthorities(t *testing.T) {
	u := &User{Roles: "admin  user"}
	assert.Equal(t, []string{"ROLE_admin", "ROLE_user"}, u.Authorities())

	empty := &User{}
	assert.Empty(t, empty.Authorities())
}

func TestJobApplyReplacesEveryField(t *testing.T) {
	job := &Job{
		ID:            1,
		Title:         "old",
		RecruiterName: "Kalle",
		AdPhone:       "070",
		UserEmail:     "m@e.se",
	}

	job.Apply(JobUpdate{Title: "new", Description: "desc"})

	assert.Equal(t, "new", job.Title)
	assert.Equal(t, "desc", job.Description)
	assert.Empty(t, job.RecruiterName)
	assert.Empty(t, job.AdPhone)
	// 所属关系不受更新影响
	assert.Equal(t, int64(1), job.ID)
	assert.Equal(t, "m@e.se", job.UserEmail)
}
