package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// AuthorityPrefix 是签发令牌时加在每个角色前的前缀
const AuthorityPrefix = "ROLE_"

type User struct {
	ID           int64     `json:"-"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        string    `json:"roles"`
	NumberOfJobs int       `json:"numberOfJobs"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// Authorities 把以空格分隔的角色转换成 ROLE_ 前缀的权限列表
func (u *User) Authorities() []string {
	roles := strings.Fields(u.Roles)
	authorities := make([]string, 0, len(roles))
	for _, role := range roles {
		authorities = append(authorities, AuthorityPrefix+role)
	}
	return authorities
}
