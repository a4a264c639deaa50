package utils

import (
	"slices"
	"strings"

	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

var allowedRoles = []domain.Role{domain.RoleAdmin, domain.RoleUser}

// NormalizeRoles 去掉角色字符串中多余的双引号和空白，并检查每个角色是否合法
func NormalizeRoles(raw string) (string, error) {
	fields := strings.Fields(strings.ReplaceAll(raw, `"`, ""))
	if len(fields) == 0 {
		return "", &domain.InvalidRoleError{Role: raw}
	}

	roles := make([]string, 0, len(fields))
	for _, field := range fields {
		if !slices.Contains(allowedRoles, domain.Role(field)) {
			return "", &domain.InvalidRoleError{Role: field}
		}
		// 重复的角色只保留一个
		if !slices.Contains(roles, field) {
			roles = append(roles, field)
		}
	}

	return strings.Join(roles, " "), nil
}
