package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDoesNotExist   = errors.New("Does not exist")
	ErrNotPureHTML    = errors.New("Response substring is not pure HTML")
	ErrUpstream       = errors.New("Chat completion returned no response")
	ErrBadCredentials = errors.New("username or password is incorrect")
	ErrEditConflict   = errors.New("The user was modified by another request, please reload and try again")
)

// NotFoundError 表示按 ID 或邮箱查找实体失败
type NotFoundError struct {
	Object string
	Field  string
	Value  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find %s with %s %v", e.Object, e.Field, e.Value)
}

func NotFoundByID(object string, id any) error {
	return &NotFoundError{Object: object, Field: "Id", Value: id}
}

func NotFoundByEmail(object string, email string) error {
	return &NotFoundError{Object: object, Field: "Email", Value: email}
}

// InvalidRoleError 表示角色不在允许的取值范围内
type InvalidRoleError struct {
	Role string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("Invalid role %q, allowed roles are admin and user", e.Role)
}
