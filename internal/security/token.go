// Package security 负责令牌的签发和校验以及密码哈希
//
// RSA 密钥对在进程启动时生成并只保存在内存中，因此重启后之前签发的令牌全部失效。
package security

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopePrefix 是默认加在权限前的前缀，提取权限时会被去掉
const ScopePrefix = "SCOPE_"

var ErrInvalidToken = errors.New("invalid token")

type Principal struct {
	Subject     string
	Authorities []string
}

type TokenService struct {
	privateKey      *rsa.PrivateKey
	issuer          string
	expiration      time.Duration
	authoritiesName string
}

func NewTokenService(bits int, issuer string, expiration time.Duration, authoritiesName string) (*TokenService, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa key: %w", err)
	}

	return &TokenService{
		privateKey:      privateKey,
		issuer:          issuer,
		expiration:      expiration,
		authoritiesName: authoritiesName,
	}, nil
}

// Issue 使用私钥签发令牌，authorities 以空格拼接写入权限声明
func (s *TokenService) Issue(subject string, authorities []string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":             s.issuer,
		"sub":             subject,
		"iat":             jwt.NewNumericDate(now),
		"exp":             jwt.NewNumericDate(now.Add(s.expiration)),
		s.authoritiesName: strings.Join(authorities, " "),
	})

	return token.SignedString(s.privateKey)
}

// Verify 使用公钥校验令牌并提取主体和权限
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return &s.privateKey.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Principal{
		Subject:     subject,
		Authorities: ExtractAuthorities(claims[s.authoritiesName]),
	}, nil
}

// ExtractAuthorities 支持空格分隔的字符串和字符串数组两种形式
func ExtractAuthorities(claim any) []string {
	var raw []string
	switch v := claim.(type) {
	case string:
		raw = strings.Fields(v)
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	authorities := make([]string, 0, len(raw))
	for _, a := range raw {
		a = strings.TrimPrefix(strings.TrimSpace(a), ScopePrefix)
		if a != "" {
			authorities = append(authorities, a)
		}
	}
	return authorities
}
