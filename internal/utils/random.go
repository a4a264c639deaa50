package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

var commonFirstNames = []string{
	"Anders", "Mikael", "Johan", "Erik", "Lars", "Karl", "Per", "Nils", "Jan", "Olof",
	"Anna", "Eva", "Maria", "Karin", "Sara", "Lena", "Kerstin", "Ingrid", "Emma", "Elin",
}

var commonLastNames = []string{
	"Andersson", "Johansson", "Karlsson", "Nilsson", "Eriksson",
	"Larsson", "Olsson", "Persson", "Svensson", "Gustafsson",
}

var digits = "0123456789"

func GenerateRandomName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

// GenerateEmailFromName 用名字的首字母加姓氏加随机数字生成邮箱
func GenerateEmailFromName(name string, emailDomainName string) string {
	parts := strings.Fields(strings.ToLower(name))
	local := ""
	for i, part := range parts {
		if i == len(parts)-1 {
			local += part
		} else {
			local += part[:1]
		}
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

var roles = []string{
	string(domain.RoleUser),
	string(domain.RoleUser),
	fmt.Sprintf("%s %s", domain.RoleAdmin, domain.RoleUser),
}

func GenerateRandomRoles() string {
	return roles[rand.Intn(len(roles))]
}

// GenerateRandomUser 生成一个随机用户，密码由调用方交给 UserService 哈希
func GenerateRandomUser(emailDomainName string) *domain.User {
	name := GenerateRandomName()

	return &domain.User{
		Email:    GenerateEmailFromName(name, emailDomainName),
		Username: strings.Fields(name)[0],
		Roles:    GenerateRandomRoles(),
	}
}
