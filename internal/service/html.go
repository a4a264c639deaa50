package service

import (
	"regexp"

	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

var (
	doctypeMarker = regexp.MustCompile(`(?i)<!doctype`)
	htmlCloseTag  = regexp.MustCompile(`(?i)</html>`)
)

// ExtractHTML 截取第一个 <!DOCTYPE 到最后一个 </html>（含）之间的内容
func ExtractHTML(response string) (string, error) {
	start := doctypeMarker.FindStringIndex(response)
	if start == nil {
		return "", domain.ErrNotPureHTML
	}

	closes := htmlCloseTag.FindAllStringIndex(response, -1)
	if len(closes) == 0 {
		return "", domain.ErrNotPureHTML
	}

	end := closes[len(closes)-1][1]
	if end <= start[0] {
		return "", domain.ErrNotPureHTML
	}

	return response[start[0]:end], nil
}
