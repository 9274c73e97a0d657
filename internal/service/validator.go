package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/RadikAgl/Bot-hoteline/internal/model"
)

var (
	priceRangeRe = regexp.MustCompile(`^[0-9]+\s+[0-9]+$`)
	distanceRe   = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	integerRe    = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateInput проверяет синтаксис ответа пользователя для текущего шага
// диалога. Побочных эффектов нет; false означает повторный вопрос.
func ValidateInput(step model.Step, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	switch step {
	case model.StepDestination:
		return isCityName(text)
	case model.StepPriceRange:
		return priceRangeRe.MatchString(text)
	case model.StepDistance:
		return distanceRe.MatchString(text)
	case model.StepResultLimit:
		if !integerRe.MatchString(text) {
			return false
		}
		n, err := strconv.Atoi(text)
		return err == nil && n > 0 && n <= 20
	}
	return false
}

// isCityName допускает буквы русского и английского алфавитов, дефис и
// пробелы между словами ("Нижний Новгород", "New-York").
func isCityName(text string) bool {
	hasLetter := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r):
			hasLetter = true
		case r == '-' || r == ' ':
		default:
			return false
		}
	}
	return hasLetter
}
