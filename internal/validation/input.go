package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinDisplayNameLength  = 2
	MaxDisplayNameLength  = 100
	MaxBioLength          = 1000
	MaxLocationLength     = 100
	MaxSkillLength        = 50
	MaxSkillsCount        = 50
	MaxSwapMessageLength  = 1000
	MaxReportTypeLength   = 50
	MaxReportDescLength   = 2000
	MaxBroadcastLength    = 2000
	MaxFeedbackCommentLen = 1000
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	displayNameRegex = regexp.MustCompile(`^[\p{L}0-9\s\-_.,'!?()]+$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("имя обязательно")
	}

	if err := ValidateLength("имя", displayName, MinDisplayNameLength, MaxDisplayNameLength); err != nil {
		return err
	}

	if !displayNameRegex.MatchString(displayName) {
		return fmt.Errorf("имя содержит недопустимые символы")
	}

	return nil
}

// ValidateSkill проверяет название одного навыка.
func ValidateSkill(skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return fmt.Errorf("название навыка не может быть пустым")
	}
	return ValidateLength("навык", skill, 1, MaxSkillLength)
}

// ValidateSkills проверяет список навыков. Дубликаты допустимы: они схлопываются при сохранении.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("количество навыков не может превышать %d", MaxSkillsCount)
	}
	for _, skill := range skills {
		if err := ValidateSkill(skill); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location *string) error {
	if location != nil && *location != "" {
		if err := ValidateLength("местоположение", strings.TrimSpace(*location), 0, MaxLocationLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBio проверяет описание профиля.
func ValidateBio(bio *string) error {
	if bio != nil && *bio != "" {
		if err := ValidateLength("описание", strings.TrimSpace(*bio), 0, MaxBioLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSwapMessage проверяет необязательное сообщение к запросу на обмен.
func ValidateSwapMessage(message string) error {
	return ValidateLength("сообщение", strings.TrimSpace(message), 0, MaxSwapMessageLength)
}

func ValidateReport(reportType, description string) error {
	if err := ValidateNonEmpty("тип жалобы", reportType); err != nil {
		return err
	}
	if err := ValidateLength("тип жалобы", strings.TrimSpace(reportType), 1, MaxReportTypeLength); err != nil {
		return err
	}
	return ValidateLength("описание жалобы", strings.TrimSpace(description), 0, MaxReportDescLength)
}

// ValidateBroadcastMessage проверяет текст рассылки.
func ValidateBroadcastMessage(message string) error {
	if err := ValidateNonEmpty("сообщение", message); err != nil {
		return err
	}
	return ValidateLength("сообщение", strings.TrimSpace(message), 1, MaxBroadcastLength)
}

func ValidateFeedbackComment(comment string) error {
	return ValidateLength("комментарий", strings.TrimSpace(comment), 0, MaxFeedbackCommentLen)
}
