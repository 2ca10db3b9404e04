package valueobject

import (
	"strings"

	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type Availability string

const (
	AvailabilityWeekends Availability = "Weekends"
	AvailabilityEvenings Availability = "Evenings"
	AvailabilityFlexible Availability = "Flexible"
	AvailabilityWeekdays Availability = "Weekdays"
	AvailabilityMornings Availability = "Mornings"
)

// AvailabilityOptions перечисляет значения в порядке, в котором их показывает форма профиля.
var AvailabilityOptions = []Availability{
	AvailabilityWeekends,
	AvailabilityEvenings,
	AvailabilityFlexible,
	AvailabilityWeekdays,
	AvailabilityMornings,
}

func (a Availability) IsValid() bool {
	return contains(AvailabilityOptions, a)
}

// NewAvailability принимает значение без учёта регистра ("weekends" == "Weekends").
func NewAvailability(value string) (Availability, error) {
	for _, option := range AvailabilityOptions {
		if strings.EqualFold(string(option), strings.TrimSpace(value)) {
			return option, nil
		}
	}
	return "", apperror.InvalidArgument("некорректное значение доступности")
}

type SkillKind string

const (
	SkillKindOffered SkillKind = "offered"
	SkillKindWanted  SkillKind = "wanted"
)

func NewSkillKind(kind string) (SkillKind, error) {
	k := SkillKind(strings.ToLower(kind))
	if k != SkillKindOffered && k != SkillKindWanted {
		return "", apperror.InvalidArgument("тип навыка должен быть offered или wanted")
	}
	return k, nil
}

type SwapDirection string

const (
	SwapDirectionSent     SwapDirection = "sent"
	SwapDirectionReceived SwapDirection = "received"
)

func NewSwapDirection(direction string) (SwapDirection, error) {
	d := SwapDirection(strings.ToLower(direction))
	if d != SwapDirectionSent && d != SwapDirectionReceived {
		return "", apperror.InvalidArgument("направление должно быть sent или received")
	}
	return d, nil
}

type ExportKind string

const (
	ExportKindUserActivity   ExportKind = "user_activity"
	ExportKindFeedbackLogs   ExportKind = "feedback_logs"
	ExportKindSwapStatistics ExportKind = "swap_statistics"
)

func NewExportKind(kind string) (ExportKind, error) {
	k := ExportKind(strings.ToLower(strings.TrimSpace(kind)))
	switch k {
	case ExportKindUserActivity, ExportKindFeedbackLogs, ExportKindSwapStatistics:
		return k, nil
	}
	return "", apperror.InvalidArgument("неизвестный тип отчёта")
}
