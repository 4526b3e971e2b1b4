package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/kira/internal/models"
)

const MaxDayNotesLength = 2000

var (
	ErrInvalidDayFlow   = errors.New("invalid day flow")
	ErrInvalidDayMood   = errors.New("invalid day mood")
	ErrInvalidDayEnergy = errors.New("invalid day energy")
	ErrInvalidDaySleep  = errors.New("invalid day sleep")
)

// DailyRecordInput carries every user-editable field. An upsert replaces all
// of them, so omitted fields are cleared.
type DailyRecordInput struct {
	Flow     string
	Mood     string
	Energy   string
	Sleep    *float64
	Symptoms []string
	Notes    string
}

func NormalizeDailyRecordInput(input DailyRecordInput) (DailyRecordInput, error) {
	input.Flow = strings.ToLower(strings.TrimSpace(input.Flow))
	input.Mood = strings.ToLower(strings.TrimSpace(input.Mood))
	input.Energy = strings.ToLower(strings.TrimSpace(input.Energy))

	if !models.IsValidFlow(input.Flow) {
		return input, ErrInvalidDayFlow
	}
	if !models.IsValidMood(input.Mood) {
		return input, ErrInvalidDayMood
	}
	if !models.IsValidEnergy(input.Energy) {
		return input, ErrInvalidDayEnergy
	}
	if input.Sleep != nil && *input.Sleep < 0 {
		return input, ErrInvalidDaySleep
	}

	input.Symptoms = NormalizeTags(input.Symptoms)
	input.Notes = TrimDayNotes(input.Notes)
	return input, nil
}

func TrimDayNotes(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxDayNotesLength {
		return value
	}
	return string(runes[:MaxDayNotesLength])
}
