package service

import (
	"strconv"
	"strings"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
)

// SuggestionPrompt renders a user's history as a single natural-language
// request. Each metric lists its values in entry order, comma separated.
func SuggestionPrompt(entries []domain.HabitEntry) string {
	sleep := make([]string, 0, len(entries))
	calories := make([]string, 0, len(entries))
	exercise := make([]string, 0, len(entries))
	water := make([]string, 0, len(entries))
	for _, e := range entries {
		sleep = append(sleep, formatMetric(e.Sleep))
		calories = append(calories, formatMetric(e.Calories))
		exercise = append(exercise, formatMetric(e.Exercise))
		water = append(water, formatMetric(e.Water))
	}

	var b strings.Builder
	b.WriteString("Based on my habits like Sleep: ")
	b.WriteString(strings.Join(sleep, ", "))
	b.WriteString("\nCalories: ")
	b.WriteString(strings.Join(calories, ", "))
	b.WriteString("\nExercise: ")
	b.WriteString(strings.Join(exercise, ", "))
	b.WriteString("\nWater: ")
	b.WriteString(strings.Join(water, ", "))
	b.WriteString(", what are some personalized suggestions to improve my health?")
	return b.String()
}

// formatMetric prints 7 as "7" and 7.5 as "7.5".
func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
