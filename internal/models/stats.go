package models

import "math"

// CategoryStat counts answers given for one category.
type CategoryStat struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns the rounded percentage of correct answers.
func (s CategoryStat) Accuracy() int {
	return percent(s.Correct, s.Total)
}

// Stats aggregates answer counters across all sessions.
type Stats struct {
	TotalCorrect  int                       `json:"totalCorrect"`
	TotalAnswered int                       `json:"totalAnswered"`
	Streak        int                       `json:"streak"`
	MaxStreak     int                       `json:"maxStreak"`
	CategoryStats map[Category]CategoryStat `json:"categoryStats"`
}

// NewStats returns zeroed statistics.
func NewStats() Stats {
	return Stats{CategoryStats: make(map[Category]CategoryStat)}
}

// Accuracy returns the rounded percentage of correct answers overall.
func (s Stats) Accuracy() int {
	return percent(s.TotalCorrect, s.TotalAnswered)
}

// Clone returns a deep copy so callers cannot mutate the counters.
func (s Stats) Clone() Stats {
	out := s
	out.CategoryStats = make(map[Category]CategoryStat, len(s.CategoryStats))
	for c, st := range s.CategoryStats {
		out.CategoryStats[c] = st
	}
	return out
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
