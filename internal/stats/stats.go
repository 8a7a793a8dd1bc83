// Package stats computes derived workout statistics: streaks, monthly
// totals, weekly activity, category distribution, and most-used exercises.
// Every computation is a pure function of a record snapshot and an explicit
// reference time, so results are reproducible and trivially testable.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/claude/fitlog/internal/models"
)

// MonthlyStats holds aggregate totals for the current calendar month.
type MonthlyStats struct {
	TotalDuration int `json:"total_duration"`
	TotalCalories int `json:"total_calories"`
	TotalWorkouts int `json:"total_workouts"`
}

// WeeklyActivity is a 7-bucket duration histogram for the window ending
// today. Days is ordered 6-days-ago through today; Durations aligns by index.
type WeeklyActivity struct {
	Days      []string `json:"days"`
	Durations []int    `json:"durations"`
}

// TypeDistribution holds per-category workout percentages, aligned by index.
// Labels appear in first-encounter order over the record history. Each
// percentage is rounded independently, so the column need not sum to 100.
type TypeDistribution struct {
	Labels      []string `json:"labels"`
	Percentages []int    `json:"percentages"`
}

// ExerciseUsage summarizes one exercise across a user's workout history.
// Sets counts workout records listing the exercise, not literal sets
// performed. MaxRating is the highest session rating seen alongside it.
type ExerciseUsage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	MaxRating int    `json:"max_rating"`
	Progress  int    `json:"progress"`
	Image     string `json:"image"`
}

// dateOf strips the time of day, keeping the calendar date in t's location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar days from b to a (a - b).
// Rounding absorbs the 23/25-hour days around DST transitions.
func daysBetween(a, b time.Time) int {
	return int(math.Round(dateOf(a).Sub(dateOf(b)).Hours() / 24))
}

// Streaks computes the current and best consecutive-day workout streaks.
// Records must be ordered by date descending. The walk splits the history
// into runs wherever the gap between adjacent records is not exactly one
// calendar day; best is the longest run, and current is the newest run's
// length provided its most recent record falls on today or yesterday.
//
// Two records on the same calendar date produce a gap of zero days, which is
// not "exactly one" and therefore breaks the run. Same-day sessions are
// deliberately not merged; see TestStreaksSameDay.
func Streaks(records []models.CompletedWorkoutRow, today time.Time) (current, best int) {
	if len(records) == 0 {
		return 0, 0
	}

	temp := 1
	newestRun := 0
	newestRunClosed := false
	last := dateOf(records[0].Date)

	for _, rec := range records[1:] {
		recDate := dateOf(rec.Date)
		if daysBetween(last, recDate) == 1 {
			temp++
		} else {
			if !newestRunClosed {
				newestRun = temp
				newestRunClosed = true
			}
			if temp > best {
				best = temp
			}
			temp = 1
		}
		last = recDate
	}

	if !newestRunClosed {
		newestRun = temp
	}
	if temp > best {
		best = temp
	}
	if daysBetween(today, dateOf(records[0].Date)) <= 1 {
		current = newestRun
	}
	return current, best
}

// Monthly aggregates duration, calories, and workout count over the calendar
// month containing now. Nil duration or calories contribute zero but the
// record still counts toward TotalWorkouts.
func Monthly(records []models.CompletedWorkoutRow, now time.Time) MonthlyStats {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	var m MonthlyStats
	for _, rec := range records {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		m.TotalWorkouts++
		if rec.DurationMin != nil {
			m.TotalDuration += *rec.DurationMin
		}
		if rec.Calories != nil {
			m.TotalCalories += *rec.Calories
		}
	}
	return m
}

// Weekly buckets workout duration by day-of-week over the 7-day window
// ending today (6 days ago through today, inclusive).
//
// Buckets are keyed by the weekday short name rather than the absolute date.
// Within a fixed 7-day window no two dates share a weekday, but widening the
// window without changing the key would silently merge days.
func Weekly(records []models.CompletedWorkoutRow, now time.Time) WeeklyActivity {
	windowStart := dateOf(now).AddDate(0, 0, -6)
	windowEnd := dateOf(now).AddDate(0, 0, 1)

	byDay := make(map[string]int)
	for _, rec := range records {
		if rec.Date.Before(windowStart) || !rec.Date.Before(windowEnd) {
			continue
		}
		if rec.DurationMin != nil {
			byDay[rec.Date.Format("Mon")] += *rec.DurationMin
		}
	}

	act := WeeklyActivity{
		Days:      make([]string, 0, 7),
		Durations: make([]int, 0, 7),
	}
	for i := 6; i >= 0; i-- {
		day := dateOf(now).AddDate(0, 0, -i).Format("Mon")
		act.Days = append(act.Days, day)
		act.Durations = append(act.Durations, byDay[day])
	}
	return act
}

// Distribution computes the percentage share of each workout category over
// the full record history. Labels keep first-encounter order. Percentages
// use math.Round (half away from zero); rounding each bucket independently
// means the results may not sum to exactly 100.
func Distribution(records []models.CompletedWorkoutRow) TypeDistribution {
	var labels []string
	counts := make(map[string]int)
	for _, rec := range records {
		if _, seen := counts[rec.Category]; !seen {
			labels = append(labels, rec.Category)
		}
		counts[rec.Category]++
	}

	total := len(records)
	if total == 0 {
		return TypeDistribution{Labels: []string{}, Percentages: []int{}}
	}

	percentages := make([]int, len(labels))
	for i, label := range labels {
		percentages[i] = int(math.Round(float64(counts[label]) / float64(total) * 100))
	}
	return TypeDistribution{Labels: labels, Percentages: percentages}
}

// TopExercises returns up to five exercises ranked by how many workout
// records list them, ties broken by first-encounter order.
//
// Progress compares a session's rating against the earliest session for the
// same program carrying the same rating value. Matching by rating value
// rather than by the exercise's first occurrence is carried over from the
// historical behavior; with repeated ratings the delta degenerates to zero.
func TopExercises(records []models.CompletedWorkoutRow) []ExerciseUsage {
	var order []string
	usage := make(map[string]*ExerciseUsage)

	for _, rec := range records {
		rating := 0
		if rec.Rating != nil {
			rating = *rec.Rating
		}

		for _, name := range rec.Exercises {
			u, seen := usage[name]
			if !seen {
				u = &ExerciseUsage{
					ID:    name,
					Name:  name,
					Image: strings.ReplaceAll(strings.ToLower(name), " ", "-") + ".svg",
				}
				usage[name] = u
				order = append(order, name)
			}
			u.Sets++
			if rating > u.MaxRating {
				u.MaxRating = rating
			}

			if initial, found := earliestWithRating(records, rec.ProgramID, rec.Rating); found {
				progress := float64(rating-initial) / 5 * 100
				u.Progress = clamp(int(math.Round(progress)), 0, 100)
			}
		}
	}

	result := make([]ExerciseUsage, 0, len(order))
	for _, name := range order {
		result = append(result, *usage[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Sets > result[j].Sets
	})
	if len(result) > 5 {
		result = result[:5]
	}
	return result
}

// earliestWithRating finds the earliest-dated record for the given program
// whose rating equals the given value, returning that rating. A nil or zero
// initial rating reports found=false, leaving progress untouched.
func earliestWithRating(records []models.CompletedWorkoutRow, programID, rating *int) (initial int, found bool) {
	var earliest *models.CompletedWorkoutRow
	for i := range records {
		rec := &records[i]
		if !intPtrEq(rec.ProgramID, programID) || !intPtrEq(rec.Rating, rating) {
			continue
		}
		if earliest == nil || rec.Date.Before(earliest.Date) {
			earliest = rec
		}
	}
	if earliest == nil || earliest.Rating == nil || *earliest.Rating == 0 {
		return 0, false
	}
	return *earliest.Rating, true
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
