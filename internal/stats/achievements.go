package stats

// AchievementRule defines one unlockable achievement and its condition over
// a user's workout totals.
type AchievementRule struct {
	Name        string
	Description string
	Icon        string
	Unlocked    func(totalWorkouts, currentStreak int) bool
}

// AchievementRules is the full rule set, checked in order after every
// completed workout.
var AchievementRules = []AchievementRule{
	{
		Name:        "First Step",
		Description: "Completed your first workout",
		Icon:        "first-workout.svg",
		Unlocked:    func(workouts, _ int) bool { return workouts >= 1 },
	},
	{
		Name:        "Week Warrior",
		Description: "7-day workout streak",
		Icon:        "streak-7.svg",
		Unlocked:    func(_, streak int) bool { return streak >= 7 },
	},
	{
		Name:        "Workout Master",
		Description: "Completed 30 workouts",
		Icon:        "workout-master.svg",
		Unlocked:    func(workouts, _ int) bool { return workouts >= 30 },
	},
	{
		Name:        "Strong Warrior",
		Description: "14-day workout streak",
		Icon:        "streak-14.svg",
		Unlocked:    func(_, streak int) bool { return streak >= 14 },
	},
	{
		Name:        "Golden Warrior",
		Description: "30-day workout streak",
		Icon:        "streak-30.svg",
		Unlocked:    func(_, streak int) bool { return streak >= 30 },
	},
	{
		Name:        "Workout Enthusiast",
		Description: "Completed 100 workouts",
		Icon:        "workout-100.svg",
		Unlocked:    func(workouts, _ int) bool { return workouts >= 100 },
	},
}

// UnlockedAchievements returns the rules satisfied by the given totals.
func UnlockedAchievements(totalWorkouts, currentStreak int) []AchievementRule {
	var unlocked []AchievementRule
	for _, rule := range AchievementRules {
		if rule.Unlocked(totalWorkouts, currentStreak) {
			unlocked = append(unlocked, rule)
		}
	}
	return unlocked
}
