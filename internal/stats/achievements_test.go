package stats

import "testing"

func TestUnlockedAchievements(t *testing.T) {
	tests := []struct {
		name      string
		workouts  int
		streak    int
		wantNames []string
	}{
		{
			name:      "no activity",
			wantNames: nil,
		},
		{
			name:      "first workout only",
			workouts:  1,
			wantNames: []string{"First Step"},
		},
		{
			name:      "week streak",
			workouts:  7,
			streak:    7,
			wantNames: []string{"First Step", "Week Warrior"},
		},
		{
			name:      "thirty workouts and two week streak",
			workouts:  30,
			streak:    14,
			wantNames: []string{"First Step", "Week Warrior", "Workout Master", "Strong Warrior"},
		},
		{
			name:     "everything unlocked",
			workouts: 100,
			streak:   30,
			wantNames: []string{
				"First Step", "Week Warrior", "Workout Master",
				"Strong Warrior", "Golden Warrior", "Workout Enthusiast",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unlocked := UnlockedAchievements(tt.workouts, tt.streak)
			if len(unlocked) != len(tt.wantNames) {
				t.Fatalf("unlocked %d achievements, want %d", len(unlocked), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if unlocked[i].Name != want {
					t.Errorf("unlocked[%d] = %q, want %q", i, unlocked[i].Name, want)
				}
			}
		})
	}
}
