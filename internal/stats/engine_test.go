package stats

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/claude/fitlog/internal/models"
)

type fakeSource struct {
	records []models.CompletedWorkoutRow
	err     error
	calls   int
}

func (f *fakeSource) ListCompletedWorkouts(_ context.Context, _ int) ([]models.CompletedWorkoutRow, error) {
	f.calls++
	return f.records, f.err
}

func TestSnapshotEmptyHistory(t *testing.T) {
	e := NewEngine(&fakeSource{})
	snap, err := e.Snapshot(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.CurrentStreak != 0 || snap.BestStreak != 0 {
		t.Errorf("streaks = (%d, %d), want (0, 0)", snap.CurrentStreak, snap.BestStreak)
	}
	if snap.Monthly.TotalWorkouts != 0 || snap.TotalHours != 0 {
		t.Errorf("monthly = %+v hours = %v, want zeros", snap.Monthly, snap.TotalHours)
	}
	if len(snap.Weekly.Durations) != 7 {
		t.Errorf("weekly buckets = %d, want 7", len(snap.Weekly.Durations))
	}
	if len(snap.TopExercises) != 0 {
		t.Errorf("top exercises = %v, want empty", snap.TopExercises)
	}
}

func TestSnapshotSingleFetch(t *testing.T) {
	src := &fakeSource{records: []models.CompletedWorkoutRow{
		{Date: testNow, DurationMin: intp(90), Category: "Cardio"},
	}}
	e := NewEngine(src)

	snap, err := e.Snapshot(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("store fetched %d times, want 1", src.calls)
	}
	if snap.TotalHours != 1.5 {
		t.Errorf("TotalHours = %v, want 1.5", snap.TotalHours)
	}
	if snap.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", snap.CurrentStreak)
	}
}

func TestSnapshotStoreError(t *testing.T) {
	wantErr := errors.New("connection refused")
	e := NewEngine(&fakeSource{err: wantErr})

	_, err := e.Snapshot(context.Background(), 1, testNow)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	src := &fakeSource{records: []models.CompletedWorkoutRow{
		{Date: testNow, DurationMin: intp(30), Calories: intp(200),
			Category: "Strength", Exercises: []string{"Squats"}},
		{Date: testNow.AddDate(0, 0, -1), Category: "Cardio", DurationMin: intp(20)},
	}}
	e := NewEngine(src)

	a, err := e.Snapshot(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	b, err := e.Snapshot(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}
