package summary

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage/sqlite"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func addGoal(t *testing.T, store *sqlite.Store, id string, horizon constants.Horizon, key string, status constants.GoalStatus) {
	t.Helper()
	err := store.AddGoal(models.Goal{
		ID:        id,
		Title:     "Goal " + id,
		Horizon:   horizon,
		PeriodKey: key,
		Status:    status,
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to add goal %s: %v", id, err)
	}
}

func addSession(t *testing.T, store *sqlite.Store, id, areaID string, start time.Time, minutes int) {
	t.Helper()
	end := start.Add(time.Duration(minutes) * time.Minute)
	err := store.AddSession(models.Session{
		ID:        id,
		AreaID:    areaID,
		StartedAt: start,
		EndedAt:   &end,
		CreatedAt: start,
	})
	if err != nil {
		t.Fatalf("failed to add session %s: %v", id, err)
	}
}

func TestOverview(t *testing.T) {
	store := setupTestStore(t)
	service := NewService(store)

	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, area := range []models.FocusArea{
		{ID: "deep", Name: "Deep Work", CreatedAt: created},
		{ID: "fit", Name: "Fitness", CreatedAt: created},
	} {
		if err := store.AddArea(area); err != nil {
			t.Fatalf("failed to add area: %v", err)
		}
	}

	// Today is Monday 2026-01-19: week 2026-W04, month 2026-01, quarter 2026-Q1
	addGoal(t, store, "w1", constants.HorizonWeek, "2026-W04", constants.GoalOpen)
	addGoal(t, store, "w2", constants.HorizonWeek, "2026-W04", constants.GoalOpen)
	addGoal(t, store, "w3", constants.HorizonWeek, "2026-W04", constants.GoalAchieved)
	addGoal(t, store, "m1", constants.HorizonMonth, "2026-01", constants.GoalOpen)
	addGoal(t, store, "q1", constants.HorizonQuarter, "2026-Q1", constants.GoalDropped)
	addGoal(t, store, "l1", constants.HorizonLife, "life", constants.GoalOpen)
	// A goal in another week must not count
	addGoal(t, store, "w0", constants.HorizonWeek, "2026-W03", constants.GoalOpen)

	// Sessions: two for deep work and one for fitness inside the trailing
	// 7 days, one outside the window
	addSession(t, store, "s1", "deep", time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC), 90)
	addSession(t, store, "s2", "deep", time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC), 45)
	addSession(t, store, "s3", "fit", time.Date(2026, 1, 19, 7, 0, 0, 0, time.UTC), 30)
	addSession(t, store, "s4", "deep", time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), 60)

	// Reflections: two this month, one in December
	for _, day := range []string{"2026-01-05", "2026-01-18", "2025-12-31"} {
		if _, err := store.UpsertReflection(models.Reflection{
			ID:        "r-" + day,
			Day:       day,
			Went:      "fine",
			CreatedAt: created,
			UpdatedAt: created,
		}); err != nil {
			t.Fatalf("failed to add reflection: %v", err)
		}
	}

	today := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	overview, err := service.Overview(today)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	if len(overview.Goals) != 4 {
		t.Fatalf("expected 4 horizon entries, got %d", len(overview.Goals))
	}

	week := overview.Goals[0]
	if week.Horizon != constants.HorizonWeek || week.PeriodKey != "2026-W04" {
		t.Errorf("expected week entry for 2026-W04, got %+v", week)
	}
	if week.Open != 2 || week.Achieved != 1 || week.Dropped != 0 {
		t.Errorf("week counts = %+v, want open 2 achieved 1 dropped 0", week)
	}

	month := overview.Goals[1]
	if month.PeriodKey != "2026-01" || month.Open != 1 {
		t.Errorf("month entry = %+v, want key 2026-01 open 1", month)
	}

	quarter := overview.Goals[2]
	if quarter.PeriodKey != "2026-Q1" || quarter.Dropped != 1 {
		t.Errorf("quarter entry = %+v, want key 2026-Q1 dropped 1", quarter)
	}

	life := overview.Goals[3]
	if life.PeriodKey != "life" || life.Open != 1 {
		t.Errorf("life entry = %+v, want key life open 1", life)
	}

	if len(overview.AreaMinutes) != 2 {
		t.Fatalf("expected 2 area entries, got %d", len(overview.AreaMinutes))
	}
	if overview.AreaMinutes[0].AreaName != "Deep Work" || overview.AreaMinutes[0].Minutes != 135 {
		t.Errorf("top area = %+v, want Deep Work with 135 minutes", overview.AreaMinutes[0])
	}
	if overview.AreaMinutes[1].AreaName != "Fitness" || overview.AreaMinutes[1].Minutes != 30 {
		t.Errorf("second area = %+v, want Fitness with 30 minutes", overview.AreaMinutes[1])
	}

	if overview.ReflectionMonth != "2026-01" {
		t.Errorf("reflection month = %q, want 2026-01", overview.ReflectionMonth)
	}
	if overview.ReflectionCount != 2 {
		t.Errorf("reflection count = %d, want 2", overview.ReflectionCount)
	}
}

func TestOverviewEmptyStore(t *testing.T) {
	store := setupTestStore(t)
	service := NewService(store)

	overview, err := service.Overview(time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	if len(overview.Goals) != 4 {
		t.Errorf("expected 4 horizon entries, got %d", len(overview.Goals))
	}
	for _, hg := range overview.Goals {
		if hg.Open != 0 || hg.Achieved != 0 || hg.Dropped != 0 {
			t.Errorf("expected zero counts for %s, got %+v", hg.Horizon, hg)
		}
	}
	if len(overview.AreaMinutes) != 0 {
		t.Errorf("expected no area minutes, got %+v", overview.AreaMinutes)
	}
	if overview.ReflectionCount != 0 {
		t.Errorf("expected 0 reflections, got %d", overview.ReflectionCount)
	}
}
