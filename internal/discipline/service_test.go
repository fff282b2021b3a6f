package discipline

import (
	"fmt"
	"testing"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
)

// mockStore is a mock implementation of storage.Provider for testing
type mockStore struct {
	disciplines []models.Discipline
	checks      map[string][]models.DisciplineCheck
}

func (m *mockStore) GetActiveDisciplines() ([]models.Discipline, error) {
	var active []models.Discipline
	for _, d := range m.disciplines {
		if d.Status == constants.DisciplineActive {
			active = append(active, d)
		}
	}
	return active, nil
}

func (m *mockStore) GetDiscipline(id string) (models.Discipline, error) {
	for _, d := range m.disciplines {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Discipline{}, fmt.Errorf("discipline not found")
}

func (m *mockStore) GetChecksForDiscipline(disciplineID string) ([]models.DisciplineCheck, error) {
	return m.checks[disciplineID], nil
}

func (m *mockStore) GetChecksForDisciplineRange(disciplineID, startDay, endDay string) ([]models.DisciplineCheck, error) {
	var out []models.DisciplineCheck
	for _, c := range m.checks[disciplineID] {
		if c.Day >= startDay && c.Day <= endDay {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStore) UpsertCheck(check models.DisciplineCheck) (models.DisciplineCheck, error) {
	if m.checks == nil {
		m.checks = make(map[string][]models.DisciplineCheck)
	}
	for i, existing := range m.checks[check.DisciplineID] {
		if existing.Day == check.Day {
			// The original id and created_at survive an overwrite.
			check.ID = existing.ID
			check.CreatedAt = existing.CreatedAt
			m.checks[check.DisciplineID][i] = check
			return check, nil
		}
	}
	m.checks[check.DisciplineID] = append(m.checks[check.DisciplineID], check)
	return check, nil
}

// Implement other storage.Provider methods as no-ops
func (m *mockStore) Init() error                           { return nil }
func (m *mockStore) Load() error                           { return nil }
func (m *mockStore) Close() error                          { return nil }
func (m *mockStore) GetSettings() (models.Settings, error) { return models.Settings{}, nil }
func (m *mockStore) SaveSettings(models.Settings) error    { return nil }
func (m *mockStore) AddArea(models.FocusArea) error        { return nil }
func (m *mockStore) GetArea(id string) (models.FocusArea, error) {
	return models.FocusArea{}, nil
}
func (m *mockStore) GetAreaByName(name string) (models.FocusArea, error) {
	return models.FocusArea{}, nil
}
func (m *mockStore) GetAllAreas(includeArchived, includeDeleted bool) ([]models.FocusArea, error) {
	return nil, nil
}
func (m *mockStore) UpdateArea(models.FocusArea) error { return nil }
func (m *mockStore) ArchiveArea(id string) error       { return nil }
func (m *mockStore) UnarchiveArea(id string) error     { return nil }
func (m *mockStore) DeleteArea(id string) error        { return nil }
func (m *mockStore) AddSession(models.Session) error   { return nil }
func (m *mockStore) GetSession(id string) (models.Session, error) {
	return models.Session{}, nil
}
func (m *mockStore) GetRunningSession() (models.Session, error) { return models.Session{}, nil }
func (m *mockStore) GetSessionsForArea(areaID, startDay, endDay string) ([]models.Session, error) {
	return nil, nil
}
func (m *mockStore) GetSessionsInRange(startDay, endDay string) ([]models.Session, error) {
	return nil, nil
}
func (m *mockStore) UpdateSession(models.Session) error { return nil }
func (m *mockStore) DeleteSession(id string) error      { return nil }
func (m *mockStore) AddGoal(models.Goal) error          { return nil }
func (m *mockStore) GetGoal(id string) (models.Goal, error) {
	return models.Goal{}, nil
}
func (m *mockStore) GetGoalsByPeriod(horizon, periodKey string) ([]models.Goal, error) {
	return nil, nil
}
func (m *mockStore) GetAllGoals(includeDeleted bool) ([]models.Goal, error) { return nil, nil }
func (m *mockStore) UpdateGoal(models.Goal) error                           { return nil }
func (m *mockStore) DeleteGoal(id string) error                             { return nil }
func (m *mockStore) UpsertReflection(r models.Reflection) (models.Reflection, error) {
	return r, nil
}
func (m *mockStore) GetReflection(day string) (models.Reflection, error) {
	return models.Reflection{}, nil
}
func (m *mockStore) GetReflections(startDay, endDay string) ([]models.Reflection, error) {
	return nil, nil
}
func (m *mockStore) DeleteReflection(day string) error     { return nil }
func (m *mockStore) AddDiscipline(models.Discipline) error { return nil }
func (m *mockStore) GetDisciplineByName(name string) (models.Discipline, error) {
	return models.Discipline{}, nil
}
func (m *mockStore) GetAllDisciplines(includeDeleted bool) ([]models.Discipline, error) {
	return m.disciplines, nil
}
func (m *mockStore) UpdateDiscipline(models.Discipline) error { return nil }
func (m *mockStore) DeleteDiscipline(id string) error         { return nil }
func (m *mockStore) GetCheck(disciplineID, day string) (models.DisciplineCheck, error) {
	for _, c := range m.checks[disciplineID] {
		if c.Day == day {
			return c, nil
		}
	}
	return models.DisciplineCheck{}, fmt.Errorf("check not found")
}
func (m *mockStore) GetChecksForDay(day string) ([]models.DisciplineCheck, error) { return nil, nil }
func (m *mockStore) DeleteCheck(id string) error                                  { return nil }
func (m *mockStore) UpsertPartnerCheckIn(p models.PartnerCheckIn) (models.PartnerCheckIn, error) {
	return p, nil
}
func (m *mockStore) GetPartnerCheckIn(day string) (models.PartnerCheckIn, error) {
	return models.PartnerCheckIn{}, nil
}
func (m *mockStore) GetPartnerCheckIns(startDay, endDay string) ([]models.PartnerCheckIn, error) {
	return nil, nil
}
func (m *mockStore) GetAllSessions() ([]models.Session, error)       { return nil, nil }
func (m *mockStore) GetAllReflections() ([]models.Reflection, error) { return nil, nil }
func (m *mockStore) GetAllChecks() ([]models.DisciplineCheck, error) { return nil, nil }
func (m *mockStore) GetAllPartnerCheckIns() ([]models.PartnerCheckIn, error) {
	return nil, nil
}
func (m *mockStore) GetConfigPath() string { return "" }

func testDiscipline(t *testing.T, id, name string, freq constants.Frequency, days []time.Weekday, createdAt string) models.Discipline {
	t.Helper()
	created := mustDate(t, createdAt)
	return models.Discipline{
		ID:        id,
		Name:      name,
		Frequency: freq,
		Days:      days,
		StartedAt: created,
		Status:    constants.DisciplineActive,
		CreatedAt: created,
	}
}

func TestService_TodayOrdering(t *testing.T) {
	// 2026-01-20 is a Tuesday: the daily and always disciplines apply, the
	// Mon/Wed/Fri and weekend ones do not. The store returns them shuffled.
	store := &mockStore{
		disciplines: []models.Discipline{
			testDiscipline(t, "gym", "Strength", constants.FrequencySpecificDays, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, "2026-01-02"),
			testDiscipline(t, "stretch", "Stretch", constants.FrequencyAlways, nil, "2026-01-04"),
			testDiscipline(t, "write", "Writing", constants.FrequencyDaily, nil, "2026-01-01"),
			testDiscipline(t, "review", "Weekly review", constants.FrequencyWeekends, nil, "2026-01-03"),
		},
		checks: map[string][]models.DisciplineCheck{},
	}
	svc := NewService(store)

	entries, err := svc.Today(mustDate(t, "2026-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	// No inapplicable discipline may precede an applicable one.
	seenInapplicable := false
	for i, e := range entries {
		if !e.ApplicableToday {
			seenInapplicable = true
		} else if seenInapplicable {
			t.Errorf("applicable discipline %q at position %d after an inapplicable one", e.Discipline.ID, i)
		}
	}

	wantOrder := []string{"write", "stretch", "gym", "review"}
	for i, want := range wantOrder {
		if entries[i].Discipline.ID != want {
			t.Errorf("entries[%d] = %q, want %q (creation order within groups)", i, entries[i].Discipline.ID, want)
		}
	}
}

func TestService_TodayEntryFields(t *testing.T) {
	store := &mockStore{
		disciplines: []models.Discipline{
			testDiscipline(t, "write", "Writing", constants.FrequencyDaily, nil, "2026-01-01"),
			testDiscipline(t, "gym", "Strength", constants.FrequencySpecificDays, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, "2026-01-02"),
		},
		checks: map[string][]models.DisciplineCheck{
			"write": {
				check("write", "2026-01-19", constants.RatingNailedIt),
				check("write", "2026-01-20", constants.RatingClose),
			},
		},
	}
	svc := NewService(store)

	entries, err := svc.Today(mustDate(t, "2026-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var write, gym *TodayEntry
	for i := range entries {
		switch entries[i].Discipline.ID {
		case "write":
			write = &entries[i]
		case "gym":
			gym = &entries[i]
		}
	}
	if write == nil || gym == nil {
		t.Fatal("expected entries for both disciplines")
	}

	if !write.ApplicableToday {
		t.Error("expected the daily discipline to be applicable on Tuesday")
	}
	if write.TodayCheck == nil {
		t.Error("expected today's check to be resolved")
	} else if write.TodayCheck.Rating != constants.RatingClose {
		t.Errorf("TodayCheck.Rating = %q, want %q", write.TodayCheck.Rating, constants.RatingClose)
	}
	if write.Streak != 2 {
		t.Errorf("write streak = %d, want 2", write.Streak)
	}
	if write.NextApplicableDay != "" {
		t.Errorf("NextApplicableDay = %q for an applicable-today discipline, want empty", write.NextApplicableDay)
	}

	if gym.ApplicableToday {
		t.Error("expected the Mon/Wed/Fri discipline not to be applicable on Tuesday")
	}
	if gym.TodayCheck != nil {
		t.Error("expected no check today for the gym discipline")
	}
	if gym.NextApplicableDay != "2026-01-21" {
		t.Errorf("NextApplicableDay = %q, want 2026-01-21", gym.NextApplicableDay)
	}
}

func TestService_Stats(t *testing.T) {
	store := &mockStore{
		disciplines: []models.Discipline{
			testDiscipline(t, "write", "Writing", constants.FrequencyDaily, nil, "2026-01-01"),
		},
		checks: map[string][]models.DisciplineCheck{
			"write": {
				check("write", "2026-01-16", constants.RatingNailedIt),
				check("write", "2026-01-17", constants.RatingMissed),
				check("write", "2026-01-18", constants.RatingClose),
				check("write", "2026-01-19", constants.RatingNailedIt),
				check("write", "2026-01-20", constants.RatingNailedIt),
			},
		},
	}
	svc := NewService(store)

	stats, err := svc.Stats("write", "2026-Q1", mustDate(t, "2026-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalChecks != 5 {
		t.Errorf("TotalChecks = %d, want 5", stats.TotalChecks)
	}
	if stats.NailedItCount != 3 {
		t.Errorf("NailedItCount = %d, want 3", stats.NailedItCount)
	}
	if stats.CloseCount != 1 {
		t.Errorf("CloseCount = %d, want 1", stats.CloseCount)
	}
	if stats.MissedCount != 1 {
		t.Errorf("MissedCount = %d, want 1", stats.MissedCount)
	}
	if stats.Streak != 3 {
		t.Errorf("Streak = %d, want 3", stats.Streak)
	}
	// Four successes over the twenty days elapsed in Q1.
	if stats.QuarterConsistency != 20 {
		t.Errorf("QuarterConsistency = %d, want 20", stats.QuarterConsistency)
	}
}

func TestService_StatsWithoutQuarter(t *testing.T) {
	store := &mockStore{
		disciplines: []models.Discipline{
			testDiscipline(t, "write", "Writing", constants.FrequencyDaily, nil, "2026-01-01"),
		},
		checks: map[string][]models.DisciplineCheck{
			"write": {check("write", "2026-01-20", constants.RatingNailedIt)},
		},
	}
	svc := NewService(store)

	stats, err := svc.Stats("write", "", mustDate(t, "2026-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.QuarterConsistency != 0 {
		t.Errorf("QuarterConsistency without a quarter key = %d, want 0", stats.QuarterConsistency)
	}
}

func TestService_CheckIn(t *testing.T) {
	store := &mockStore{
		disciplines: []models.Discipline{
			testDiscipline(t, "write", "Writing", constants.FrequencyDaily, nil, "2026-01-01"),
		},
		checks: map[string][]models.DisciplineCheck{},
	}
	svc := NewService(store)

	created, err := svc.CheckIn("write", "2026-01-20", constants.RatingClose, 25, "cut short")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Rating != constants.RatingClose {
		t.Errorf("Rating = %q, want %q", created.Rating, constants.RatingClose)
	}
	if created.ID == "" {
		t.Error("expected a generated check ID")
	}

	// Checking in again on the same day overwrites instead of duplicating.
	updated, err := svc.CheckIn("write", "2026-01-20", constants.RatingNailedIt, 40, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("overwrite changed the check ID: %q -> %q", created.ID, updated.ID)
	}
	if updated.Rating != constants.RatingNailedIt {
		t.Errorf("Rating after overwrite = %q, want %q", updated.Rating, constants.RatingNailedIt)
	}
	if got := len(store.checks["write"]); got != 1 {
		t.Errorf("stored checks = %d, want 1", got)
	}
}

func TestService_CheckInValidation(t *testing.T) {
	store := &mockStore{
		disciplines: []models.Discipline{
			testDiscipline(t, "write", "Writing", constants.FrequencyDaily, nil, "2026-01-01"),
		},
		checks: map[string][]models.DisciplineCheck{},
	}
	svc := NewService(store)

	if _, err := svc.CheckIn("write", "2026-01-20", constants.Rating("partial"), 0, ""); err == nil {
		t.Error("expected an error for an unknown rating")
	}
	if _, err := svc.CheckIn("missing", "2026-01-20", constants.RatingClose, 0, ""); err == nil {
		t.Error("expected an error for an unknown discipline")
	}
}
