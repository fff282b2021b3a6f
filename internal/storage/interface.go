package storage

import (
	"errors"

	"github.com/steadhq/stead/internal/models"
)

// ErrNotFound is returned when a lookup matches no row. Stores wrap it so
// callers can distinguish a miss from a storage failure with errors.Is.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Focus Areas
	AddArea(models.FocusArea) error
	GetArea(id string) (models.FocusArea, error)
	GetAreaByName(name string) (models.FocusArea, error)
	GetAllAreas(includeArchived, includeDeleted bool) ([]models.FocusArea, error)
	UpdateArea(models.FocusArea) error
	ArchiveArea(id string) error
	UnarchiveArea(id string) error
	DeleteArea(id string) error

	// Sessions
	AddSession(models.Session) error
	GetSession(id string) (models.Session, error)
	// GetRunningSession returns the open session (no end time), or a
	// wrapped ErrNotFound when every session is closed.
	GetRunningSession() (models.Session, error)
	GetSessionsForArea(areaID, startDay, endDay string) ([]models.Session, error)
	GetSessionsInRange(startDay, endDay string) ([]models.Session, error)
	UpdateSession(models.Session) error
	DeleteSession(id string) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetGoalsByPeriod(horizon, periodKey string) ([]models.Goal, error)
	GetAllGoals(includeDeleted bool) ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error

	// Reflections
	UpsertReflection(models.Reflection) (models.Reflection, error)
	GetReflection(day string) (models.Reflection, error)
	GetReflections(startDay, endDay string) ([]models.Reflection, error)
	DeleteReflection(day string) error

	// Disciplines
	AddDiscipline(models.Discipline) error
	GetDiscipline(id string) (models.Discipline, error)
	GetDisciplineByName(name string) (models.Discipline, error)
	GetAllDisciplines(includeDeleted bool) ([]models.Discipline, error)
	GetActiveDisciplines() ([]models.Discipline, error)
	UpdateDiscipline(models.Discipline) error
	DeleteDiscipline(id string) error

	// Discipline Checks
	// UpsertCheck writes at most one check per (discipline, day) and returns
	// the stored row; on conflict the original id and created_at survive.
	UpsertCheck(models.DisciplineCheck) (models.DisciplineCheck, error)
	GetCheck(disciplineID, day string) (models.DisciplineCheck, error)
	GetChecksForDiscipline(disciplineID string) ([]models.DisciplineCheck, error)
	GetChecksForDisciplineRange(disciplineID, startDay, endDay string) ([]models.DisciplineCheck, error)
	GetChecksForDay(day string) ([]models.DisciplineCheck, error)
	DeleteCheck(id string) error

	// Partner Check-Ins
	UpsertPartnerCheckIn(models.PartnerCheckIn) (models.PartnerCheckIn, error)
	GetPartnerCheckIn(day string) (models.PartnerCheckIn, error)
	GetPartnerCheckIns(startDay, endDay string) ([]models.PartnerCheckIn, error)

	// Bulk Retrieval for Migration
	GetAllSessions() ([]models.Session, error)
	GetAllReflections() ([]models.Reflection, error)
	GetAllChecks() ([]models.DisciplineCheck, error)
	GetAllPartnerCheckIns() ([]models.PartnerCheckIn, error)

	// Utils
	GetConfigPath() string
}
