package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// Frequency represents the recurrence pattern of a discipline
type Frequency string

// Rating represents the self-assessed outcome of a discipline check-in
type Rating string

// DisciplineStatus represents the lifecycle state of a discipline
type DisciplineStatus string

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

// Horizon represents the period horizon a goal is bound to
type Horizon string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "stead"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/stead/stead.db"
	Version            = "v0.3.1"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "stead-"
	BackupFileSuffix = ".db"

	// RecentCheckWindowDays bounds the check history loaded for the today view
	RecentCheckWindowDays = 90

	// NextApplicableScanDays bounds the forward scan for a discipline's next
	// applicable day; every non-empty pattern repeats within a week
	NextApplicableScanDays = 7

	// Frequency constants
	FrequencyDaily        Frequency = "daily"
	FrequencyWeekdays     Frequency = "weekdays"
	FrequencyWeekends     Frequency = "weekends"
	FrequencySpecificDays Frequency = "specific_days"
	FrequencyAlways       Frequency = "always"

	// Rating constants
	RatingNailedIt Rating = "nailed_it"
	RatingClose    Rating = "close"
	RatingMissed   Rating = "missed"

	// Discipline Status constants
	DisciplineActive    DisciplineStatus = "active"
	DisciplineIngrained DisciplineStatus = "ingrained"
	DisciplineRetired   DisciplineStatus = "retired"
	DisciplineEvolved   DisciplineStatus = "evolved"

	// Goal Status constants
	GoalOpen     GoalStatus = "open"
	GoalAchieved GoalStatus = "achieved"
	GoalDropped  GoalStatus = "dropped"

	// Horizon constants
	HorizonWeek    Horizon = "week"
	HorizonMonth   Horizon = "month"
	HorizonQuarter Horizon = "quarter"
	HorizonLife    Horizon = "life"

	// Session States
	StateToday SessionState = iota
	StateJournal
	StateGoals
	StateCheckInForm
	StateJournalForm
	StateGoalForm
	StateConfirmation
)
