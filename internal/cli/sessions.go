package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/storage"
)

type SessionCmd struct {
	Start SessionStartCmd `cmd:"" help:"Start a timed session on a focus area."`
	Stop  SessionStopCmd  `cmd:"" help:"Stop the running session."`
	Log   SessionLogCmd   `cmd:"" help:"Log a completed session after the fact."`
	List  SessionListCmd  `cmd:"" help:"List recent sessions."`
}

type SessionStartCmd struct {
	Area string `arg:"" help:"Focus area name."`
	Note string `help:"Optional note for this session." default:""`
}

func (c *SessionStartCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	area, err := ctx.Store.GetAreaByName(c.Area)
	if err != nil {
		return fmt.Errorf("focus area %q not found", c.Area)
	}
	if area.IsArchived() {
		return fmt.Errorf("focus area %q is archived", c.Area)
	}

	// Only one session may run at a time
	running, err := ctx.Store.GetRunningSession()
	if err == nil {
		name := running.AreaID
		if runningArea, aerr := ctx.Store.GetArea(running.AreaID); aerr == nil {
			name = runningArea.Name
		}
		return fmt.Errorf("a session is already running on %q (started %s)", name, humanize.Time(running.StartedAt))
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	session := models.Session{
		ID:        uuid.New().String(),
		AreaID:    area.ID,
		StartedAt: time.Now(),
		Note:      c.Note,
		CreatedAt: time.Now(),
	}

	if err := ctx.Store.AddSession(session); err != nil {
		return err
	}

	fmt.Printf("Started session on %s\n", area.Name)
	return nil
}

type SessionStopCmd struct {
	Note string `help:"Note to attach when stopping." default:""`
}

func (c *SessionStopCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	running, err := ctx.Store.GetRunningSession()
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no session is running")
	}
	if err != nil {
		return err
	}

	now := time.Now()
	running.EndedAt = &now
	if c.Note != "" {
		running.Note = c.Note
	}

	if err := ctx.Store.UpdateSession(running); err != nil {
		return err
	}

	name := running.AreaID
	if area, aerr := ctx.Store.GetArea(running.AreaID); aerr == nil {
		name = area.Name
	}
	fmt.Printf("Stopped session on %s (%d min)\n", name, running.Minutes())
	return nil
}

type SessionLogCmd struct {
	Area    string `arg:"" help:"Focus area name."`
	Minutes int    `help:"Session length in minutes." required:""`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Start   string `help:"Start time in HH:MM format (default: 12:00)." default:""`
	Note    string `help:"Optional note for this session." default:""`
}

func (c *SessionLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Minutes <= 0 {
		return fmt.Errorf("minutes must be positive")
	}

	area, err := ctx.Store.GetAreaByName(c.Area)
	if err != nil {
		return fmt.Errorf("focus area %q not found", c.Area)
	}
	if area.IsArchived() {
		return fmt.Errorf("focus area %q is archived", c.Area)
	}

	// Determine the date
	day := c.Date
	if day == "" {
		day = ctx.Today()
	} else {
		// Validate date format
		if _, err := time.Parse(constants.DateFormat, day); err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
		}
	}

	startClock := c.Start
	if startClock == "" {
		startClock = "12:00"
	}
	clock, err := time.Parse(constants.TimeFormat, startClock)
	if err != nil {
		return fmt.Errorf("invalid start time: %s (expected HH:MM)", c.Start)
	}

	date, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	started := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	ended := started.Add(time.Duration(c.Minutes) * time.Minute)

	session := models.Session{
		ID:        uuid.New().String(),
		AreaID:    area.ID,
		StartedAt: started,
		EndedAt:   &ended,
		Note:      c.Note,
		CreatedAt: time.Now(),
	}
	if err := session.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddSession(session); err != nil {
		return err
	}

	fmt.Printf("Logged %d min on %s for %s\n", c.Minutes, area.Name, day)
	return nil
}

type SessionListCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *SessionListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	end := ctx.Now()
	start := end.AddDate(0, 0, -(c.Days - 1))
	sessions, err := ctx.Store.GetSessionsInRange(period.Day(start), period.Day(end))
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Printf("No sessions in the last %d days.\n", c.Days)
		return nil
	}

	areas, err := ctx.Store.GetAllAreas(true, true)
	if err != nil {
		return err
	}
	areaNames := make(map[string]string, len(areas))
	for _, area := range areas {
		areaNames[area.ID] = area.Name
	}

	// Newest day first
	total := 0
	lastDay := ""
	for i := len(sessions) - 1; i >= 0; i-- {
		sess := sessions[i]
		day := period.Day(sess.StartedAt)
		if day != lastDay {
			if lastDay != "" {
				fmt.Println()
			}
			fmt.Printf("%s\n", day)
			lastDay = day
		}

		name := areaNames[sess.AreaID]
		if name == "" {
			name = "(unknown)"
		}

		if sess.Running() {
			fmt.Printf("  %s  running (started %s)\n", name, humanize.Time(sess.StartedAt))
			continue
		}

		note := ""
		if sess.Note != "" {
			note = "  " + sess.Note
		}
		fmt.Printf("  %s  %d min%s\n", name, sess.Minutes(), note)
		total += sess.Minutes()
	}

	fmt.Printf("\nTotal: %d min\n", total)
	return nil
}
