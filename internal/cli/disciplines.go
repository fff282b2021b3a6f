package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
)

type DisciplineCmd struct {
	Add     DisciplineAddCmd     `cmd:"" help:"Add a new discipline."`
	List    DisciplineListCmd    `cmd:"" help:"List disciplines."`
	Checkin DisciplineCheckinCmd `cmd:"" help:"Record a check-in for a day."`
	Today   DisciplineTodayCmd   `cmd:"" help:"Show today's disciplines with streaks."`
	Stats   DisciplineStatsCmd   `cmd:"" help:"Show streak and consistency stats."`
	Ingrain DisciplineIngrainCmd `cmd:"" help:"Mark a discipline as ingrained."`
	Retire  DisciplineRetireCmd  `cmd:"" help:"Retire a discipline."`
	Evolve  DisciplineEvolveCmd  `cmd:"" help:"Evolve a discipline into a successor."`
}

type DisciplineAddCmd struct {
	Name      string `arg:"" help:"Discipline name."`
	Frequency string `help:"Schedule (daily, weekdays, weekends, specific-days, always)." default:"daily"`
	Days      string `help:"Weekdays for specific-days frequency (e.g. mon,wed,fri)." default:""`
	Target    int    `help:"Target minutes per applicable day (0 for untimed)." default:"0"`
	Started   string `help:"Start date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DisciplineAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Check if discipline with same name already exists
	_, err := ctx.Store.GetDisciplineByName(c.Name)
	if err == nil {
		return fmt.Errorf("discipline with name %q already exists", c.Name)
	}

	frequency, err := ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}

	var days []time.Weekday
	if c.Days != "" {
		if frequency != constants.FrequencySpecificDays {
			return fmt.Errorf("--days only applies to the specific-days frequency")
		}
		days, err = ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
	}

	// Determine the start date
	started := time.Now()
	if c.Started != "" {
		started, err = time.ParseInLocation(constants.DateFormat, c.Started, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Started)
		}
	}

	discipline := models.Discipline{
		ID:            uuid.New().String(),
		Name:          c.Name,
		TargetMinutes: c.Target,
		Frequency:     frequency,
		Days:          days,
		StartedAt:     started,
		Status:        constants.DisciplineActive,
		CreatedAt:     time.Now(),
	}

	if err := discipline.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddDiscipline(discipline); err != nil {
		return err
	}

	fmt.Printf("Added discipline: %s (%s)\n", c.Name, discipline.FormatFrequency())
	return nil
}

type DisciplineListCmd struct {
	Deleted bool `help:"Include deleted disciplines."`
}

func (c *DisciplineListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	disciplines, err := ctx.Store.GetAllDisciplines(c.Deleted)
	if err != nil {
		return err
	}

	if len(disciplines) == 0 {
		fmt.Println("No disciplines found.")
		return nil
	}

	for _, d := range disciplines {
		status := ""
		if d.DeletedAt != nil {
			status = " [DELETED]"
		} else if !d.Active() {
			status = fmt.Sprintf(" [%s]", d.Status)
		}

		target := ""
		if d.TargetMinutes > 0 {
			target = fmt.Sprintf(", %d min", d.TargetMinutes)
		}

		fmt.Printf("%s (%s%s)%s\n", d.Name, d.FormatFrequency(), target, status)
	}

	return nil
}

type DisciplineCheckinCmd struct {
	Name    string `arg:"" help:"Discipline name."`
	Rating  string `help:"How it went (nailed, close, missed)." default:"nailed"`
	Minutes int    `help:"Minutes actually spent." default:"0"`
	Note    string `help:"Optional note for this check-in." default:""`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DisciplineCheckinCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	d, err := ctx.Store.GetDisciplineByName(c.Name)
	if err != nil {
		return fmt.Errorf("discipline %q not found", c.Name)
	}

	rating, err := ParseRating(c.Rating)
	if err != nil {
		return err
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

	if _, err := ctx.Disciplines.CheckIn(d.ID, day, rating, c.Minutes, c.Note); err != nil {
		return err
	}

	fmt.Printf("Checked in %q for %s: %s\n", c.Name, day, rating)

	stats, err := ctx.Disciplines.Stats(d.ID, "", ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Streak: %s\n", english.Plural(stats.Streak, "day", ""))
	return nil
}

type DisciplineTodayCmd struct{}

func (c *DisciplineTodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := ctx.Now()
	entries, err := ctx.Disciplines.Today(now)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No active disciplines.")
		return nil
	}

	fmt.Printf("Disciplines for %s:\n\n", now.Format(constants.DateFormat))

	recorded := 0
	due := 0
	for _, entry := range entries {
		marker := "[ ]"
		if entry.TodayCheck != nil {
			marker = RatingMarker(entry.TodayCheck.Rating)
		}

		line := fmt.Sprintf("%s %s", marker, entry.Discipline.Name)
		if entry.Streak > 0 {
			line += fmt.Sprintf(" (streak: %d)", entry.Streak)
		}
		if !entry.ApplicableToday && entry.NextApplicableDay != "" {
			line += fmt.Sprintf("  next: %s", entry.NextApplicableDay)
		}
		fmt.Println(line)

		if entry.ApplicableToday {
			due++
			if entry.TodayCheck != nil {
				recorded++
			}
		}
	}

	fmt.Printf("\nRecorded: %d/%d\n", recorded, due)
	return nil
}

type DisciplineStatsCmd struct {
	Name    string `arg:"" help:"Discipline name."`
	Quarter string `help:"Quarter key (e.g. 2026-Q1, default: current quarter)." default:""`
}

func (c *DisciplineStatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	d, err := ctx.Store.GetDisciplineByName(c.Name)
	if err != nil {
		return fmt.Errorf("discipline %q not found", c.Name)
	}

	now := ctx.Now()
	quarterKey := c.Quarter
	if quarterKey == "" {
		quarterKey = period.QuarterKey(now)
	} else if err := period.ValidateKey(constants.HorizonQuarter, quarterKey); err != nil {
		return err
	}

	stats, err := ctx.Disciplines.Stats(d.ID, quarterKey, now)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", d.Name, d.FormatFrequency())
	fmt.Printf("Status:  %s, started %s\n", d.Status, d.StartedAt.Format(constants.DateFormat))
	fmt.Printf("Streak:  %s\n", english.Plural(stats.Streak, "day", ""))
	fmt.Printf("Consistency (%s): %d%%\n", quarterKey, stats.QuarterConsistency)
	fmt.Printf("Checks:  %d total (%d nailed, %d close, %d missed)\n",
		stats.TotalChecks, stats.NailedItCount, stats.CloseCount, stats.MissedCount)
	return nil
}

type DisciplineIngrainCmd struct {
	Name string `arg:"" help:"Discipline name."`
}

func (c *DisciplineIngrainCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	d, err := ctx.Store.GetDisciplineByName(c.Name)
	if err != nil {
		return fmt.Errorf("discipline %q not found", c.Name)
	}
	if !d.Active() {
		return fmt.Errorf("discipline %q is already %s", c.Name, d.Status)
	}

	d.Status = constants.DisciplineIngrained
	if err := ctx.Store.UpdateDiscipline(d); err != nil {
		return err
	}

	fmt.Printf("Marked discipline as ingrained: %s\n", c.Name)
	return nil
}

type DisciplineRetireCmd struct {
	Name string `arg:"" help:"Discipline name."`
}

func (c *DisciplineRetireCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	d, err := ctx.Store.GetDisciplineByName(c.Name)
	if err != nil {
		return fmt.Errorf("discipline %q not found", c.Name)
	}
	if !d.Active() {
		return fmt.Errorf("discipline %q is already %s", c.Name, d.Status)
	}

	d.Status = constants.DisciplineRetired
	if err := ctx.Store.UpdateDiscipline(d); err != nil {
		return err
	}

	fmt.Printf("Retired discipline: %s\n", c.Name)
	return nil
}

type DisciplineEvolveCmd struct {
	Name      string `arg:"" help:"Discipline name to evolve."`
	Into      string `help:"Name of the successor discipline." required:""`
	Frequency string `help:"Successor schedule (default: same as predecessor)." default:""`
	Days      string `help:"Successor weekdays for specific-days frequency." default:""`
	Target    int    `help:"Successor target minutes (default: same as predecessor)." default:"-1"`
}

func (c *DisciplineEvolveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	old, err := ctx.Store.GetDisciplineByName(c.Name)
	if err != nil {
		return fmt.Errorf("discipline %q not found", c.Name)
	}
	if !old.Active() {
		return fmt.Errorf("discipline %q is already %s", c.Name, old.Status)
	}

	if _, err := ctx.Store.GetDisciplineByName(c.Into); err == nil {
		return fmt.Errorf("discipline with name %q already exists", c.Into)
	}

	// Successor inherits the predecessor's schedule unless overridden
	frequency := old.Frequency
	if c.Frequency != "" {
		frequency, err = ParseFrequency(c.Frequency)
		if err != nil {
			return err
		}
	}

	days := old.Days
	if c.Days != "" {
		if frequency != constants.FrequencySpecificDays {
			return fmt.Errorf("--days only applies to the specific-days frequency")
		}
		days, err = ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
	}
	if frequency != constants.FrequencySpecificDays {
		days = nil
	}

	target := old.TargetMinutes
	if c.Target >= 0 {
		target = c.Target
	}

	successor := models.Discipline{
		ID:            uuid.New().String(),
		Name:          c.Into,
		TargetMinutes: target,
		Frequency:     frequency,
		Days:          days,
		StartedAt:     time.Now(),
		Status:        constants.DisciplineActive,
		CreatedAt:     time.Now(),
	}
	if err := successor.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddDiscipline(successor); err != nil {
		return err
	}

	old.Status = constants.DisciplineEvolved
	old.EvolvedInto = &successor.ID
	if err := ctx.Store.UpdateDiscipline(old); err != nil {
		return err
	}

	fmt.Printf("Evolved %q into %q\n", c.Name, c.Into)
	return nil
}
