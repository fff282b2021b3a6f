package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

type JournalCmd struct {
	Write JournalWriteCmd `cmd:"" help:"Write or amend a day's reflection."`
	Show  JournalShowCmd  `cmd:"" help:"Show a day's reflection."`
	List  JournalListCmd  `cmd:"" help:"List recent reflections."`
}

type JournalWriteCmd struct {
	Date      string  `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Went      *string `help:"What went well."`
	Learned   *string `help:"What you learned."`
	Gratitude *string `help:"What you are grateful for."`
	Mood      *int    `help:"Mood from 1 to 5."`
}

func (c *JournalWriteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Went == nil && c.Learned == nil && c.Gratitude == nil && c.Mood == nil {
		return fmt.Errorf("nothing to write, pass at least one of --went, --learned, --gratitude, or --mood")
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

	// Amend the existing reflection when the day already has one
	reflection, err := ctx.Store.GetReflection(day)
	if errors.Is(err, storage.ErrNotFound) {
		reflection = models.Reflection{
			ID:        uuid.New().String(),
			Day:       day,
			CreatedAt: time.Now(),
		}
	} else if err != nil {
		return err
	}

	if c.Went != nil {
		reflection.Went = *c.Went
	}
	if c.Learned != nil {
		reflection.Learned = *c.Learned
	}
	if c.Gratitude != nil {
		reflection.Gratitude = *c.Gratitude
	}
	if c.Mood != nil {
		reflection.Mood = *c.Mood
	}
	reflection.UpdatedAt = time.Now()

	if err := reflection.Validate(); err != nil {
		return err
	}

	if _, err := ctx.Store.UpsertReflection(reflection); err != nil {
		return err
	}

	fmt.Printf("Saved reflection for %s\n", day)
	return nil
}

type JournalShowCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *JournalShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = ctx.Today()
	} else {
		if _, err := time.Parse(constants.DateFormat, day); err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
		}
	}

	reflection, err := ctx.Store.GetReflection(day)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("No reflection for %s.\n", day)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Reflection for %s:\n\n", day)
	if reflection.Went != "" {
		fmt.Printf("Went well:    %s\n", reflection.Went)
	}
	if reflection.Learned != "" {
		fmt.Printf("Learned:      %s\n", reflection.Learned)
	}
	if reflection.Gratitude != "" {
		fmt.Printf("Grateful for: %s\n", reflection.Gratitude)
	}
	if reflection.Mood > 0 {
		fmt.Printf("Mood:         %d/5\n", reflection.Mood)
	}
	return nil
}

type JournalListCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	end := ctx.Now()
	start := end.AddDate(0, 0, -(c.Days - 1))
	reflections, err := ctx.Store.GetReflections(start.Format(constants.DateFormat), end.Format(constants.DateFormat))
	if err != nil {
		return err
	}

	if len(reflections) == 0 {
		fmt.Printf("No reflections in the last %d days.\n", c.Days)
		return nil
	}

	for _, r := range reflections {
		summary := r.Went
		if summary == "" {
			summary = r.Learned
		}
		if summary == "" {
			summary = r.Gratitude
		}
		summary = strings.ReplaceAll(summary, "\n", " ")
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}

		line := r.Day
		if r.Mood > 0 {
			line += fmt.Sprintf("  mood %d/5", r.Mood)
		}
		if summary != "" {
			line += "  " + summary
		}
		fmt.Println(line)
	}

	return nil
}
