package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
)

type PartnerCmd struct {
	Set     PartnerSetCmd     `cmd:"" help:"Set your accountability partner's name."`
	Checkin PartnerCheckinCmd `cmd:"" help:"Record that you checked in with your partner."`
	Digest  PartnerDigestCmd  `cmd:"" help:"Print the shareable daily digest."`
}

type PartnerSetCmd struct {
	Name string `arg:"" help:"Partner display name."`
}

func (c *PartnerSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	settings.PartnerName = c.Name
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Accountability partner set to %s\n", c.Name)
	return nil
}

type PartnerCheckinCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Note string `help:"Optional note about the check-in." default:""`
}

func (c *PartnerCheckinCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
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

	checkIn := models.PartnerCheckIn{
		ID:        uuid.New().String(),
		Day:       day,
		Note:      c.Note,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := checkIn.Validate(); err != nil {
		return err
	}

	if _, err := ctx.Store.UpsertPartnerCheckIn(checkIn); err != nil {
		return err
	}

	fmt.Printf("Recorded partner check-in for %s\n", day)

	streak, err := ctx.Reporter.Streak(ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Partner streak: %s\n", english.Plural(streak, "day", ""))
	return nil
}

type PartnerDigestCmd struct{}

func (c *PartnerDigestCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	digest, err := ctx.Reporter.Digest(ctx.Now())
	if err != nil {
		return err
	}

	fmt.Println(digest)
	return nil
}
