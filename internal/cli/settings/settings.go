package settings

import (
	"fmt"

	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone    *string `help:"IANA timezone name (e.g. America/New_York, or Local)."`
	PartnerName *string `help:"Accountability partner display name."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:     %s\n", settings.Timezone)
		fmt.Printf("  Partner Name: %s\n", settings.PartnerName)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone name: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.PartnerName != nil {
		settings.PartnerName = *c.PartnerName
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
