package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/models"
)

type AreaCmd struct {
	Add     AreaAddCmd     `cmd:"" help:"Add a new focus area."`
	List    AreaListCmd    `cmd:"" help:"List focus areas."`
	Archive AreaArchiveCmd `cmd:"" help:"Archive a focus area."`
	Rm      AreaRmCmd      `cmd:"" help:"Delete a focus area (soft delete)."`
}

type AreaAddCmd struct {
	Name   string `arg:"" help:"Focus area name."`
	Parent string `help:"Parent area name." default:""`
	Color  string `help:"Display color (hex, e.g. #7c3aed)." default:""`
}

func (c *AreaAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Check if area with same name already exists
	_, err := ctx.Store.GetAreaByName(c.Name)
	if err == nil {
		return fmt.Errorf("focus area with name %q already exists", c.Name)
	}

	area := models.FocusArea{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: time.Now(),
	}

	if c.Parent != "" {
		parent, err := ctx.Store.GetAreaByName(c.Parent)
		if err != nil {
			return fmt.Errorf("parent area %q not found", c.Parent)
		}
		area.ParentID = &parent.ID
	}

	if err := area.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddArea(area); err != nil {
		return err
	}

	fmt.Printf("Added focus area: %s\n", c.Name)
	return nil
}

type AreaListCmd struct {
	Archived bool `help:"Include archived areas."`
	Deleted  bool `help:"Include deleted areas."`
}

func (c *AreaListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	areas, err := ctx.Store.GetAllAreas(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(areas) == 0 {
		fmt.Println("No focus areas found.")
		return nil
	}

	// Group children under their parents; areas whose parent is filtered
	// out of this listing fall back to the top level
	listed := make(map[string]bool, len(areas))
	for _, area := range areas {
		listed[area.ID] = true
	}
	children := make(map[string][]models.FocusArea)
	var roots []models.FocusArea
	for _, area := range areas {
		if area.ParentID != nil && listed[*area.ParentID] {
			children[*area.ParentID] = append(children[*area.ParentID], area)
		} else {
			roots = append(roots, area)
		}
	}

	for _, area := range roots {
		printArea(area, "")
		for _, child := range children[area.ID] {
			printArea(child, "  ")
		}
	}

	return nil
}

func printArea(area models.FocusArea, indent string) {
	status := ""
	if area.DeletedAt != nil {
		status = " [DELETED]"
	} else if area.ArchivedAt != nil {
		status = " [ARCHIVED]"
	}
	fmt.Printf("%s%s%s\n", indent, area.Name, status)
}

type AreaArchiveCmd struct {
	Name      string `arg:"" help:"Focus area name to archive."`
	Unarchive bool   `help:"Unarchive the area instead."`
}

func (c *AreaArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	area, err := ctx.Store.GetAreaByName(c.Name)
	if err != nil {
		return fmt.Errorf("focus area %q not found", c.Name)
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveArea(area.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived focus area: %s\n", c.Name)
	} else {
		if err := ctx.Store.ArchiveArea(area.ID); err != nil {
			return err
		}
		fmt.Printf("Archived focus area: %s\n", c.Name)
	}

	return nil
}

type AreaRmCmd struct {
	Name string `arg:"" help:"Focus area name to delete."`
}

func (c *AreaRmCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	area, err := ctx.Store.GetAreaByName(c.Name)
	if err != nil {
		return fmt.Errorf("focus area %q not found", c.Name)
	}

	if err := ctx.Store.DeleteArea(area.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted focus area: %s\n", c.Name)
	return nil
}
