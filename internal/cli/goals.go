package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
)

type GoalCmd struct {
	Add     GoalAddCmd     `cmd:"" help:"Add a goal for a period."`
	List    GoalListCmd    `cmd:"" help:"List goals for the current periods."`
	Achieve GoalAchieveCmd `cmd:"" help:"Close a goal as achieved."`
	Drop    GoalDropCmd    `cmd:"" help:"Close a goal as dropped."`
}

// ParseHorizon parses a horizon flag into its stored form
func ParseHorizon(s string) (constants.Horizon, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return constants.HorizonWeek, nil
	case "month":
		return constants.HorizonMonth, nil
	case "quarter":
		return constants.HorizonQuarter, nil
	case "life":
		return constants.HorizonLife, nil
	default:
		return "", fmt.Errorf("invalid horizon: %s (expected week, month, quarter, or life)", s)
	}
}

type GoalAddCmd struct {
	Title   string `arg:"" help:"Goal title."`
	Horizon string `help:"Period horizon (week, month, quarter, life)." default:"week"`
	Period  string `help:"Period key (default: current period for the horizon)." default:""`
	Area    string `help:"Focus area name to attach the goal to." default:""`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	horizon, err := ParseHorizon(c.Horizon)
	if err != nil {
		return err
	}

	periodKey := c.Period
	if periodKey == "" {
		periodKey, err = period.KeyFor(horizon, ctx.Now())
		if err != nil {
			return err
		}
	}

	goal := models.Goal{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Horizon:   horizon,
		PeriodKey: periodKey,
		Status:    constants.GoalOpen,
		CreatedAt: time.Now(),
	}

	if c.Area != "" {
		area, err := ctx.Store.GetAreaByName(c.Area)
		if err != nil {
			return fmt.Errorf("focus area %q not found", c.Area)
		}
		goal.AreaID = &area.ID
	}

	if err := goal.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddGoal(goal); err != nil {
		return err
	}

	fmt.Printf("Added %s goal: %s (%s)\n", horizon, c.Title, periodKey)
	return nil
}

type GoalListCmd struct {
	Horizon string `help:"Only show goals for this horizon." default:""`
	Period  string `help:"Period key to show (default: current period)." default:""`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	horizons := []constants.Horizon{
		constants.HorizonWeek,
		constants.HorizonMonth,
		constants.HorizonQuarter,
		constants.HorizonLife,
	}
	if c.Horizon != "" {
		horizon, err := ParseHorizon(c.Horizon)
		if err != nil {
			return err
		}
		horizons = []constants.Horizon{horizon}
	} else if c.Period != "" {
		return fmt.Errorf("--period requires --horizon")
	}

	found := 0
	for _, horizon := range horizons {
		periodKey := c.Period
		if periodKey == "" {
			key, err := period.KeyFor(horizon, ctx.Now())
			if err != nil {
				return err
			}
			periodKey = key
		}

		goals, err := ctx.Store.GetGoalsByPeriod(string(horizon), periodKey)
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			continue
		}

		if found > 0 {
			fmt.Println()
		}
		label := string(horizon)
		label = strings.ToUpper(label[:1]) + label[1:]
		fmt.Printf("%s (%s):\n", label, periodKey)
		for _, goal := range goals {
			marker := "[ ]"
			switch goal.Status {
			case constants.GoalAchieved:
				marker = "[x]"
			case constants.GoalDropped:
				marker = "[-]"
			}
			line := fmt.Sprintf("%s %s", marker, goal.Title)
			if goal.Outcome != "" {
				line += fmt.Sprintf(" (%s)", goal.Outcome)
			}
			fmt.Println(line)
		}
		found += len(goals)
	}

	if found == 0 {
		fmt.Println("No goals found for the current periods.")
	}

	return nil
}

// resolveOpenGoal finds a single open goal by title, optionally narrowed to
// one horizon. Ambiguous matches are an error rather than a guess.
func resolveOpenGoal(ctx *Context, title, horizonFlag string) (models.Goal, error) {
	goals, err := ctx.Store.GetAllGoals(false)
	if err != nil {
		return models.Goal{}, err
	}

	var horizon constants.Horizon
	if horizonFlag != "" {
		horizon, err = ParseHorizon(horizonFlag)
		if err != nil {
			return models.Goal{}, err
		}
	}

	var matches []models.Goal
	for _, goal := range goals {
		if goal.Status != constants.GoalOpen {
			continue
		}
		if !strings.EqualFold(goal.Title, title) {
			continue
		}
		if horizon != "" && goal.Horizon != horizon {
			continue
		}
		matches = append(matches, goal)
	}

	switch len(matches) {
	case 0:
		return models.Goal{}, fmt.Errorf("open goal %q not found", title)
	case 1:
		return matches[0], nil
	default:
		return models.Goal{}, fmt.Errorf("multiple open goals named %q, narrow with --horizon", title)
	}
}

type GoalAchieveCmd struct {
	Title   string `arg:"" help:"Goal title."`
	Outcome string `help:"What came of it." default:""`
	Horizon string `help:"Narrow the match to one horizon." default:""`
}

func (c *GoalAchieveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := resolveOpenGoal(ctx, c.Title, c.Horizon)
	if err != nil {
		return err
	}

	now := time.Now()
	goal.Status = constants.GoalAchieved
	goal.Outcome = c.Outcome
	goal.ClosedAt = &now

	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return err
	}

	fmt.Printf("Achieved goal: %s\n", goal.Title)
	return nil
}

type GoalDropCmd struct {
	Title   string `arg:"" help:"Goal title."`
	Outcome string `help:"Why it was dropped." default:""`
	Horizon string `help:"Narrow the match to one horizon." default:""`
}

func (c *GoalDropCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := resolveOpenGoal(ctx, c.Title, c.Horizon)
	if err != nil {
		return err
	}

	now := time.Now()
	goal.Status = constants.GoalDropped
	goal.Outcome = c.Outcome
	goal.ClosedAt = &now

	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return err
	}

	fmt.Printf("Dropped goal: %s\n", goal.Title)
	return nil
}
