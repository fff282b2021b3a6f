package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	overview, err := ctx.Summary.Overview(ctx.Now())
	if err != nil {
		return err
	}

	fmt.Println("Goals:")
	printed := 0
	for _, hg := range overview.Goals {
		if hg.Open == 0 && hg.Achieved == 0 && hg.Dropped == 0 {
			continue
		}

		label := string(hg.Horizon)
		label = strings.ToUpper(label[:1]) + label[1:]

		var parts []string
		if hg.Open > 0 {
			parts = append(parts, fmt.Sprintf("%d open", hg.Open))
		}
		if hg.Achieved > 0 {
			parts = append(parts, fmt.Sprintf("%d achieved", hg.Achieved))
		}
		if hg.Dropped > 0 {
			parts = append(parts, fmt.Sprintf("%d dropped", hg.Dropped))
		}

		fmt.Printf("  %s (%s): %s\n", label, hg.PeriodKey, strings.Join(parts, ", "))
		printed++
	}
	if printed == 0 {
		fmt.Println("  none for the current periods")
	}

	fmt.Println("\nFocus (last 7 days):")
	if len(overview.AreaMinutes) == 0 {
		fmt.Println("  no sessions logged")
	} else {
		for _, am := range overview.AreaMinutes {
			fmt.Printf("  %-20s %d min\n", am.AreaName, am.Minutes)
		}
	}

	fmt.Printf("\nReflections in %s: %s\n",
		overview.ReflectionMonth, english.Plural(overview.ReflectionCount, "entry", "entries"))
	return nil
}
