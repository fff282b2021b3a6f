package system

import (
	"fmt"

	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/constants"
)

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *cli.Context) error {
	fmt.Printf("%s %s\n", constants.AppName, constants.Version)
	return nil
}
