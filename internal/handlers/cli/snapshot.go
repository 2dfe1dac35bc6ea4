package cli

import (
	"context"

	"github.com/gabapcia/blockview/internal/blockfeed"
	"github.com/gabapcia/blockview/internal/blockview"

	"github.com/urfave/cli/v3"
)

// snapshotCommand returns a CLI command that fetches the block list once,
// prints it, and exits.
//
// Usage example:
//
//	blockview snapshot --expand
//
// A failed fetch is returned as the command error.
func snapshotCommand(source blockfeed.Source) *cli.Command {
	return &cli.Command{
		Name:        "snapshot",
		Description: "Fetch the block list once and print every block.",
		Usage:       "Prints the current block list and exits. Use --expand to include transactions.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "expand",
				Usage: "Show the transactions and outputs of every block",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			blocks, err := source.FetchBlocks(ctx)
			if err != nil {
				return err
			}

			view := blockview.New()
			view.Replace(blocks)
			if c.Bool("expand") {
				view.ExpandAll()
			}

			return view.Render(c.Root().Writer)
		},
	}
}
