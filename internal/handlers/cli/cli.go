package cli

import (
	"context"
	"os"

	"github.com/gabapcia/blockview/internal/blockfeed"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the blockview CLI application.
//
// It registers all available commands:
//
//   - `watch`: Polls the block list and renders it, refreshing in place.
//   - `snapshot`: Fetches the block list once and prints it.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - feed: The polling service driving the watch command.
//   - source: The block source used for one-off fetches.
func Run(ctx context.Context, feed blockfeed.Service, source blockfeed.Source) error {
	return newApp(feed, source).Run(ctx, os.Args)
}

func newApp(feed blockfeed.Service, source blockfeed.Source) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "blockview",
		Description:           "Terminal viewer for recently mined Bitcoin blocks.",
		Usage:                 "blockview [command] [flags]",
		Commands: []*cli.Command{
			watchCommand(feed),
			snapshotCommand(source),
		},
	}
}
