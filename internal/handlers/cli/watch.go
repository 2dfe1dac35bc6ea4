package cli

import (
	"bufio"
	"context"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/gabapcia/blockview/internal/blockfeed"
	"github.com/gabapcia/blockview/internal/blockview"
	"github.com/gabapcia/blockview/internal/pkg/logger"
	"github.com/gabapcia/blockview/internal/pkg/x/chflow"

	"github.com/urfave/cli/v3"
)

// clearScreen moves the cursor home and erases the terminal.
const clearScreen = "\033[H\033[2J"

const promptLine = "\nEnter a block number to show or hide its transactions, q to quit.\n"

// watchCommand returns a CLI command that mounts the block view, redraws it
// whenever the feed delivers a new list, and toggles cards from stdin.
//
// Usage example:
//
//	blockview watch
//
// The process runs until "q" is entered or it receives SIGINT or SIGTERM.
func watchCommand(feed blockfeed.Service) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Poll the block list every 10 seconds and render it as expandable cards.",
		Usage:       "Renders the block list and refreshes it in place. Terminates on q, Ctrl+C or termination signals.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-clear",
				Usage: "Append each redraw instead of clearing the screen",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			view := blockview.New()
			s := &screen{w: c.Root().Writer, view: view, clear: !c.Bool("no-clear")}

			unmount, err := view.Mount(ctx, feed, func() { s.draw(ctx) })
			if err != nil {
				return err
			}
			defer unmount()

			s.draw(ctx)
			return readCommands(ctx, c.Root().Reader, view, s)
		},
	}
}

// screen serializes redraws coming from the feed and from user input.
type screen struct {
	mu    sync.Mutex
	w     io.Writer
	view  *blockview.View
	clear bool
}

func (s *screen) draw(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clear {
		_, _ = io.WriteString(s.w, clearScreen)
	}

	if err := s.view.Render(s.w); err != nil {
		logger.Error(ctx, "failed to render block view", "error", err)
		return
	}

	_, _ = io.WriteString(s.w, promptLine)
}

// readCommands applies input lines to the view until ctx is done, the user
// quits, or input ends. When input ends the view keeps refreshing until ctx
// is done.
func readCommands(ctx context.Context, r io.Reader, view *blockview.View, s *screen) error {
	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if !chflow.Send(ctx, lines, scanner.Text()) {
				return
			}
		}
	}()

	for {
		line, ok := chflow.Receive(ctx, lines)
		if !ok {
			if ctx.Err() == nil {
				<-ctx.Done()
			}
			return nil
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "q", "quit":
			return nil
		}

		n, err := strconv.Atoi(input)
		if err != nil {
			logger.Warn(ctx, "unknown command", "input", input)
			continue
		}

		if err := view.Toggle(n); err != nil {
			logger.Warn(ctx, "cannot toggle block", "block.number", n, "error", err)
			continue
		}

		s.draw(ctx)
	}
}
