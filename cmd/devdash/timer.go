package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/devdash/dev-dashboard/internal/timer"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Track working time on tasks",
}

var timerToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Start or stop the timer on a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		todo, err := a.timer.Toggle(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		elapsed, started := a.timer.Elapsed(todo)
		if todo.ActiveStart != nil {
			fmt.Printf("started %s (%s so far)\n", todo.Title, formatElapsed(elapsed, started))
		} else {
			fmt.Printf("stopped %s (%s total)\n", todo.Title, formatElapsed(elapsed, started))
		}
		return nil
	},
}

var timerWatchCmd = &cobra.Command{
	Use:   "watch <id>...",
	Short: "Continuously display elapsed time for tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTimerWatch,
}

func init() {
	timerCmd.AddCommand(timerToggleCmd)
	timerCmd.AddCommand(timerWatchCmd)
}

func runTimerWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	interval := time.Duration(a.cfg.Display.RefreshIntervalSec) * time.Second
	refresher := timer.NewRefresher(a.store, interval)
	defer refresher.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, id := range args {
		// The terminal stays "visible" until the watch is interrupted.
		refresher.Watch(id, func() bool { return ctx.Err() == nil })
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-refresher.Updates():
			state := "stopped"
			if u.Running {
				state = "running"
			}
			fmt.Printf("%s  %s  %s\n", u.TodoID, formatElapsed(u.Elapsed, u.Started), state)
		}
	}
}
