package main

import (
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-generate whenever the parameter file changes",
	Long: `Watches the parameter file and reruns generation on every save, so a
parameter edit immediately refreshes template.scad (and template.stl when
--render is set). Interrupt to stop.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWatch(cmd)
	},
}

func init() {
	watchCmd.Flags().AddFlagSet(generateCmd.Flags())
	rootCmd.AddCommand(watchCmd)
}

// debounce coalesces the burst of events editors emit per save.
const debounce = 250 * time.Millisecond

func runWatch(cmd *cobra.Command) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory, not the file: editors that write via
	// rename-over would otherwise drop the watch on the first save.
	if err := watcher.Add(filepath.Dir(genFlags.params)); err != nil {
		return err
	}
	target := filepath.Base(genFlags.params)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runGenerate(cmd); err != nil {
		cmd.PrintErrln("generate:", err)
	}
	cmd.Printf("watching %s\n", genFlags.params)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watcher.Errors:
			return err
		case ev := <-watcher.Events:
			if filepath.Base(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			if err := runGenerate(cmd); err != nil {
				cmd.PrintErrln("generate:", err)
			}
		}
	}
}
