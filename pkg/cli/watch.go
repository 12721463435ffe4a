package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

const defaultDebounce = 300 * time.Millisecond

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the check whenever sources change",
		Long: `Run the check once, then again after every change to a Java source,
a .properties bundle or the config file. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
	cmd.Flags().Duration("debounce", defaultDebounce, "quiet period before re-running")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	g, err := newGuard(cmd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(g.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", g.root, err)
	}
	for _, dir := range g.watchDirs() {
		if err := addRecursive(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	ctx := cmd.Context()
	g.runLogged(ctx)

	g.log.WithField("root", g.root).Info("watching for changes")
	return watchLoop(ctx, watcher, debounce, g.log, g.relevant, func() {
		fmt.Fprintln(g.out)
		g.runLogged(ctx)
	})
}

func (g *guard) runLogged(ctx context.Context) {
	code, err := g.run(ctx)
	if err != nil {
		g.log.WithError(err).Error("guard run failed")
		return
	}
	g.log.WithField("exit_code", code).Debug("guard run complete")
}

// watchDirs lists the existing directories whose contents affect a run
func (g *guard) watchDirs() []string {
	var dirs []string
	for _, sourceRoot := range g.config.SourceRoots {
		dirs = append(dirs, filepath.Join(g.root, filepath.FromSlash(sourceRoot)))
	}
	dirs = append(dirs, filepath.Dir(filepath.Join(g.root, filepath.FromSlash(g.config.MessagesFile))))

	existing := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() && !slices.Contains(existing, dir) {
			existing = append(existing, dir)
		}
	}
	return existing
}

// relevant reports whether a change to path should trigger a re-run
func (g *guard) relevant(path string) bool {
	ext := filepath.Ext(path)
	if ext == g.config.Extension || ext == ".properties" {
		return true
	}
	return slices.Contains(linter.ConfigFileNames, filepath.Base(path))
}

// addRecursive adds root and every directory below it to the watcher
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// watchLoop calls rerun once the watcher has been quiet for debounce after a
// relevant event. It returns when ctx is done or the watcher closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, log *logrus.Logger, relevant func(string) bool, rerun func()) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						log.WithError(err).WithField("dir", event.Name).Warn("failed to watch new directory")
					}
				}
			}

			if event.Op == fsnotify.Chmod || !relevant(event.Name) {
				continue
			}
			log.WithFields(logrus.Fields{
				"file": event.Name,
				"op":   event.Op.String(),
			}).Debug("change detected")
			timer.Reset(debounce)
		case <-timer.C:
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}
