package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"timetracker/internal/core/tracker"
	"timetracker/internal/platform"
	"timetracker/internal/storage"
	"timetracker/internal/ui/format"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AppName names the directory holding the tracker data.
const AppName = "timetracker"

// ErrTrayRunning is returned by commands that change tasks while the tray
// application owns the data file.
var ErrTrayRunning = errors.New("the tray application is running, use it to change tasks")

type app struct {
	config      *viper.Viper
	trayRunning func() bool
}

// NewRootCmd builds the tt command tree.
func NewRootCmd(version string) *cobra.Command {
	rt := &app{config: viper.New()}
	rt.trayRunning = func() bool {
		return trayRunning(AppName)
	}
	return newRootCmd(version, rt)
}

func newRootCmd(version string, rt *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tt",
		Short: "Track time spent on named tasks",
		Long: `tt records how long you work on named tasks.

Starting a task stops whichever task was running. Data is shared with the
tray application. The tray keeps its tasks in memory, so while it runs tt
only reports and changes go through the tray.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.PersistentFlags().String("data", "", "Path to the tracker data file")
	rootCmd.PersistentFlags().String("format", format.DefaultLayout, "Duration layout (HH, mm, ss tokens)")
	_ = rt.config.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	_ = rt.config.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	rt.config.SetEnvPrefix("TIMETRACKER")
	rt.config.AutomaticEnv()

	rootCmd.AddCommand(newStartCmd(rt))
	rootCmd.AddCommand(newStopCmd(rt))
	rootCmd.AddCommand(newStatusCmd(rt))
	rootCmd.AddCommand(newListCmd(rt))
	rootCmd.AddCommand(newDescribeCmd(rt))
	rootCmd.AddCommand(newRenameCmd(rt))
	rootCmd.AddCommand(newResetCmd(rt))
	rootCmd.AddCommand(newDeleteCmd(rt))

	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (rt *app) dataPath() (string, error) {
	if path := strings.TrimSpace(rt.config.GetString("data")); path != "" {
		return path, nil
	}
	return storage.DataPath(AppName)
}

func (rt *app) layout() string {
	return rt.config.GetString("format")
}

// readStore loads the tracker state for a command that only reports it.
func (rt *app) readStore(fn func(store *tracker.Store) error) error {
	path, err := rt.dataPath()
	if err != nil {
		return err
	}

	snapshot, err := storage.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	return fn(tracker.New(snapshot, tracker.Config{}))
}

// withStore loads the tracker state, runs fn and waits for the resulting
// state to be written back. It refuses to run while the tray application
// holds the tasks in memory, since the tray would overwrite the change.
func (rt *app) withStore(fn func(store *tracker.Store) error) error {
	if rt.trayRunning != nil && rt.trayRunning() {
		return ErrTrayRunning
	}

	path, err := rt.dataPath()
	if err != nil {
		return err
	}

	snapshot, err := storage.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	store := tracker.New(snapshot, tracker.Config{})
	writer := storage.NewWriter(path)
	defer writer.Close()
	store.Subscribe(writer.Observe)

	return fn(store)
}

// trayRunning reports whether the tray application holds its instance claim.
func trayRunning(appName string) bool {
	instance, err := platform.ClaimInstance(appName)
	if err != nil {
		return errors.Is(err, platform.ErrAlreadyRunning)
	}
	_ = instance.Release()
	return false
}
