package cli

import (
	"fmt"
	"strings"

	"timetracker/internal/core/tracker"
	"timetracker/internal/ui/format"

	"github.com/spf13/cobra"
)

func newStartCmd(rt *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <name>",
		Short: "Start the task timer",
		Long:  `Start timing the named task, stopping the active task first.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return fmt.Errorf("task name is empty")
			}

			return rt.withStore(func(store *tracker.Store) error {
				if active, ok := store.Active(); ok && active.Name == name {
					fmt.Fprintf(cmd.OutOrStdout(), "Timer already running for %s\n", name)
					return nil
				}
				store.Start(name, description)
				fmt.Fprintf(cmd.OutOrStdout(), "Timer started for %s\n", name)
				return nil
			})
		},
	}
	cmd.Flags().StringP("description", "d", "", "Description of this work interval")
	return cmd
}

func newStopCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active task timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withStore(func(store *tracker.Store) error {
				name, stopped := store.StopActive()
				if !stopped {
					fmt.Fprintln(cmd.OutOrStdout(), "No active task")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Timer stopped for %s\n", name)
				return nil
			})
		},
	}
}

func newStatusCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active task and its total time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.readStore(func(store *tracker.Store) error {
				task, ok := store.Active()
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "No active task")
					return nil
				}
				line := fmt.Sprintf("%s: %s", task.Name, format.Duration(store.Elapsed(task), rt.layout()))
				if open, running := task.OpenInterval(); running && open.Description != "" {
					line += fmt.Sprintf(" (%s)", open.Description)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			})
		},
	}
}

func newDescribeCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <description>",
		Short: "Describe what the active task interval is about",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			return rt.withStore(func(store *tracker.Store) error {
				task, ok := store.Active()
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "No active task")
					return nil
				}
				store.DescribeActive(description)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated description for %s\n", task.Name)
				return nil
			})
		},
	}
}
