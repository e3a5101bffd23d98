package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"timetracker/internal/core/model"
	"timetracker/internal/core/tracker"
	"timetracker/internal/ui/format"

	"github.com/spf13/cobra"
)

func newListCmd(rt *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks with their total time",
		Long:  `List every task, most recently started first. The active task is marked with *.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showHistory, _ := cmd.Flags().GetBool("history")
			return rt.readStore(func(store *tracker.Store) error {
				snapshot := store.Snapshot()
				if len(snapshot.Tasks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
					return nil
				}

				now := store.Now()
				table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for i, task := range snapshot.Tasks {
					marker := " "
					if i == snapshot.Active {
						marker = "*"
					}
					fmt.Fprintf(table, "%s %s\t%s\n", marker, task.Name, format.Duration(model.Elapsed(task, now), rt.layout()))
					if showHistory && len(task.History) > 0 {
						fmt.Fprintf(table, "    %s\t\n", strings.Join(task.History, ", "))
					}
				}
				return table.Flush()
			})
		},
	}
	cmd.Flags().Bool("history", false, "Show recent descriptions for each task")
	return cmd
}

func newRenameCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], strings.TrimSpace(args[1])
			return rt.withStore(func(store *tracker.Store) error {
				if !taskExists(cmd, store, oldName) {
					return nil
				}
				if _, taken := store.Task(newName); taken && newName != oldName {
					fmt.Fprintf(cmd.OutOrStdout(), "Task already exists: %s\n", newName)
					return nil
				}
				store.Update(oldName, tracker.TaskPatch{Name: &newName})
				if _, ok := store.Task(newName); !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Invalid task name: %q\n", args[1])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", oldName, newName)
				return nil
			})
		},
	}
}

func newResetCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <name>",
		Short: "Clear the recorded time of a task",
		Long:  `Clear the recorded time of a task, keeping its description history. A running task is stopped.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return rt.withStore(func(store *tracker.Store) error {
				if !taskExists(cmd, store, name) {
					return nil
				}
				store.Reset(name)
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", name)
				return nil
			})
		},
	}
}

func newDeleteCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return rt.withStore(func(store *tracker.Store) error {
				if !taskExists(cmd, store, name) {
					return nil
				}
				store.Delete(name)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", name)
				return nil
			})
		},
	}
}

func taskExists(cmd *cobra.Command, store *tracker.Store, name string) bool {
	if _, ok := store.Task(name); ok {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task not found: %s\n", name)
	return false
}
