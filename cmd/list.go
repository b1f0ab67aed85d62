package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cailloux/agenda/internal/calendar"
	"github.com/cailloux/agenda/internal/due"
	"github.com/cailloux/agenda/internal/store"
)

var listView string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List due tasks and exit",
	Long:  `List the tasks due in the selected period in a simple text format and exit.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listView, "view", "day", "Period to list (year, quarter, month, week, day)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cal := snap.Resolve()
	taskStore := store.NewFileStore(snap.TasksFilePath())

	tasks, err := taskStore.ListTasks()
	if err != nil {
		return fmt.Errorf("error listing tasks: %w", err)
	}

	view := calendar.ParseView(listView)
	focus := calendar.Today(cal.Timezone)
	start, end := calendar.Window(view, focus, cal.WeekStart)

	entries := due.ForWindow(due.Collect(tasks, cal, nil, nil), start, end)

	fmt.Printf("Due %s – %s:\n", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	if len(entries) == 0 {
		fmt.Println("Nothing due.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("  %04d-%02d-%02d %02d:%02d  %s [%s]\n",
			e.DueLocal.Year, e.DueLocal.Month, e.DueLocal.Day,
			e.DueLocal.Hour, e.DueLocal.Minute,
			e.Task.DisplayTitle(), e.Task.Status)
		if len(e.Task.Tags) > 0 {
			fmt.Printf("    Tags: %v\n", e.Task.Tags)
		}
	}

	return nil
}
