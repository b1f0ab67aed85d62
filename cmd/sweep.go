package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cailloux/agenda/internal/store"
	"github.com/cailloux/agenda/internal/sweep"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one status reconciliation pass and exit",
	Long: `Complete overdue calendar-sourced tasks and reopen completed ones whose
due date has moved back into the future, then exit.`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	taskStore := store.NewFileStore(snap.TasksFilePath())
	logger := log.New(os.Stderr, "", log.LstdFlags)

	controller := sweep.NewController(taskStore, logger)
	res, err := controller.Tick(time.Now().UnixMilli())
	if err != nil {
		return err
	}

	fmt.Printf("Completed %d, reopened %d\n", res.Completed, res.Reopened)
	return nil
}
