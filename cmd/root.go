package cmd

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cailloux/agenda/internal/config"
	"github.com/cailloux/agenda/internal/store"
	"github.com/cailloux/agenda/internal/ui"
)

var (
	cfgFile   string
	tasksFile string
	snap      config.Snapshot
)

var rootCmd = &cobra.Command{
	Use:   "agenda",
	Short: "A terminal calendar over your task list",
	Long: `Agenda renders your tasks on a calendar, notifies you when they come
due, and keeps calendar-sourced tasks' completion status in step with time.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&tasksFile, "tasks-file", "", "Path to the tasks file")
}

func initConfig() {
	var err error
	if cfgFile != "" {
		snap, err = config.LoadFile(cfgFile)
	} else {
		snap, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if tasksFile != "" {
		snap.TasksFile = tasksFile
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	taskStore := store.NewFileStore(snap.TasksFilePath())
	stateStore := store.NewStateStore(snap.StateFilePath())
	logger := log.New(os.Stderr, "", log.LstdFlags)

	model := ui.NewModel(snap, taskStore, stateStore, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
