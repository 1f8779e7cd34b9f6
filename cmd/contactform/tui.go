package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yanizio/contactform/internal/config"
	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/logger"
	"github.com/yanizio/contactform/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the contact form in the terminal",
	Long: `Opens the contact form full-screen.  Errors appear as you type.

Keys: tab/shift+tab move between fields, enter submits from the Submit
button, ctrl+r resets, esc or ctrl+c quits.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The console core would draw over the alt screen; file logging only.
	lc := cfg.Log
	lc.Console = false
	log, err := logger.New(lc)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sc, err := form.LoadSchema(cfg.Form.Definition)
	if err != nil {
		return err
	}
	return tui.Run(sc, log, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
}
