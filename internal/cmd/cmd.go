// Package cmd is the command-line entry point.
package cmd

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/muesli/coral"

	"github.com/gosain/tride/internal/model"
)

var (
	themeName string
	logFile   string
)

var root = &coral.Command{
	Use:   "tride <file.md>",
	Short: "Terminal presentations from markdown, with animated slide transitions",
	Long: `Tride compiles a markdown file into presentation slides and plays
them in the terminal. Slides are separated by horizontal rules; layout,
transition, and banner directives are embedded as markdown comments.
With no file argument the presentation is read from standard input.`,
	Args:         coral.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *coral.Command, args []string) error {
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return err
			}
			defer f.Close()
			log.SetOutput(f)
			log.SetLevel(log.DebugLevel)
		} else {
			// logging to the terminal would corrupt the presentation
			log.SetLevel(log.FatalLevel)
		}

		m := model.Model{ThemeName: themeName}
		if len(args) > 0 {
			m.FileName = args[0]
		}
		if err := m.Load(); err != nil {
			return err
		}

		if m.FileName != "" {
			if w, err := fsnotify.NewWatcher(); err == nil {
				if err := w.Add(m.FileName); err == nil {
					m.Watcher = w
					defer w.Close()
				} else {
					log.Warn("cannot watch file", "file", m.FileName, "err", err)
				}
			}
		}

		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	root.Flags().StringVarP(&themeName, "theme", "t", "", "color theme (mocha, macchiato, frappe, latte)")
	root.Flags().StringVar(&logFile, "log-file", "", "append debug logs to this file")
}

// Execute runs the root command.
func Execute() {
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
