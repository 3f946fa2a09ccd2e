package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/tactile/internal/app"
	"github.com/dshills/tactile/internal/renderer/backend"
)

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "tactile",
		Short: "Terminal pager driven by swipe and pull-to-refresh gestures",
		Long: `tactile shows a deck of pages in the terminal.

Drag horizontally with the mouse to change pages and drag down from the
top of a page to reload the deck. Edits and page changes can be undone
with Ctrl+Z and redone with Ctrl+Y.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(opts)
		},
	}

	flags := root.Flags()
	root.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to configuration file (TOML or YAML)")
	flags.StringVar(&opts.PagesPath, "pages", "", "pages file, plain text or JSON")
	flags.StringVar(&opts.ScriptPath, "script", "", "Lua script defining refresh()")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file path")
	flags.BoolVar(&opts.NoHaptics, "no-haptics", false, "disable the bell on committed gestures")
	flags.BoolVar(&opts.NoWatch, "no-watch", false, "do not reload the configuration file on change")

	root.AddCommand(newConfigCmd(&opts), newVersionCmd())
	return root
}

func runApp(opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}
	application.SetBackend(term)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Quit()
		}
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
