package main

import (
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"github.com/tliron/glsp/server"

	"github.com/tminor/lsparm/implementation"
)

const serverName = "arm-template-lsp"

var logFormat = logging.MustStringFormatter(
	"%{time:2006/01/02 15:04:05.000} %{level:8.8s} [%{module}] %{message}",
)

var (
	verbose int
	logFile string
)

var rootCommand = &cobra.Command{
	Use:   "lsparm",
	Short: "Language server for Azure Resource Manager deployment templates",
	Long:  "lsparm speaks the Language Server Protocol over stdio and answers hover, definition, and symbol requests for ARM deployment-template JSON documents.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configureLogging(verbose, logFile); err != nil {
			return err
		}

		s := server.NewServer(&implementation.Handler, serverName, false)
		s.RunStdio()
		return nil
	},
}

// configureLogging installs one leveled backend for every logger in the
// process; the server's own logger goes through the same module.
func configureLogging(verbose int, path string) error {
	var writer io.Writer = os.Stderr
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		atexit.Register(func() { file.Close() })
		writer = file
	}

	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(writer, "", 0),
		logFormat,
	))
	backend.SetLevel(logLevel(verbose), "")
	logging.SetBackend(backend)
	return nil
}

// logLevel maps the -v count to a level: warnings by default, -v for
// info, -vv for debug.
func logLevel(verbose int) logging.Level {
	switch {
	case verbose <= 0:
		return logging.WARNING
	case verbose == 1:
		return logging.INFO
	default:
		return logging.DEBUG
	}
}

func init() {
	rootCommand.Flags().CountVarP(&verbose, "verbose", "v", "add a log verbosity level (can be used twice)")
	rootCommand.Flags().StringVar(&logFile, "log-file", "", "log to file instead of stderr")
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
