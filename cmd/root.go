package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/josephlewis42/pipesh/core"
	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/logger"
	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string
	debug       bool
)

// errNoConfigDir is returned by commands that need a configuration directory.
var errNoConfigDir = errors.New("no configuration directory, pass --config")

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pipesh",
	Short: "A small interactive shell with pipelines and redirection",
	Long: `pipesh reads command lines and runs them. Lines are split into
pipeline stages on '|', stages may redirect input with '<' and output with
'>', and the internal commands exit, cd, help and echo run without starting
a program.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE:          runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	configuration, err := loadConfig()
	if err != nil {
		return err
	}

	s := core.NewShell(configuration, vos.Host())
	if debug {
		s.Log.SetLevel(log.DebugLevel)
	}

	if configuration.EventLog && configuration.HasDir() {
		fd, err := configuration.OpenEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()
		s.Events = logger.NewJsonLinesLogRecorder(fd).NewSession()
	}

	var status int
	if cmd.Flags().Changed("command") {
		status = s.RunCommand(commandLine)
	} else {
		status = s.Run()
	}

	if status != 0 {
		return &ExitError{Code: status}
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, exitErr.Err)
		}
		os.Exit(exitErr.Code)
	}
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration directory, built-in defaults if unset")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log interpreter internals to stderr")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit with its status")
}
