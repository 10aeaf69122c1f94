package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"routerwatch/internal/config"
	"routerwatch/internal/logging"
)

// app carries what every subcommand needs. It is filled in PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		envFile  string
		logLevel string
	)

	root := &cobra.Command{
		Use:   "routerwatch",
		Short: "Parse OpenWRT client and nlbw listings into structured records",
		Long: `routerwatch runs router diagnostic commands (or reads their saved output)
and turns the text into device and flow records.

Examples:
  routerwatch clients --file clients.txt
  ROUTERWATCH_ROUTER_FLOWS_COMMAND="ssh root@192.168.1.1 nlbw -c show -g mac,ip" routerwatch flows --top 5
  routerwatch collect --format html --baseline last.json
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newClientsCmd(a),
		newFlowsCmd(a),
		newCollectCmd(a),
		newBrowseCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("routerwatch: %v", err)
		os.Exit(1)
	}
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported format: %s", format)
}
