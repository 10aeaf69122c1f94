package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"routerwatch/internal/analysis"
	"routerwatch/internal/collector"
	"routerwatch/internal/models"
	"routerwatch/internal/parser"
	"routerwatch/internal/reporting"
	"routerwatch/internal/store"
	"routerwatch/internal/tui"
)

func newClientsCmd(a *app) *cobra.Command {
	var (
		file      string
		format    string
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Parse a client listing (HOSTNAME MAC IP [SOURCE])",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			var (
				devices []models.DeviceRecord
				stats   parser.Stats
			)
			if file != "" {
				text, err := collector.ReadInput(file)
				if err != nil {
					return err
				}
				devices, stats = parser.ParseClientsWithStats(text)
			} else {
				var err error
				devices, stats, err = collector.New(a.cfg.Router, nil, a.log).Clients(ctx)
				if err != nil {
					return err
				}
			}

			if showStats {
				printStats(cmd, stats)
			}

			switch format {
			case "json":
				return reporting.WriteJSON(cmd.OutOrStdout(), devices)
			case "table":
				fmt.Fprintln(cmd.OutOrStdout(), reporting.RenderDevices(devices))
				return nil
			default:
				return unsupportedFormat(format)
			}
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read saved output from file ('-' for stdin) instead of running the command")
	cmd.Flags().StringVar(&format, "format", "table", "output format (json, table)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print accepted/skipped line counts to stderr")
	return cmd
}

func newFlowsCmd(a *app) *cobra.Command {
	var (
		file      string
		format    string
		top       int
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   "flows",
		Short: "Parse an nlbw connection listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			var (
				flows []models.FlowRecord
				stats parser.Stats
			)
			if file != "" {
				text, err := collector.ReadInput(file)
				if err != nil {
					return err
				}
				flows, stats = parser.ParseFlowsWithStats(text)
			} else {
				var err error
				flows, stats, err = collector.New(a.cfg.Router, nil, a.log).Flows(ctx)
				if err != nil {
					return err
				}
			}

			if showStats {
				printStats(cmd, stats)
			}

			switch format {
			case "json":
				return reporting.WriteJSON(cmd.OutOrStdout(), flows)
			case "table":
				if top > 0 {
					traffic := analysis.NewTrafficStats()
					traffic.AddFlows(flows)
					fmt.Fprintln(cmd.OutOrStdout(), reporting.RenderTopTalkers(traffic, top))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), reporting.RenderFlows(flows))
				return nil
			default:
				return unsupportedFormat(format)
			}
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read saved output from file ('-' for stdin) instead of running the command")
	cmd.Flags().StringVar(&format, "format", "table", "output format (json, table)")
	cmd.Flags().IntVar(&top, "top", 0, "show only the N busiest hosts (table format)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print accepted/skipped line counts to stderr")
	return cmd
}

func newCollectCmd(a *app) *cobra.Command {
	var (
		format    string
		persist   bool
		baseline  string
		reportDir string
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run both router commands once and emit a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			snap, err := collector.New(a.cfg.Router, nil, a.log).Snapshot(ctx)
			if err != nil {
				return err
			}

			var alerts []analysis.Alert
			if baseline != "" {
				prev, err := readSnapshot(baseline)
				if err != nil {
					return err
				}
				alerts = analysis.DiffDevices(prev.Devices, snap.Devices)
				for _, alert := range alerts {
					color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", alert.Type, alert.Message)
				}
			}

			if persist {
				if err := persistSnapshot(ctx, a, snap); err != nil {
					return err
				}
			}

			traffic := analysis.NewTrafficStats()
			traffic.AddFlows(snap.Flows)

			switch format {
			case "json":
				return reporting.WriteJSON(cmd.OutOrStdout(), snap)
			case "table":
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, reporting.RenderDevices(snap.Devices))
				fmt.Fprintln(out, reporting.RenderTopTalkers(traffic, 10))
				return nil
			case "html":
				filename, err := reporting.GenerateSnapshotReport(snap, traffic, alerts, format, reportDir)
				if err != nil {
					return err
				}
				a.log.WithField("file", filename).Info("report written")
				return nil
			default:
				return unsupportedFormat(format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format (json, table, html)")
	cmd.Flags().BoolVar(&persist, "persist", false, "write the snapshot to Postgres (requires ROUTERWATCH_DATABASE_DSN)")
	cmd.Flags().StringVar(&baseline, "baseline", "", "previous snapshot (JSON) to compare the device list against")
	cmd.Flags().StringVar(&reportDir, "report-dir", ".", "directory for html reports")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	var clientsFile, flowsFile string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse one snapshot in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				snap   models.Snapshot
				source string
				err    error
			)
			if clientsFile != "" || flowsFile != "" {
				snap, err = snapshotFromFiles(clientsFile, flowsFile)
				source = "saved output"
			} else {
				snap, err = collector.New(a.cfg.Router, nil, a.log).Snapshot(cmd.Context())
				source = "live"
			}
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewBrowserModel(snap, source), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&clientsFile, "clients-file", "", "saved client listing")
	cmd.Flags().StringVar(&flowsFile, "flows-file", "", "saved nlbw listing")
	return cmd
}

func snapshotFromFiles(clientsFile, flowsFile string) (models.Snapshot, error) {
	snap := models.Snapshot{
		Devices: []models.DeviceRecord{},
		Flows:   []models.FlowRecord{},
	}

	if clientsFile != "" {
		text, err := collector.ReadInput(clientsFile)
		if err != nil {
			return snap, err
		}
		snap.Devices = parser.ParseClients(text)
		if info, err := os.Stat(clientsFile); err == nil {
			snap.TakenAt = info.ModTime()
		}
	}
	if flowsFile != "" {
		text, err := collector.ReadInput(flowsFile)
		if err != nil {
			return snap, err
		}
		snap.Flows = parser.ParseFlows(text)
	}
	return snap, nil
}

func persistSnapshot(ctx context.Context, a *app, snap models.Snapshot) error {
	if !a.cfg.Database.Enabled() {
		return fmt.Errorf("--persist needs ROUTERWATCH_DATABASE_DSN")
	}

	pg, err := store.Open(ctx, a.cfg.Database.DSN, a.cfg.Database.TablePrefix)
	if err != nil {
		return err
	}
	defer pg.Close(ctx)

	var s store.Store = pg
	if err := s.SaveSnapshot(ctx, snap); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"devices": len(snap.Devices),
		"flows":   len(snap.Flows),
	}).Info("snapshot persisted")
	return nil
}

func readSnapshot(path string) (models.Snapshot, error) {
	var snap models.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode baseline %s: %w", path, err)
	}
	return snap, nil
}

func printStats(cmd *cobra.Command, stats parser.Stats) {
	fmt.Fprintf(cmd.ErrOrStderr(), "lines=%d accepted=%d skipped=%d\n", stats.Lines, stats.Accepted, stats.Skipped)
}
