// Package collector captures router command output and hands it to the parser.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"routerwatch/internal/config"
	"routerwatch/internal/models"
	"routerwatch/internal/parser"
)

// ErrCommandNotConfigured is returned when the command for a listing is empty.
var ErrCommandNotConfigured = errors.New("router command not configured")

// Collector runs the configured client and flow commands once per call.
type Collector struct {
	cfg    config.RouterConfig
	runner Runner
	log    logrus.FieldLogger
	now    func() time.Time
}

// New creates a Collector. A nil runner means a ShellRunner using cfg.Shell.
func New(cfg config.RouterConfig, runner Runner, log logrus.FieldLogger) *Collector {
	log = log.WithField("component", "collector")
	if runner == nil {
		runner = ShellRunner{Shell: cfg.Shell, Log: log}
	}
	return &Collector{
		cfg:    cfg,
		runner: runner,
		log:    log,
		now:    time.Now,
	}
}

// Clients runs the clients command and parses its output.
func (c *Collector) Clients(ctx context.Context) ([]models.DeviceRecord, parser.Stats, error) {
	out, err := c.run(ctx, "clients", c.cfg.ClientsCommand)
	if err != nil {
		return nil, parser.Stats{}, err
	}

	devices, stats := parser.ParseClientsWithStats(out)
	c.report("clients", stats)
	return devices, stats, nil
}

// Flows runs the flows command and parses its output.
func (c *Collector) Flows(ctx context.Context) ([]models.FlowRecord, parser.Stats, error) {
	out, err := c.run(ctx, "flows", c.cfg.FlowsCommand)
	if err != nil {
		return nil, parser.Stats{}, err
	}

	flows, stats := parser.ParseFlowsWithStats(out)
	c.report("flows", stats)
	return flows, stats, nil
}

// Snapshot collects both listings. Both commands must succeed.
func (c *Collector) Snapshot(ctx context.Context) (models.Snapshot, error) {
	snap := models.Snapshot{TakenAt: c.now()}

	devices, _, err := c.Clients(ctx)
	if err != nil {
		return snap, err
	}
	flows, _, err := c.Flows(ctx)
	if err != nil {
		return snap, err
	}

	snap.Devices = devices
	snap.Flows = flows
	return snap, nil
}

func (c *Collector) run(ctx context.Context, listing, command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("%s: %w", listing, ErrCommandNotConfigured)
	}

	if c.cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.CommandTimeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.runner.Run(ctx, command)
	if err != nil {
		return "", fmt.Errorf("%s: %w", listing, err)
	}

	c.log.WithFields(logrus.Fields{
		"listing":  listing,
		"bytes":    len(out),
		"duration": time.Since(start),
	}).Debug("command finished")
	return out, nil
}

func (c *Collector) report(listing string, stats parser.Stats) {
	entry := c.log.WithFields(logrus.Fields{
		"listing":  listing,
		"accepted": stats.Accepted,
		"skipped":  stats.Skipped,
	})
	if stats.Skipped > 0 {
		entry.Warn("dropped unparsable lines")
		return
	}
	entry.Debug("parsed listing")
}

// ReadInput reads saved command output from path, or from stdin when path is "-".
func ReadInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
