package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routerwatch/internal/config"
	"routerwatch/internal/logging"
	"routerwatch/internal/models"
	"routerwatch/internal/parser"
)

type fakeRunner struct {
	outputs map[string]string
	err     error
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, command string) (string, error) {
	f.calls = append(f.calls, command)
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("no deadline set")
	}
	if f.err != nil {
		return "", f.err
	}
	return f.outputs[command], nil
}

func testConfig() config.RouterConfig {
	return config.RouterConfig{
		ClientsCommand: "clients",
		FlowsCommand:   "flows",
		CommandTimeout: time.Second,
		Shell:          "sh",
	}
}

func TestSnapshot(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"clients": "phone aa:bb:cc:dd:ee:01 192.168.1.10 DHCP\nbroken line\n",
		"flows":   "mac ip conns rx rxp tx txp\naa:bb:cc:dd:ee:01 192.168.1.10 4 100 1 200 2\n",
	}}
	c := New(testConfig(), runner, logging.Discard())
	taken := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return taken }

	snap, err := c.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, taken, snap.TakenAt)
	assert.Equal(t, []models.DeviceRecord{{
		Hostname: "phone",
		MAC:      "aa:bb:cc:dd:ee:01",
		IP:       "192.168.1.10",
		Source:   models.SourceDHCPLease,
	}}, snap.Devices)
	require.Len(t, snap.Flows, 1)
	assert.Equal(t, int64(300), snap.Flows[0].TotalBytes())
	assert.Equal(t, []string{"clients", "flows"}, runner.calls)
}

func TestClientsReturnsStats(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"clients": "phone aa:bb:cc:dd:ee:01 192.168.1.10\nzero 00:00:00:00:00:00 192.168.1.11\n",
	}}
	c := New(testConfig(), runner, logging.Discard())

	devices, stats, err := c.Clients(context.Background())
	require.NoError(t, err)

	assert.Len(t, devices, 1)
	assert.Equal(t, parser.Stats{Lines: 2, Accepted: 1, Skipped: 1}, stats)
}

func TestClientsNotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.ClientsCommand = ""
	c := New(cfg, &fakeRunner{}, logging.Discard())

	_, _, err := c.Clients(context.Background())
	assert.ErrorIs(t, err, ErrCommandNotConfigured)
}

func TestFlowsRunnerError(t *testing.T) {
	boom := errors.New("ssh: connection refused")
	c := New(testConfig(), &fakeRunner{err: boom}, logging.Discard())

	_, _, err := c.Flows(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestShellRunner(t *testing.T) {
	r := ShellRunner{Shell: "sh", Log: logging.Discard()}

	out, err := r.Run(context.Background(), "printf 'a b c\\n'; echo noise >&2")
	require.NoError(t, err)
	assert.Equal(t, "a b c\n", out)

	_, err = r.Run(context.Background(), "exit 3")
	assert.Error(t, err)
}

func TestShellRunnerLongStderrLine(t *testing.T) {
	r := ShellRunner{Shell: "sh", Log: logging.Discard()}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// One stderr line past the scanner's default 64 KiB limit, one past maxStderrLine.
	command := "head -c 70000 /dev/zero | tr '\\0' x >&2; " +
		"head -c 1100000 /dev/zero | tr '\\0' y >&2; echo ok"

	out, err := r.Run(ctx, command)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.txt")
	require.NoError(t, os.WriteFile(path, []byte("header\n"), 0o600))

	got, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, "header\n", got)

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
