// SPDX-License-Identifier: MPL-2.0

package vagrant

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single vagrant invocation. Vagrant can stall for
// minutes when a provider misbehaves; status queries should not.
const DefaultTimeout = 60 * time.Second

var _ Client = (*CLIClient)(nil)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// CLIClientOption configures a CLIClient.
	CLIClientOption func(*CLIClient)

	// CLIClient implements Client by shelling out to the vagrant binary.
	// A zero-configured client resolves "vagrant" from PATH and runs in the
	// current directory. The client is safe for use from multiple
	// goroutines; the status and ssh-config caches are mutex-guarded.
	CLIClient struct {
		binaryPath   string
		baseArgs     []string
		workingDir   string
		sshConfigDir string
		timeout      time.Duration
		execCommand  ExecCommandFunc
		env          map[string]string
		logger       *log.Logger

		mu            sync.Mutex
		statusCache   []MachineStatus
		statusLoaded  bool
		sshConfigPath string
	}
)

// WithBinaryPath sets an explicit vagrant binary path, bypassing PATH lookup.
func WithBinaryPath(path string) CLIClientOption {
	return func(c *CLIClient) {
		c.binaryPath = path
	}
}

// WithBaseArgs sets arguments inserted before every subcommand, e.g. the
// remainder of a configured command string like "vagrant --no-color".
func WithBaseArgs(args ...string) CLIClientOption {
	return func(c *CLIClient) {
		c.baseArgs = args
	}
}

// WithWorkingDir sets the directory containing the Vagrantfile.
func WithWorkingDir(dir string) CLIClientOption {
	return func(c *CLIClient) {
		c.workingDir = dir
	}
}

// WithSSHConfigDir sets the directory where fetched ssh-config files are
// created ("" = the OS temp directory). The directory must exist.
func WithSSHConfigDir(dir string) CLIClientOption {
	return func(c *CLIClient) {
		c.sshConfigDir = dir
	}
}

// WithTimeout bounds each vagrant invocation. Zero disables the bound.
func WithTimeout(d time.Duration) CLIClientOption {
	return func(c *CLIClient) {
		c.timeout = d
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) CLIClientOption {
	return func(c *CLIClient) {
		c.execCommand = fn
	}
}

// WithEnv adds an environment variable set on every vagrant invocation.
func WithEnv(key, value string) CLIClientOption {
	return func(c *CLIClient) {
		if c.env == nil {
			c.env = make(map[string]string)
		}
		c.env[key] = value
	}
}

// WithLogger sets a logger for per-invocation debug output.
func WithLogger(logger *log.Logger) CLIClientOption {
	return func(c *CLIClient) {
		c.logger = logger
	}
}

// NewCLIClient creates a client for the vagrant CLI. The binary is resolved
// from PATH unless WithBinaryPath is given; resolution failure is deferred
// to the first invocation so that Available() can be consulted first.
func NewCLIClient(opts ...CLIClientOption) *CLIClient {
	c := &CLIClient{
		execCommand: exec.CommandContext,
		timeout:     DefaultTimeout,
		// Skip the version check vagrant runs against the network on
		// startup; a status query should never touch the network.
		env: map[string]string{"VAGRANT_CHECKPOINT_DISABLE": "1"},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.binaryPath == "" {
		c.binaryPath, _ = exec.LookPath("vagrant")
	}
	return c
}

// SafeLoad builds a CLIClient and prefetches status and ssh-config. When
// either fetch fails the returned client is an EmptyClient, so callers that
// only probe (test fixtures, doctor checks) never see an error.
func SafeLoad(opts ...CLIClientOption) Client {
	c := NewCLIClient(opts...)
	ctx := context.Background()
	if _, err := c.Status(ctx, true); err != nil {
		return NewEmptyClient(c.WorkingDir())
	}
	if _, err := c.SSHConfig(ctx, true); err != nil {
		return NewEmptyClient(c.WorkingDir())
	}
	return c
}

// WorkingDir returns the configured working directory ("" = current).
func (c *CLIClient) WorkingDir() string {
	return c.workingDir
}

// BinaryPath returns the resolved vagrant binary path.
func (c *CLIClient) BinaryPath() string {
	return c.binaryPath
}

// Available reports whether the vagrant binary could be resolved.
func (c *CLIClient) Available() bool {
	return c.binaryPath != ""
}

// Version returns the vagrant version string, e.g. "2.4.1".
func (c *CLIClient) Version(ctx context.Context) (string, error) {
	out, err := c.runCommand(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out), "Vagrant ")), nil
}

// Status implements Client.
func (c *CLIClient) Status(ctx context.Context, refresh bool) (map[string]MachineStatus, error) {
	statuses, err := c.statuses(ctx, refresh)
	if err != nil {
		return nil, err
	}
	return statusMap(statuses), nil
}

// AllRunning implements Client. It is false when no machines are defined.
func (c *CLIClient) AllRunning(ctx context.Context, refresh bool) (bool, error) {
	statuses, err := c.statuses(ctx, refresh)
	if err != nil {
		return false, err
	}
	if len(statuses) == 0 {
		return false, nil
	}
	for _, st := range statuses {
		if !st.Running() {
			return false, nil
		}
	}
	return true, nil
}

// AnyRunning implements Client.
func (c *CLIClient) AnyRunning(ctx context.Context, refresh bool) (bool, error) {
	statuses, err := c.statuses(ctx, refresh)
	if err != nil {
		return false, err
	}
	for _, st := range statuses {
		if st.Running() {
			return true, nil
		}
	}
	return false, nil
}

// RunningMachines implements Client.
func (c *CLIClient) RunningMachines(ctx context.Context, refresh bool) ([]string, error) {
	statuses, err := c.statuses(ctx, refresh)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, st := range statuses {
		if st.Running() {
			names = append(names, st.Name)
		}
	}
	return names, nil
}

// SSHConfig implements Client. The file lives in the OS temp directory and
// is reused until refresh is requested.
func (c *CLIClient) SSHConfig(ctx context.Context, refresh bool) (string, error) {
	c.mu.Lock()
	cached := c.sshConfigPath
	c.mu.Unlock()

	if !refresh && cached != "" {
		return cached, nil
	}

	f, err := os.CreateTemp(c.sshConfigDir, "vagrant.*.ssh-config")
	if err != nil {
		return "", err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", err
	}

	if err := c.WriteSSHConfig(ctx, path); err != nil {
		os.Remove(path)
		return "", err
	}

	c.mu.Lock()
	c.sshConfigPath = path
	c.mu.Unlock()

	return path, nil
}

// WriteSSHConfig implements Client. The captured output is post-processed
// before writing: UserKnownHostsFile lines are dropped (the generated paths
// are host-specific and break reuse of the file), and quotes are stripped
// from IdentityFile lines (OpenSSH rejects quoted paths in some versions).
func (c *CLIClient) WriteSSHConfig(ctx context.Context, path string, machines ...string) error {
	args := append([]string{"ssh-config"}, machines...)
	out, err := c.runCommand(ctx, args...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(postProcessSSHConfig(out)), 0o600)
}

// statuses returns the cached ordered status list, fetching when needed.
func (c *CLIClient) statuses(ctx context.Context, refresh bool) ([]MachineStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.statusLoaded && !refresh {
		return c.statusCache, nil
	}

	out, err := c.runCommand(ctx, "status", "--machine-readable")
	if err != nil {
		return nil, err
	}

	c.statusCache = parseStatus(splitLines(out))
	c.statusLoaded = true
	return c.statusCache, nil
}

// runCommand invokes the vagrant binary and returns its stdout. A non-zero
// exit yields a CommandError carrying the captured stderr.
func (c *CLIClient) runCommand(ctx context.Context, args ...string) (string, error) {
	if c.binaryPath == "" {
		return "", ErrBinaryNotFound
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fullArgs := append(append([]string{}, c.baseArgs...), args...)
	cmd := c.execCommand(ctx, c.binaryPath, fullArgs...)
	cmd.Dir = c.workingDir

	if len(c.env) > 0 {
		if cmd.Env == nil {
			cmd.Env = os.Environ()
		}
		for k, v := range c.env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if c.logger != nil {
		c.logger.Debug("running vagrant", "args", fullArgs, "dir", c.workingDir)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CommandError{
				Args:     fullArgs,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return "", err
	}

	return stdout.String(), nil
}

// splitLines splits process output into lines, tolerating CRLF endings and
// dropping a trailing empty line.
func splitLines(out string) []string {
	out = strings.ReplaceAll(out, "\r\n", "\n")
	lines := strings.Split(out, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
