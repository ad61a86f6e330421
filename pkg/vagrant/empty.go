// SPDX-License-Identifier: MPL-2.0

package vagrant

import "context"

// EmptyClient is a Client over an environment that could not be reached.
// Status queries succeed with no machines; ssh-config operations fail with
// ErrStatusUnavailable. SafeLoad returns one when prefetching fails.
type EmptyClient struct {
	workingDir string
}

var _ Client = (*EmptyClient)(nil)

// NewEmptyClient creates an EmptyClient for the given working directory.
func NewEmptyClient(workingDir string) *EmptyClient {
	return &EmptyClient{workingDir: workingDir}
}

// WorkingDir implements Client.
func (c *EmptyClient) WorkingDir() string {
	return c.workingDir
}

// Status implements Client. It always reports no machines.
func (c *EmptyClient) Status(context.Context, bool) (map[string]MachineStatus, error) {
	return map[string]MachineStatus{}, nil
}

// AllRunning implements Client.
func (c *EmptyClient) AllRunning(context.Context, bool) (bool, error) {
	return false, nil
}

// AnyRunning implements Client.
func (c *EmptyClient) AnyRunning(context.Context, bool) (bool, error) {
	return false, nil
}

// RunningMachines implements Client.
func (c *EmptyClient) RunningMachines(context.Context, bool) ([]string, error) {
	return nil, nil
}

// SSHConfig implements Client.
func (c *EmptyClient) SSHConfig(context.Context, bool) (string, error) {
	return "", ErrStatusUnavailable
}

// WriteSSHConfig implements Client.
func (c *EmptyClient) WriteSSHConfig(context.Context, string, ...string) error {
	return ErrStatusUnavailable
}
