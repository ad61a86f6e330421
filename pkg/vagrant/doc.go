// SPDX-License-Identifier: MPL-2.0

// Package vagrant provides a thin client around the vagrant command-line
// tool: machine status via the machine-readable output format, and retrieval
// of ssh-config with the post-processing needed to make the emitted file
// usable as-is.
package vagrant
