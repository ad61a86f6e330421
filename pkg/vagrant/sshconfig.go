// SPDX-License-Identifier: MPL-2.0

package vagrant

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"vagabond-cli/pkg/uri"
)

// SSHHostConfig is one Host block of a vagrant-generated ssh-config file.
// Only the settings needed to reach the machine are captured.
type SSHHostConfig struct {
	Host         string
	HostName     string
	User         string
	Port         int
	IdentityFile string
}

// URI renders the host entry as an ssh:// URI. The identity file travels as
// an identityfile query parameter so the URI stays self-contained.
func (h SSHHostConfig) URI() *uri.Uri {
	m := uri.New().Scheme("ssh").Host(h.HostName)
	if h.User != "" {
		m.UserInfo(h.User)
	}
	if h.Port != 0 {
		m.Port(h.Port)
	}
	if h.IdentityFile != "" {
		m.Query("identityfile", h.IdentityFile)
	}
	return m.Immutable()
}

// postProcessSSHConfig rewrites vagrant's ssh-config output so the file can
// be fed to ssh -F directly: UserKnownHostsFile lines are dropped and quote
// characters are stripped from IdentityFile lines.
func postProcessSSHConfig(out string) string {
	var sb strings.Builder
	for _, line := range splitLines(out) {
		if strings.Contains(line, "UserKnownHostsFile") {
			continue
		}
		if strings.Contains(line, "IdentityFile") {
			line = strings.ReplaceAll(line, `"`, "")
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseSSHConfig reads Host blocks from a vagrant-generated ssh-config
// stream. It is not a general ssh-config parser: vagrant emits one flat
// "Key Value" pair per line and no Match blocks, so that is all it handles.
func ParseSSHConfig(r io.Reader) ([]SSHHostConfig, error) {
	var (
		hosts   []SSHHostConfig
		current *SSHHostConfig
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		if key == "Host" {
			hosts = append(hosts, SSHHostConfig{Host: value})
			current = &hosts[len(hosts)-1]
			continue
		}
		if current == nil {
			continue
		}

		switch key {
		case "HostName":
			current.HostName = value
		case "User":
			current.User = value
		case "Port":
			if port, err := strconv.Atoi(value); err == nil {
				current.Port = port
			}
		case "IdentityFile":
			current.IdentityFile = strings.ReplaceAll(value, `"`, "")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return hosts, nil
}
