// SPDX-License-Identifier: MPL-2.0

package vagrant

import (
	"strings"
	"testing"
)

const sampleSSHConfig = `Host web
  HostName 192.168.56.10
  User vagrant
  Port 22
  IdentityFile /home/joe/.vagrant.d/machines/web/virtualbox/private_key

Host db
  HostName 127.0.0.1
  User vagrant
  Port 2200
  IdentityFile "/home/joe/.vagrant.d/insecure_private_key"
`

func TestParseSSHConfig(t *testing.T) {
	t.Parallel()

	hosts, err := ParseSSHConfig(strings.NewReader(sampleSSHConfig))
	if err != nil {
		t.Fatalf("ParseSSHConfig() error = %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("got %d hosts, want 2", len(hosts))
	}

	web := hosts[0]
	if web.Host != "web" || web.HostName != "192.168.56.10" || web.User != "vagrant" || web.Port != 22 {
		t.Errorf("web = %+v", web)
	}

	db := hosts[1]
	if db.Port != 2200 {
		t.Errorf("db port = %d, want 2200", db.Port)
	}
	if strings.Contains(db.IdentityFile, `"`) {
		t.Errorf("db identity file keeps quotes: %q", db.IdentityFile)
	}
}

func TestParseSSHConfig_SkipsCommentsAndBlank(t *testing.T) {
	t.Parallel()

	in := "# generated\n\nHost only\n  HostName h\n  # inline note\n"
	hosts, err := ParseSSHConfig(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseSSHConfig() error = %v", err)
	}
	if len(hosts) != 1 || hosts[0].HostName != "h" {
		t.Errorf("hosts = %+v", hosts)
	}
}

func TestSSHHostConfig_URI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		host     SSHHostConfig
		expected string
	}{
		{
			name: "full entry",
			host: SSHHostConfig{
				Host: "web", HostName: "192.168.56.10", User: "vagrant", Port: 2222,
				IdentityFile: "/home/joe/key",
			},
			expected: "ssh://vagrant@192.168.56.10:2222?identityfile=%2Fhome%2Fjoe%2Fkey",
		},
		{
			name:     "default port omitted",
			host:     SSHHostConfig{Host: "web", HostName: "web.local", User: "vagrant"},
			expected: "ssh://vagrant@web.local",
		},
		{
			name:     "no user",
			host:     SSHHostConfig{Host: "web", HostName: "web.local", Port: 22},
			expected: "ssh://web.local:22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.host.URI().String(); got != tt.expected {
				t.Errorf("URI() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPostProcessSSHConfig(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"Host default",
		"  UserKnownHostsFile /dev/null",
		`  IdentityFile "/key path/id"`,
		"  StrictHostKeyChecking no",
	}, "\n")

	out := postProcessSSHConfig(in)

	if strings.Contains(out, "UserKnownHostsFile") {
		t.Error("UserKnownHostsFile line survived post-processing")
	}
	if !strings.Contains(out, "IdentityFile /key path/id") {
		t.Errorf("IdentityFile line not unquoted:\n%s", out)
	}
	if !strings.Contains(out, "StrictHostKeyChecking no") {
		t.Error("unrelated lines must pass through")
	}
}
