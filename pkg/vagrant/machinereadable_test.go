// SPDX-License-Identifier: MPL-2.0

package vagrant

import "testing"

func TestParseRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected record
		ok       bool
	}{
		{
			name:     "state record",
			line:     "123,default,state,running",
			expected: record{Timestamp: "123", Target: "default", Type: "state", Data: []string{"running"}},
			ok:       true,
		},
		{
			name:     "multiple data fields",
			line:     "1,web,state-human-long,The VM is running,extra",
			expected: record{Timestamp: "1", Target: "web", Type: "state-human-long", Data: []string{"The VM is running", "extra"}},
			ok:       true,
		},
		{
			name:     "escaped comma in data",
			line:     "1,web,ui,output,one%!(VAGRANT_COMMA) two",
			expected: record{Timestamp: "1", Target: "web", Type: "ui", Data: []string{"output", "one, two"}},
			ok:       true,
		},
		{
			name:     "record without data",
			line:     "1,web,metadata",
			expected: record{Timestamp: "1", Target: "web", Type: "metadata"},
			ok:       true,
		},
		{
			name: "free-form output is not a record",
			line: "Bringing machine 'default' up",
			ok:   false,
		},
		{
			name: "empty line",
			line: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, ok := parseRecord(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseRecord(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if rec.Timestamp != tt.expected.Timestamp || rec.Target != tt.expected.Target || rec.Type != tt.expected.Type {
				t.Errorf("parseRecord(%q) = %+v, want %+v", tt.line, rec, tt.expected)
			}
			if len(rec.Data) != len(tt.expected.Data) {
				t.Fatalf("Data = %v, want %v", rec.Data, tt.expected.Data)
			}
			for i := range rec.Data {
				if rec.Data[i] != tt.expected.Data[i] {
					t.Errorf("Data[%d] = %q, want %q", i, rec.Data[i], tt.expected.Data[i])
				}
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	lines := []string{
		"1700000000,web,metadata,provider,virtualbox",
		"1700000000,web,provider-name,virtualbox",
		"1700000000,web,state,running",
		"1700000000,web,state-human-short,running",
		"1700000001,db,provider-name,virtualbox",
		"1700000001,db,state,poweroff",
		"Some stray human-readable output",
	}

	statuses := parseStatus(lines)
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}

	if statuses[0].Name != "web" || statuses[1].Name != "db" {
		t.Errorf("order = [%s %s], want [web db]", statuses[0].Name, statuses[1].Name)
	}
	if statuses[0].State != StateRunning || !statuses[0].Running() {
		t.Errorf("web state = %q, want running", statuses[0].State)
	}
	if statuses[0].Provider != "virtualbox" {
		t.Errorf("web provider = %q, want virtualbox", statuses[0].Provider)
	}
	if statuses[1].State != StatePoweroff || statuses[1].Running() {
		t.Errorf("db state = %q, want poweroff", statuses[1].State)
	}
	if statuses[0].Raw != "1700000000,web,state,running" {
		t.Errorf("web raw = %q", statuses[0].Raw)
	}
}

func TestParseStatus_SingleMachine(t *testing.T) {
	t.Parallel()

	statuses := parseStatus([]string{"123,default,state,running"})
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses, want 1", len(statuses))
	}
	if statuses[0].Name != "default" || !statuses[0].Running() {
		t.Errorf("status = %+v, want running machine 'default'", statuses[0])
	}
}

func TestParseStatus_Empty(t *testing.T) {
	t.Parallel()

	if got := parseStatus(nil); len(got) != 0 {
		t.Errorf("parseStatus(nil) = %v, want empty", got)
	}
	if got := parseStatus([]string{""}); len(got) != 0 {
		t.Errorf("parseStatus with empty line = %v, want empty", got)
	}
}
