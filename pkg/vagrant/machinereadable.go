// SPDX-License-Identifier: MPL-2.0

package vagrant

import "strings"

// vagrantComma is the escape sequence vagrant substitutes for commas inside
// machine-readable data fields.
const vagrantComma = "%!(VAGRANT_COMMA)"

// record is one line of vagrant's machine-readable output:
// timestamp,target,type,data...
type record struct {
	Timestamp string
	Target    string
	Type      string
	Data      []string
}

// parseRecord splits a machine-readable line into a record. Lines with fewer
// than three fields are not records (vagrant mixes free-form output into the
// stream under some providers) and are reported as not ok.
func parseRecord(line string) (record, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return record{}, false
	}

	rec := record{
		Timestamp: fields[0],
		Target:    fields[1],
		Type:      fields[2],
	}
	for _, f := range fields[3:] {
		rec.Data = append(rec.Data, unescapeField(f))
	}
	return rec, true
}

// unescapeField restores commas that vagrant escaped in data fields.
func unescapeField(s string) string {
	return strings.ReplaceAll(s, vagrantComma, ",")
}

// parseStatus folds machine-readable lines into per-machine statuses,
// preserving the order machines first appear in. "state" records set the
// machine state; "provider-name" records annotate the same machine. Empty
// input yields an empty slice.
func parseStatus(lines []string) []MachineStatus {
	var order []string
	byName := make(map[string]*MachineStatus)

	machine := func(name string) *MachineStatus {
		st, ok := byName[name]
		if !ok {
			st = &MachineStatus{Name: name}
			byName[name] = st
			order = append(order, name)
		}
		return st
	}

	for _, line := range lines {
		rec, ok := parseRecord(strings.TrimSpace(line))
		if !ok || rec.Target == "" || len(rec.Data) == 0 {
			continue
		}

		switch rec.Type {
		case "state":
			st := machine(rec.Target)
			st.State = MachineState(rec.Data[0])
			st.Raw = line
		case "provider-name":
			machine(rec.Target).Provider = rec.Data[0]
		}
	}

	statuses := make([]MachineStatus, 0, len(order))
	for _, name := range order {
		statuses = append(statuses, *byName[name])
	}
	return statuses
}

// statusMap keys statuses by machine name.
func statusMap(statuses []MachineStatus) map[string]MachineStatus {
	m := make(map[string]MachineStatus, len(statuses))
	for _, st := range statuses {
		m[st.Name] = st
	}
	return m
}
