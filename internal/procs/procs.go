// Package procs finds other running habitual processes. They share one
// store with last-write-wins semantics, so doctor reports them.
package procs

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitual/internal/constants"
)

var (
	processesFunc = ps.Processes
	getpidFunc    = os.Getpid
)

// Process is a running process matched by executable name.
type Process struct {
	PID        int
	Executable string
}

// Others returns every process other than the current one whose executable
// is habitual, ordered by PID.
func Others() ([]Process, error) {
	all, err := processesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	self := getpidFunc()
	var out []Process
	for _, p := range all {
		if p == nil || p.Pid() == self {
			continue
		}
		if !isHabitual(p.Executable()) {
			continue
		}
		out = append(out, Process{PID: p.Pid(), Executable: p.Executable()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

// isHabitual matches "habitual" and "habitual.exe" but not tools that merely
// share the prefix.
func isHabitual(executable string) bool {
	name := strings.TrimSuffix(strings.ToLower(executable), ".exe")
	return name == constants.AppName
}
