package procs

import (
	"errors"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withProcesses(t *testing.T, self int, procs []ps.Process, err error) {
	t.Helper()
	oldProcesses, oldGetpid := processesFunc, getpidFunc
	t.Cleanup(func() {
		processesFunc = oldProcesses
		getpidFunc = oldGetpid
	})
	processesFunc = func() ([]ps.Process, error) { return procs, err }
	getpidFunc = func() int { return self }
}

func TestOthers(t *testing.T) {
	withProcesses(t, 10, []ps.Process{
		&mockProcess{pid: 10, executable: "habitual"},
		&mockProcess{pid: 42, executable: "habitual"},
		&mockProcess{pid: 7, executable: "Habitual.exe"},
		&mockProcess{pid: 11, executable: "habitual-tray"},
		&mockProcess{pid: 12, executable: "bash"},
		nil,
	}, nil)

	got, err := Others()
	if err != nil {
		t.Fatalf("Others() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Others() = %+v, want 2 processes", got)
	}
	if got[0].PID != 7 || got[1].PID != 42 {
		t.Errorf("Others() PIDs = %d,%d, want 7,42", got[0].PID, got[1].PID)
	}
}

func TestOthers_NoneRunning(t *testing.T) {
	withProcesses(t, 10, []ps.Process{&mockProcess{pid: 10, executable: "habitual"}}, nil)

	got, err := Others()
	if err != nil {
		t.Fatalf("Others() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Others() = %+v, want none", got)
	}
}

func TestOthers_ListError(t *testing.T) {
	withProcesses(t, 1, nil, errors.New("permission denied"))

	if _, err := Others(); err == nil {
		t.Fatal("expected an error")
	}
}
