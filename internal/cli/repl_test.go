package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	fail  map[string]error
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if f.fail != nil {
		return f.fail[name]
	}
	return nil
}

func (f *fakeExec) AddPlant(ctx context.Context) error     { return f.record("add") }
func (f *fakeExec) ListPlants(ctx context.Context) error   { return f.record("list") }
func (f *fakeExec) ShowPlant(ctx context.Context) error    { return f.record("show") }
func (f *fakeExec) EditPlant(ctx context.Context) error    { return f.record("edit") }
func (f *fakeExec) DeletePlant(ctx context.Context) error  { return f.record("delete") }
func (f *fakeExec) LogCare(ctx context.Context) error      { return f.record("log") }
func (f *fakeExec) RecordGrowth(ctx context.Context) error { return f.record("growth") }
func (f *fakeExec) AttachPhoto(ctx context.Context) error  { return f.record("photo") }
func (f *fakeExec) SetReminder(ctx context.Context) error  { return f.record("remind") }
func (f *fakeExec) CancelReminder(ctx context.Context) error {
	return f.record("unremind")
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.Join([]string{
		"help",
		"add",
		"l",
		"list",
		"show",
		"edit",
		"log",
		"growth",
		"photo",
		"remind",
		"unremind",
		"delete",
		"foobar",
		"exit",
	}, "\n") + "\n"

	exec := &fakeExec{}
	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader(input)))

	want := []string{"add", "list", "list", "show", "edit", "log", "growth", "photo", "remind", "unremind", "delete"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, exec.calls[i], want[i])
		}
	}
}

func TestRunREPL_ReportsCommandErrors(t *testing.T) {
	origPrint := printlnFn
	var printed []string
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{fail: map[string]error{"list": errors.New("db is gone")}}
	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader("list\nquit\n")))

	found := false
	for _, s := range printed {
		if strings.Contains(s, "db is gone") {
			found = true
		}
	}
	if !found {
		t.Fatalf("error not reported to user: %v", printed)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	// no exit command; the loop must stop at end of input
	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader("list\n")))

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("calls: %v", exec.calls)
	}
}
