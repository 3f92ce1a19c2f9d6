package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	AddPlant(ctx context.Context) error
	ListPlants(ctx context.Context) error
	ShowPlant(ctx context.Context) error
	EditPlant(ctx context.Context) error
	DeletePlant(ctx context.Context) error
	LogCare(ctx context.Context) error
	RecordGrowth(ctx context.Context) error
	AttachPhoto(ctx context.Context) error
	SetReminder(ctx context.Context) error
	CancelReminder(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the plantkeeper CLI.
//
// It reads a line, parses the first token as the command, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Commands:
//
//	help           - show available commands
//	l | list       - list plants
//	add            - register a plant
//	show           - show one plant with logs, growth, photos and reminder
//	edit           - update plant fields
//	delete         - delete a plant (photos go with it)
//	log            - record a care action
//	growth         - record a growth measurement
//	photo          - attach a photo
//	remind         - set a watering reminder
//	unremind       - cancel a watering reminder
//	exit | quit    - leave the program
//
// Any errors returned by command handlers are reported as a single line;
// handlers keep their own state consistent. This keeps the REPL loop
// resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printlnFn("pk> ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, add, show, edit, delete, log, growth, photo, remind, unremind, exit")

		case "l", "list":
			cmdErr = a.ListPlants(ctx)

		case "add":
			cmdErr = a.AddPlant(ctx)

		case "show":
			cmdErr = a.ShowPlant(ctx)

		case "edit":
			cmdErr = a.EditPlant(ctx)

		case "delete":
			cmdErr = a.DeletePlant(ctx)

		case "log":
			cmdErr = a.LogCare(ctx)

		case "growth":
			cmdErr = a.RecordGrowth(ctx)

		case "photo":
			cmdErr = a.AttachPhoto(ctx)

		case "remind":
			cmdErr = a.SetReminder(ctx)

		case "unremind":
			cmdErr = a.CancelReminder(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
