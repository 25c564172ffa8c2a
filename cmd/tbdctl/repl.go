package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/jpmec/tbd"
	"github.com/jpmec/tbd/internal/statsprint"
	"github.com/jpmec/tbd/internal/tbdjson"
)

// repl recovers the insert/select/update/delete/stats/dump/collect/quit
// grammar the reference implementation's tbds.c dispatches with strncmp,
// using liner for line editing and history instead of a raw stdin scan.
type repl struct {
	arena   *tbd.Arena
	line    *liner.State
	out     io.Writer
	prompt  string
	history []string
}

func newREPL(a *tbd.Arena, out io.Writer) *repl {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return &repl{arena: a, line: l, out: out, prompt: "tbd> "}
}

func (r *repl) close() {
	r.line.Close()
}

// run reads commands until EOF, Ctrl-D, or a quit/exit command.
func (r *repl) run() error {
	defer r.close()
	for {
		text, err := r.line.Prompt(r.prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		r.line.AppendHistory(text)
		if r.dispatch(text) {
			return nil
		}
	}
}

// dispatch runs a single command line and reports whether the REPL should
// exit.
func (r *repl) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "insert":
		r.cmdInsert(args)
	case "select":
		r.cmdSelect(args)
	case "update":
		r.cmdUpdate(args)
	case "delete":
		r.cmdDelete(args)
	case "stats":
		statsprint.Print(r.out, r.arena.StatsGet())
	case "dump":
		r.cmdDump(args)
	case "collect":
		r.cmdCollect(args)
	case "clean":
		fmt.Fprintf(r.out, "reclaimed %d bytes\n", r.arena.Clean())
	default:
		fmt.Fprintf(r.out, "unknown command %q\n", cmd)
	}
	return false
}

// printCode echoes a Code the way the REPL grammar promises: "Ok" on
// success, or "error: <code>" with the code's numeric value on failure.
// This deliberately does not use Code.String()'s lowercase descriptive
// text (e.g. "key not found"), which is for logs and error wrapping, not
// for the REPL transcript.
func (r *repl) printCode(code tbd.Code) {
	if code == tbd.NoError {
		fmt.Fprintln(r.out, "Ok")
		return
	}
	fmt.Fprintf(r.out, "error: %d\n", code)
}

func (r *repl) cmdInsert(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "usage: insert <key> <value>")
		return
	}
	key, value := args[0], strings.Join(args[1:], " ")
	r.printCode(r.arena.Create(key, []byte(value)))
}

func (r *repl) cmdSelect(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: select <key>")
		return
	}
	key := args[0]
	if !r.arena.Exists(key) {
		r.printCode(tbd.KeyNotFound)
		return
	}
	out := make([]byte, r.arena.ReadSize(key))
	if code := r.arena.Read(key, out); code != tbd.NoError {
		r.printCode(code)
		return
	}
	fmt.Fprintf(r.out, "%s\n", out)
}

func (r *repl) cmdUpdate(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "usage: update <key> <value>")
		return
	}
	key, value := args[0], strings.Join(args[1:], " ")
	r.printCode(r.arena.Update(key, []byte(value)))
}

func (r *repl) cmdDelete(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: delete <key>")
		return
	}
	r.printCode(r.arena.Delete(args[0]))
}

func (r *repl) cmdDump(args []string) {
	keyFmt, valueFmt := tbdjson.KeyRaw, tbdjson.ValueRaw
	if len(args) > 0 && args[0] == "hex" {
		keyFmt, valueFmt = tbdjson.KeyHexQuoted, tbdjson.ValueHexQuoted
	}
	out, err := tbdjson.Dump(r.arena, keyFmt, valueFmt)
	if err != nil {
		fmt.Fprintf(r.out, "dump error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, string(out))
}

func (r *repl) cmdCollect(args []string) {
	limit := r.arena.GarbageSize()
	if len(args) == 1 {
		fmt.Sscanf(args[0], "%d", &limit)
	}
	fmt.Fprintf(r.out, "reclaimed %d bytes\n", r.arena.Collect(limit))
}

// readScript runs commands from a non-interactive reader (used by
// pipelines and tests), one per line, without invoking liner at all.
func readScript(a *tbd.Arena, in io.Reader, out io.Writer) error {
	r := &repl{arena: a, out: out}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if r.dispatch(line) {
			return nil
		}
	}
	return scanner.Err()
}
