package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mnemo/clipboard"
	"mnemo/config"
	"mnemo/dispatch"
	"mnemo/form"
	"mnemo/log"
)

// scriptCmd is one parsed line of --test input:
//
//	DOWN <key> [mods]   key press, mods like alt or ctrl+shift
//	UP <key> [mods]     key release
//	PRESS <key> [mods]  press then release
//	TYPE <text>         append text to the focused field
//	RESET               host lost focus
//	QUIT
type scriptCmd struct {
	op     string
	events []dispatch.Event
	text   string
}

func parseMods(s string) (dispatch.Modifiers, error) {
	var mods dispatch.Modifiers
	if s == "" {
		return 0, nil
	}
	for _, name := range strings.Split(s, "+") {
		m, ok := dispatch.ModifierByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
		mods |= m
	}
	return mods, nil
}

func parseScriptLine(line string) (scriptCmd, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return scriptCmd{}, nil
	}
	op := strings.ToUpper(fields[0])
	switch op {
	case "QUIT", "RESET":
		return scriptCmd{op: op}, nil
	case "TYPE":
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		return scriptCmd{op: op, text: text}, nil
	case "DOWN", "UP", "PRESS":
	default:
		return scriptCmd{}, fmt.Errorf("unknown command %q", fields[0])
	}

	if len(fields) < 2 || len(fields) > 3 {
		return scriptCmd{}, fmt.Errorf("usage: %s <key> [mods]", op)
	}
	var mods dispatch.Modifiers
	if len(fields) == 3 {
		var err error
		if mods, err = parseMods(fields[2]); err != nil {
			return scriptCmd{}, err
		}
	}
	key := fields[1]
	down := dispatch.Event{Key: strings.ToLower(key), Label: key, Down: true, Mods: mods}
	up := dispatch.Event{Key: strings.ToLower(key), Label: key, Mods: mods}

	cmd := scriptCmd{op: op}
	switch op {
	case "DOWN":
		cmd.events = []dispatch.Event{down}
	case "UP":
		cmd.events = []dispatch.Event{up}
	case "PRESS":
		cmd.events = []dispatch.Event{down, up}
	}
	return cmd, nil
}

// scriptSink prints what a real host would do on screen.
type scriptSink struct {
	out     io.Writer
	fields  []form.Field
	values  []string
	focused int
}

func (s *scriptSink) FieldFocused(i int) {
	s.focused = i
	fmt.Fprintf(s.out, "focus %s\n", s.fields[i].Text)
}

func (s *scriptSink) FieldValues() []string { return s.values }

func (s *scriptSink) Submitted(pairs []clipboard.Pair, err error) {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Label + "=" + p.Value
	}
	fmt.Fprintf(s.out, "submit %s\n", strings.Join(parts, " "))
}

// runTestMode drives a form from a line script and returns an exit code.
func runTestMode(cfg config.Config, in io.Reader, out io.Writer) int {
	sink := &scriptSink{out: out, focused: -1}
	f := form.New(cfg, sink, form.WithCopier(func([]clipboard.Pair) error { return nil }))
	defer f.Close()
	sink.fields = f.Fields
	sink.values = make([]string, len(f.Fields))

	cancel := f.Visibility.Subscribe(func(v bool) {
		if v {
			fmt.Fprintln(out, "hints on")
		} else {
			fmt.Fprintln(out, "hints off")
		}
	})
	defer cancel()

	code := 0
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd, err := parseScriptLine(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error line %d: %v\n", lineNo, err)
			log.Warnf("script line %d: %v", lineNo, err)
			code = 1
			continue
		}
		switch cmd.op {
		case "":
		case "QUIT":
			log.SessionEnd(f.Dispatched())
			return code
		case "RESET":
			f.Machine.Reset()
		case "TYPE":
			if sink.focused >= 0 && !f.Fields[sink.focused].Button {
				sink.values[sink.focused] += cmd.text
			}
		default:
			for _, ev := range cmd.events {
				f.HandleKey(ev)
			}
		}
	}
	log.SessionEnd(f.Dispatched())
	return code
}
