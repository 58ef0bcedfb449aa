// Package interactive provides the element shell of fwctl-service.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chzyer/readline"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/inspect"
	"github.com/fwaudio/fwctl-go/pkg/service"
)

const requestTimeout = 2 * time.Second

// Shell reads element commands from the terminal.
type Shell struct {
	svc       *service.Service
	save      func() error
	formatter *inspect.Formatter
	rl        *readline.Instance
	out       io.Writer
	watch     atomic.Bool
}

// New creates the shell. It owns the terminal until Close.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fwctl> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{formatter: inspect.NewFormatter(), rl: rl, out: rl.Stdout()}, nil
}

// Attach binds the shell to a running service. save persists the unit
// state on request and may be nil.
func (s *Shell) Attach(svc *service.Service, save func() error) {
	s.svc = svc
	s.save = save
	svc.OnEvent(s.handleEvent)
}

// Stdout returns a writer that coordinates with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that coordinates with the prompt. Use it for log
// output.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Close releases the terminal.
func (s *Shell) Close() error {
	return s.rl.Close()
}

// Run reads commands until quit, EOF or ctx is done. cancel is called when
// the user leaves the shell.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !s.Exec(ctx, parts[0], parts[1:]) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command. It returns false when the shell should exit.
func (s *Shell) Exec(ctx context.Context, cmd string, args []string) bool {
	switch strings.ToLower(cmd) {
	case "help", "?":
		s.printHelp()
	case "list", "ls", "l":
		s.cmdList(args)
	case "info", "i":
		s.cmdInfo(args)
	case "get", "g":
		s.cmdGet(ctx, args)
	case "set", "s":
		s.cmdSet(ctx, args)
	case "watch", "w":
		s.cmdWatch(args)
	case "save":
		s.cmdSave()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
fwctl Commands:
  list [filter]        - List elements, optionally those containing filter
  info <elem>          - Show element details
  get <elem>           - Read an element
  set <elem> <val...>  - Write an element (one value sets every member)
  watch [on|off]       - Print element changes as they happen
  save                 - Save a snapshot of the unit state
  help                 - Show this help
  quit                 - Exit

Elements are named as "name", "name[index]" or "mixer:name".
Volumes accept "mute" where the element has a mute value.`)
}

func (s *Shell) cmdList(args []string) {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}
	for _, info := range s.svc.Elements() {
		if filter != "" && !strings.Contains(info.ID.Name, filter) {
			continue
		}
		fmt.Fprintln(s.out, "  "+s.formatter.FormatInfo(info))
	}
}

func (s *Shell) resolve(args []string, usage string) (ctl.ElemInfo, bool) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Usage: %s\n", usage)
		return ctl.ElemInfo{}, false
	}
	ref, err := inspect.ParseRef(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return ctl.ElemInfo{}, false
	}
	info, err := ref.Resolve(s.svc)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return ctl.ElemInfo{}, false
	}
	return info, true
}

func (s *Shell) cmdInfo(args []string) {
	info, ok := s.resolve(args, "info <elem>")
	if !ok {
		return
	}
	fmt.Fprintln(s.out, s.formatter.FormatInfo(info))
}

func (s *Shell) cmdGet(ctx context.Context, args []string) {
	info, ok := s.resolve(args, "get <elem>")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	v, err := s.svc.Get(ctx, info.ID)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, s.formatter.FormatElement(info, v))
}

func (s *Shell) cmdSet(ctx context.Context, args []string) {
	info, ok := s.resolve(args, "set <elem> <val...>")
	if !ok {
		return
	}
	v, err := inspect.ParseValue(info, args[1:])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := s.svc.Set(ctx, info.ID, v); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, s.formatter.FormatElement(info, v))
}

func (s *Shell) cmdWatch(args []string) {
	on := !s.watch.Load()
	if len(args) > 0 {
		on = strings.EqualFold(args[0], "on")
	}
	s.watch.Store(on)
	if on {
		fmt.Fprintln(s.out, "Watching element changes")
	} else {
		fmt.Fprintln(s.out, "Stopped watching")
	}
}

func (s *Shell) cmdSave() {
	if s.save == nil {
		fmt.Fprintln(s.out, "Snapshots are not configured")
		return
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Snapshot saved")
}

func (s *Shell) handleEvent(e service.Event) {
	if !s.watch.Load() {
		return
	}
	switch e.Type {
	case service.EventValueChanged:
		info, err := s.svc.Info(e.Elem)
		if err != nil {
			return
		}
		fmt.Fprintf(s.out, "[%s] %s\n", e.Source, s.formatter.FormatElement(info, e.Value))
	default:
		fmt.Fprintf(s.out, "[%s] %v\n", e.Type, e.Error)
	}
}
