// Package repl provides the interactive mode of framekv-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/framekv-go/internal/cli/output"
	"github.com/yndnr/framekv-go/pkg/resp"
)

// Executor runs one server command and returns the reply frame.
// Satisfied by *client.Client.
type Executor interface {
	Do(name string, args ...string) (resp.Frame, error)
}

// REPL reads commands from input, executes them against a server, and
// prints replies to output.
type REPL struct {
	input     io.Reader
	output    io.Writer
	exec      Executor
	completer *Completer
	history   *History
}

// New creates a REPL bound to the given executor, reading from stdin
// and writing to stdout.
func New(exec Executor) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		exec:      exec,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
}

// NewWithIO creates a REPL with explicit input and output, for tests.
func NewWithIO(exec Executor, in io.Reader, out io.Writer) *REPL {
	r := New(exec)
	r.input = in
	r.output = out
	return r
}

// Run loops until EOF or an exit command. Command errors are printed
// and the loop continues.
func (r *REPL) Run() error {
	r.history.Load()
	defer r.history.Save()

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, "framekv> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		switch line {
		case "exit", "quit":
			return nil
		case "help":
			r.printHelp()
			continue
		}

		r.execute(line)
	}
}

func (r *REPL) execute(line string) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	reply, err := r.exec.Do(name, args...)
	if err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(r.output, output.Frame(reply))
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands:")
	for _, c := range r.completer.Commands() {
		fmt.Fprintf(r.output, "  %s\n", c)
	}
	fmt.Fprintln(r.output, "  help")
	fmt.Fprintln(r.output, "  exit")
}
