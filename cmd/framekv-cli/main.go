package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/framekv-go/internal/cli/output"
	"github.com/yndnr/framekv-go/internal/cli/repl"
	"github.com/yndnr/framekv-go/internal/client"
	"github.com/yndnr/framekv-go/internal/infra/buildinfo"
	"github.com/yndnr/framekv-go/pkg/resp"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "framekv-cli",
		Usage:   "framekv command-line client",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "framekv server address",
				EnvVars: []string{"FRAMEKV_SERVER"},
				Value:   "localhost:7379",
			},
		},
		Commands: []*cli.Command{
			simpleCommand("get", "Get the value of a key", "KEY", 1),
			simpleCommand("set", "Set a key to a value", "KEY VALUE", 2),
			simpleCommand("hget", "Get a hash field", "KEY FIELD", 2),
			simpleCommand("hset", "Set a hash field", "KEY FIELD VALUE", 3),
			simpleCommand("hgetall", "Get all fields of a hash", "KEY", 1),
			hmgetCommand(),
			simpleCommand("sadd", "Add a member to a set", "KEY MEMBER", 2),
			simpleCommand("sismember", "Test set membership", "KEY MEMBER", 2),
			simpleCommand("echo", "Echo a message back", "MESSAGE", 1),
			replCommand(),
		},
	}
}

// simpleCommand builds a subcommand with a fixed argument count that
// forwards its arguments verbatim.
func simpleCommand(name, usage, argsUsage string, arity int) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: argsUsage,
		Action: func(c *cli.Context) error {
			if c.NArg() != arity {
				return fmt.Errorf("%s takes %d argument(s), got %d", name, arity, c.NArg())
			}
			return execute(c, name, c.Args().Slice()...)
		},
	}
}

func hmgetCommand() *cli.Command {
	return &cli.Command{
		Name:      "hmget",
		Usage:     "Get multiple hash fields",
		ArgsUsage: "KEY FIELD [FIELD...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("hmget takes a key and at least one field, got %d argument(s)", c.NArg())
			}
			return execute(c, "hmget", c.Args().Slice()...)
		},
	}
}

func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Action: func(c *cli.Context) error {
			cl, err := client.Dial(c.String("server"))
			if err != nil {
				return err
			}
			defer cl.Close()
			return repl.New(cl).Run()
		},
	}
}

// execute dials the server, runs one command, and prints the reply.
func execute(c *cli.Context, name string, args ...string) error {
	cl, err := client.Dial(c.String("server"))
	if err != nil {
		return err
	}
	defer cl.Close()

	reply, err := cl.Do(name, args...)
	if err != nil {
		return err
	}

	if e, ok := reply.(resp.SimpleError); ok {
		return fmt.Errorf("%s", string(e))
	}
	fmt.Println(output.Frame(reply))
	return nil
}
