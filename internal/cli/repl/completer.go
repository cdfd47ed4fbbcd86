package repl

import "strings"

// Completer suggests command names for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the server command set.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"get", "set",
			"hget", "hset", "hgetall", "hmget",
			"sadd", "sismember",
			"echo",
		},
	}
}

// Complete returns the commands matching the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Commands returns the full command list.
func (c *Completer) Commands() []string {
	out := make([]string, len(c.commands))
	copy(out, c.commands)
	return out
}
