package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Operator is the server surface the admin console drives: a small set of
// operations distinct from in-game chat commands, which stay out of scope.
type Operator interface {
	ListPlayers() []string
	KickPlayer(name string) bool
	Broadcast(message string)
	Stop()
}

// Console is a raw-mode line editor over stdin/stdout offering a handful of
// ':'-prefixed operator commands: stop, list, kick <player>, say <message>.
type Console struct {
	op Operator

	commandMode bool
	commandBuf  []rune
}

func New(op Operator) *Console {
	return &Console{op: op}
}

// Run drives the console until ctx is cancelled or stdin closes. It must run
// on its own goroutine; it blocks on stdin reads.
func (c *Console) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Print("\r\n")
	}()

	fmt.Print("[console] type ':' then a command (stop, list, kick <player>, say <message>)\r\n")

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		c.handleByte(b)
	}
}

func (c *Console) handleByte(b byte) {
	if c.commandMode {
		c.handleCommandByte(b)
		return
	}
	if b == ':' {
		c.commandMode = true
		c.commandBuf = c.commandBuf[:0]
		fmt.Print("\r\n:")
	}
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		fmt.Print("\r\n")
		if cmd != "" {
			c.execute(cmd)
		}
	case 27: // Esc cancels
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		fmt.Print("\r\n[console] cancelled\r\n")
	case 8, 127: // Backspace
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		fmt.Printf("\r:%s \r:%s", string(c.commandBuf), string(c.commandBuf))
	default:
		if b < 32 || b > 126 {
			return
		}
		c.commandBuf = append(c.commandBuf, rune(b))
		fmt.Printf("\r:%s", string(c.commandBuf))
	}
}

func (c *Console) execute(cmd string) {
	parts := strings.Fields(cmd)
	switch parts[0] {
	case "stop":
		fmt.Print("[console] stopping\r\n")
		c.op.Stop()
	case "list":
		players := c.op.ListPlayers()
		fmt.Printf("[console] %d player(s): %s\r\n", len(players), strings.Join(players, ", "))
	case "kick":
		if len(parts) != 2 {
			fmt.Print("[console] usage: :kick <player>\r\n")
			return
		}
		if c.op.KickPlayer(parts[1]) {
			fmt.Printf("[console] kicked %s\r\n", parts[1])
		} else {
			fmt.Printf("[console] no such player: %s\r\n", parts[1])
		}
	case "say":
		if len(parts) < 2 {
			fmt.Print("[console] usage: :say <message>\r\n")
			return
		}
		message := strings.TrimPrefix(cmd, "say ")
		c.op.Broadcast(message)
	default:
		fmt.Printf("[console] unknown command: %s\r\n", parts[0])
	}
}
