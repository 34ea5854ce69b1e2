package commands

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Operation int

var (
	ErrEmptyCommand   = errors.New("command is empty")
	ErrInvalidCommand = errors.New("invalid command")
)

const (
	DEFAULT Operation = iota
	// Start mining, infinite loop until explicit stop.
	START
	// Stop mining.
	STOP
	// Mine exactly one block.
	MINE
	// Show the last blocks of the chain.
	SHOW
	// Print the balance of an address, the miner's when no address is given.
	BALANCE
	// Print the index of the last block.
	HEIGHT
	// Validate the whole chain.
	VALIDATE
	// Send funds from the miner's wallet to an address.
	TRANSFER
)

// A command contains a operation and many arguments.
type Command struct {
	Op   Operation
	Args []string
}

func (c Command) IsValid() bool {
	switch c.Op {
	case START, STOP, MINE, HEIGHT, VALIDATE:
		return len(c.Args) == 0
	case BALANCE:
		return len(c.Args) <= 1
	case SHOW:
		if len(c.Args) != 1 {
			return false
		}
		// depth must be a non negative number.
		d, err := strconv.Atoi(c.Args[0])
		return err == nil && d >= 0
	case TRANSFER:
		if len(c.Args) != 2 {
			return false
		}
		v, err := strconv.ParseInt(c.Args[1], 10, 64)
		return err == nil && v > 0
	default:
		return false
	}
}

// Depth of a SHOW command.
func (c Command) Depth() int {
	d, _ := strconv.Atoi(c.Args[0])
	return d
}

// Amount of a TRANSFER command.
func (c Command) Amount() int64 {
	v, _ := strconv.ParseInt(c.Args[1], 10, 64)
	return v
}

// From string, create a command.
func CreateCommand(s string) (Command, error) {
	// split command by whitespace.
	ss := strings.Fields(s)
	if len(ss) == 0 {
		return Command{}, ErrEmptyCommand
	}
	cmd := Command{}
	switch strings.ToLower(ss[0]) {
	case "start":
		cmd.Op = START
	case "stop":
		cmd.Op = STOP
	case "mine":
		cmd.Op = MINE
	case "show":
		cmd.Op = SHOW
	case "balance":
		cmd.Op = BALANCE
	case "height":
		cmd.Op = HEIGHT
	case "validate":
		cmd.Op = VALIDATE
	case "transfer":
		cmd.Op = TRANSFER
	}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return Command{}, errors.Wrapf(ErrInvalidCommand, "%q", s)
	}
	return cmd, nil
}

// Create a brand new command with default operation.
func NewDefaultCommand() Command {
	return Command{
		Op: DEFAULT,
	}
}

func (c Command) IsDefault() bool {
	return c.Op == DEFAULT
}
