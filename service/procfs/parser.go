// Package procfs exposes the scheduler through a proc-file style text
// interface: writes carry line commands (NEW, WAIT), reads return a
// formatted status report of the whole process table.
package procfs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"
)

// Kind discriminates parsed commands.
type Kind string

const (
	// KindNew admits a process: NEW <name> <burstMs> <priority>
	KindNew Kind = "NEW"
	// KindWait puts a process to sleep: WAIT <pid> <durationMs>
	KindWait Kind = "WAIT"
)

// Command is one parsed control line.
type Command struct {
	Kind     Kind
	Name     string
	BurstMs  int
	Priority int
	PID      int
	WaitMs   int
}

// Parse parses a single command line in the format:
// NEW <name> <burstMs> <priority> or WAIT <pid> <durationMs>
func Parse(input []byte) (*Command, error) {
	cursor := parsly.NewCursor("", input, 0)

	matched := cursor.MatchAfterOptional(whitespaceToken, wordToken)
	if matched.Code != wordToken.Code {
		return nil, cursor.NewError(wordToken)
	}
	verb := strings.ToUpper(matched.Text(cursor))

	command := &Command{}
	switch Kind(verb) {
	case KindNew:
		command.Kind = KindNew
		matched = cursor.MatchAfterOptional(whitespaceToken, wordToken)
		if matched.Code != wordToken.Code {
			return nil, cursor.NewError(wordToken)
		}
		command.Name = matched.Text(cursor)

		var err error
		if command.BurstMs, err = matchInt(cursor); err != nil {
			return nil, err
		}
		if command.Priority, err = matchInt(cursor); err != nil {
			return nil, err
		}
	case KindWait:
		command.Kind = KindWait
		var err error
		if command.PID, err = matchInt(cursor); err != nil {
			return nil, err
		}
		if command.WaitMs, err = matchInt(cursor); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported command: %v", verb)
	}

	// Only trailing whitespace may remain.
	cursor.MatchOne(whitespaceToken)
	if cursor.Pos < cursor.InputSize {
		return nil, fmt.Errorf("unexpected trailing input: %v", string(input[cursor.Pos:]))
	}
	return command, nil
}

func matchInt(cursor *parsly.Cursor) (int, error) {
	matched := cursor.MatchAfterOptional(whitespaceToken, numberToken)
	if matched.Code != numberToken.Code {
		return 0, cursor.NewError(numberToken)
	}
	value, err := strconv.Atoi(matched.Text(cursor))
	if err != nil {
		return 0, err
	}
	return value, nil
}
