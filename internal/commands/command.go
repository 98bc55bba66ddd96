package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeDone    Type = "done"
	TypeDue     Type = "due"
	TypeDetails Type = "details"
	TypeMove    Type = "move"
	TypeDelete  Type = "delete"
	TypeClear   Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type DoneArgs struct {
	Index int
}

type DueArgs struct {
	Index int
	When  string // free-form timestamp, or "clear" to drop the due time
}

type DetailsArgs struct {
	Index int
	Text  string
}

type MoveArgs struct {
	From int
	To   int
}

type DeleteArgs struct {
	Index int
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Done    *DoneArgs
	Due     *DueArgs
	Details *DetailsArgs
	Move    *MoveArgs
	Delete  *DeleteArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeDetails:
		return parseDetails(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeClear:
		return parseClear(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{
		Type: TypeAdd,
		Raw:  raw,
		Add:  &AddArgs{Text: strings.Join(args, " ")},
	}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	idx, err := parseIndex(args, "done")
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Index: idx}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: due <index> <time|clear>"}
	}
	idx, err := parseIndex(args[:1], "due")
	if err != nil {
		return Command{}, err
	}
	return Command{
		Type: TypeDue,
		Raw:  raw,
		Due:  &DueArgs{Index: idx, When: strings.Join(args[1:], " ")},
	}, nil
}

func parseDetails(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: details <index> <text>"}
	}
	idx, err := parseIndex(args[:1], "details")
	if err != nil {
		return Command{}, err
	}
	return Command{
		Type:    TypeDetails,
		Raw:     raw,
		Details: &DetailsArgs{Index: idx, Text: strings.Join(args[1:], " ")},
	}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: move <from> <to>"}
	}
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("move: invalid index %q", args[0])}
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("move: invalid index %q", args[1])}
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	idx, err := parseIndex(args, "delete")
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Index: idx}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 || strings.ToLower(args[0]) != "all" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: clear all"}
	}
	return Command{Type: TypeClear, Raw: raw}, nil
}

func parseIndex(args []string, name string) (int, error) {
	if len(args) != 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("usage: %s <index>", name)}
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: invalid index %q", name, args[0])}
	}
	return idx, nil
}
