package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
	TypeUndone Type = "undone"
	TypeDelete Type = "delete"
	TypeSearch Type = "search"
	TypeClear  Type = "clear"
	TypeTheme  Type = "theme"
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

// AddArgs carries the description of a task added with form defaults.
type AddArgs struct {
	Description string
}

type EditArgs struct {
	Row  int
	Text string
}

// RowArgs addresses a displayed row, 1-based.
type RowArgs struct {
	Row int
}

type SearchArgs struct {
	Query string
}

type ThemeArgs struct {
	Name string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Row    *RowArgs
	Search *SearchArgs
	Theme  *ThemeArgs
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
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone, TypeUndone, TypeDelete:
		return parseRow(input, Type(head), args)
	case TypeSearch:
		return parseSearch(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	desc := strings.TrimSpace(strings.Join(args, " "))
	if desc == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a description"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Description: desc}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a row and new text"}
	}
	row, err := parseRowNumber(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Row: row, Text: strings.Join(args[1:], " ")}}, nil
}

func parseRow(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one row number", typ)}
	}
	row, err := parseRowNumber(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Row: &RowArgs{Row: row}}, nil
}

func parseSearch(raw string, args []string) (Command, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "search requires a query"}
	}
	return Command{Type: TypeSearch, Raw: raw, Search: &SearchArgs{Query: query}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	name := ""
	if len(args) > 0 {
		name = strings.ToLower(args[0])
	}
	switch name {
	case "", "dark", "light":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", name)}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: name}}, nil
}

func parseRowNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row number: %s", s)}
	}
	return n, nil
}
