package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Edit   func(EditArgs) (Result, error)
	Done   func(RowArgs, bool) (Result, error)
	Delete func(RowArgs) (Result, error)
	Search func(SearchArgs) (Result, error)
	Clear  func() (Result, error)
	Theme  func(ThemeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDone, TypeUndone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Row, cmd.Type == TypeDone)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Row)
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Search(*cmd.Search)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
