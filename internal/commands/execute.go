package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Done    func(DoneArgs) (Result, error)
	Due     func(DueArgs) (Result, error)
	Details func(DetailsArgs) (Result, error)
	Move    func(MoveArgs) (Result, error)
	Delete  func(DeleteArgs) (Result, error)
	Clear   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeDue:
		if handlers.Due == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "due handler not configured"}
		}
		return handlers.Due(*cmd.Due)
	case TypeDetails:
		if handlers.Details == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "details handler not configured"}
		}
		return handlers.Details(*cmd.Details)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "move handler not configured"}
		}
		return handlers.Move(*cmd.Move)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
