package inmem

import "errors"

var (
	ErrOutcomeNotFound = errors.New("результат не найден")
	ErrOutcomeNil      = errors.New("результат не может быть nil")
	ErrOutcomeIDEmpty  = errors.New("ID результата не может быть пустым")
	ErrContextDone     = errors.New("отмена контекста")
)
