package convert_service

import "errors"

var (
	ErrContextDone = errors.New("отмена контекста")

	ErrOutcomeSave = errors.New("не удалось сохранить результат")
	ErrOutcomeGet  = errors.New("не удалось получить результат")

	ErrPanic = errors.New("паника при обработке источника")
)
