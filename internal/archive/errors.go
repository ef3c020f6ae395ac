package archive

import "errors"

var (
	ErrContextDone = errors.New("отмена контекста")

	ErrClassification = errors.New("не удалось определить тип источника")
	ErrUnsupported    = errors.New("формат не поддерживается")
	ErrDecode         = errors.New("не удалось прочитать исходный архив")
	ErrTransform      = errors.New("не удалось преобразовать файл")
	ErrWrite          = errors.New("не удалось записать архив")
	ErrRelocation     = errors.New("не удалось переместить исходный файл")

	ErrUnsafePath   = errors.New("небезопасный путь в архиве")
	ErrTargetExists = errors.New("файл назначения уже существует")
	ErrWriterClosed = errors.New("архив уже закрыт")
)
