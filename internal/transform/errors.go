package transform

import "errors"

var ErrEncode = errors.New("не удалось закодировать изображение")
