package db

import "errors"

// ErrNotFound возвращается всеми операциями пакета, когда запрошенная запись
// отсутствует. Обработчики API транслируют её в 404.
var ErrNotFound = errors.New("запись не найдена")
