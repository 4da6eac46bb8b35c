package source

import (
	"errors"
	"fmt"
	"time"
)

// Пустая цепочка стратегий
var ErrAllMethodsFailed = errors.New("all methods failed")

// Сетевая ошибка или HTTP статус не 2xx
type TransportError struct {
	Strategy   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Strategy, e.StatusCode)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Strategy, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Стратегия не уложилась в отведенное время
type TimeoutError struct {
	Strategy string
	After    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timeout after %s", e.Strategy, e.After)
}

// Ответ получен, но по форме не подходит
type ValidationError struct {
	Strategy string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Strategy, e.Reason)
}

// Все стратегии перепробованы, ни одна не сработала.
// Разворачивается в последнюю ошибку.
type ExhaustedError struct {
	URL      string
	Attempts []error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fetch %s: all %d methods failed, last error: %v", e.URL, len(e.Attempts), e.Unwrap())
}

func (e *ExhaustedError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return ErrAllMethodsFailed
	}
	return e.Attempts[len(e.Attempts)-1]
}
