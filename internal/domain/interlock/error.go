// Package interlock реализует машину состояний ошибок и блокировок ячейки:
// ошибки робота (R-), безопасности (S-) и аварийные сигналы (A-).
package interlock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownCode - код не зарегистрирован ни в одном контроллере. Ошибка конфигурации.
	ErrUnknownCode = errors.New("unknown error code")
	// ErrUnknownDomain - префикс кода не относится ни к одному контроллеру.
	ErrUnknownDomain = errors.New("unknown error domain")
	// ErrIllegalTransition - запрошенный переход не чередует активное и неактивное состояния.
	ErrIllegalTransition = errors.New("illegal error transition")
	// ErrUnknownStatus - имя статуса не распознано.
	ErrUnknownStatus = errors.New("unknown error status")
)

// Status - статус вхождения ошибки. Числовые значения стабильны.
type Status int

const (
	Raised Status = iota
	Unraised
	Reset
)

func (s Status) String() string {
	switch s {
	case Raised:
		return "Raised"
	case Unraised:
		return "Unraised"
	case Reset:
		return "Reset"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus принимает имя статуса без учета регистра.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raised", "raise":
		return Raised, nil
	case "unraised", "unraise":
		return Unraised, nil
	case "reset":
		return Reset, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

type Occurrence struct {
	Status    Status
	Timestamp time.Time
}

// Error - зарегистрированная ошибка с историей вхождений.
type Error struct {
	ID          uuid.UUID
	Code        string
	Message     string
	Active      bool
	AutoUnraise bool
	Occurrences []Occurrence
}

func newError(def CodeDefinition) *Error {
	return &Error{
		ID:          uuid.New(),
		Code:        def.Code,
		Message:     def.Message,
		AutoUnraise: def.AutoUnraise,
	}
}

// LastStatus возвращает статус последнего вхождения. Ошибка без вхождений считается снятой.
func (e *Error) LastStatus() Status {
	if len(e.Occurrences) == 0 {
		return Unraised
	}
	return e.Occurrences[len(e.Occurrences)-1].Status
}

// Pending - ошибка поднята или снята, но еще не сброшена оператором.
func (e *Error) Pending() bool {
	if len(e.Occurrences) == 0 {
		return false
	}
	return e.LastStatus() != Reset
}

func (e *Error) record(status Status, at time.Time) {
	e.Occurrences = append(e.Occurrences, Occurrence{Status: status, Timestamp: at})
	e.Active = status == Raised
}

// Clone возвращает копию ошибки для внешних потребителей.
func (e *Error) Clone() Error {
	c := *e
	c.Occurrences = append([]Occurrence(nil), e.Occurrences...)
	return c
}
