package interlock

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Requester направляет запросы по префиксу кода в контроллер и отвечает на сводные запросы,
// которыми блокируется запуск программы.
//
// Коды вида "S-1001-N" - отдельные экземпляры (например, кнопки аварийного останова),
// сворачиваются в сводный код "S-1001", если он зарегистрирован.
type Requester struct {
	controllers map[Domain]*Controller
	now         func() time.Time

	units  map[string][]string // сводный код -> коды экземпляров
	parent map[string]string
}

type RequesterOption func(*Requester)

// WithClock задает источник времени вхождений.
func WithClock(now func() time.Time) RequesterOption {
	return func(r *Requester) { r.now = now }
}

func NewRequester(robot, security, alarm *Controller, opts ...RequesterOption) *Requester {
	r := &Requester{
		controllers: map[Domain]*Controller{
			DomainRobot:    robot,
			DomainSecurity: security,
			DomainAlarm:    alarm,
		},
		now:    time.Now,
		units:  make(map[string][]string),
		parent: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, c := range r.controllers {
		for _, code := range c.Codes() {
			i := strings.LastIndex(code, "-")
			if strings.Count(code, "-") < 2 || i < 0 {
				continue
			}
			agg := code[:i]
			if c.Has(agg) {
				r.units[agg] = append(r.units[agg], code)
				r.parent[code] = agg
			}
		}
	}
	for _, u := range r.units {
		sort.Strings(u)
	}
	return r
}

// NewRequesterFromTable строит три контроллера по таблице кодов.
func NewRequesterFromTable(t *CodeTable, opts ...RequesterOption) (*Requester, error) {
	var cs [3]*Controller
	for i, d := range Domains {
		c, err := NewController(d, t.Definitions(d))
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return NewRequester(cs[0], cs[1], cs[2], opts...), nil
}

func (r *Requester) Controller(d Domain) *Controller { return r.controllers[d] }

func (r *Requester) controllerFor(code string) (*Controller, error) {
	d, err := DomainOf(code)
	if err != nil {
		return nil, err
	}
	return r.controllers[d], nil
}

// OnEvent подписывает cb на все принятые переходы всех контроллеров.
func (r *Requester) OnEvent(cb Callback) {
	for _, d := range Domains {
		c := r.controllers[d]
		c.OnRaised(cb)
		c.OnUnraised(cb)
		c.OnReset(cb)
	}
}

// Validate проверяет, что все коды зарегистрированы. Используется при старте для привязок датчиков.
func (r *Requester) Validate(codes ...string) error {
	for _, code := range codes {
		c, err := r.controllerFor(code)
		if err != nil {
			return err
		}
		if !c.Has(code) {
			return fmt.Errorf("%w: %s", ErrUnknownCode, code)
		}
	}
	return nil
}

func (r *Requester) RaiseError(code string) (bool, error)   { return r.Handle(code, "", Raised) }
func (r *Requester) UnraiseError(code string) (bool, error) { return r.Handle(code, "", Unraised) }
func (r *Requester) ResetError(code string) (bool, error)   { return r.Handle(code, "", Reset) }

// Handle применяет статус к коду и сворачивает экземпляры в сводный код.
func (r *Requester) Handle(code, message string, status Status) (bool, error) {
	c, err := r.controllerFor(code)
	if err != nil {
		return false, err
	}
	at := r.now()

	if units, ok := r.units[code]; ok && status == Reset {
		for _, u := range units {
			if e := c.errors[u]; e.Active {
				return false, fmt.Errorf("%w: cannot reset %s while %s is raised", ErrIllegalTransition, code, u)
			}
		}
		handled, err := c.HandleError(code, message, at, Reset)
		if err != nil {
			return handled, err
		}
		for _, u := range units {
			if c.errors[u].Pending() {
				if _, err := c.HandleError(u, "", at, Reset); err != nil {
					return handled, err
				}
			}
		}
		return handled, nil
	}

	agg, isUnit := r.parent[code]
	if isUnit && status == Reset && c.errors[code].Active {
		return false, fmt.Errorf("%w: cannot reset %s while it is raised", ErrIllegalTransition, code)
	}

	handled, err := c.HandleError(code, message, at, status)
	if err != nil || !handled {
		return handled, err
	}

	if !isUnit {
		return handled, nil
	}
	return handled, r.rollUp(c, agg, status, at)
}

func (r *Requester) rollUp(c *Controller, agg string, status Status, at time.Time) error {
	var err error
	switch status {
	case Raised:
		_, err = c.HandleError(agg, "", at, Raised)
	case Unraised:
		for _, u := range r.units[agg] {
			if c.errors[u].Active {
				return nil
			}
		}
		_, err = c.HandleError(agg, "", at, Unraised)
	case Reset:
		for _, u := range r.units[agg] {
			if c.errors[u].Pending() {
				return nil
			}
		}
		if c.errors[agg].Active {
			return nil
		}
		_, err = c.HandleError(agg, "", at, Reset)
	}
	if status != Raised && errors.Is(err, ErrIllegalTransition) {
		return nil
	}
	return err
}

// ResetAll сбрасывает все снятые, но не сброшенные ошибки. Поднятые ошибки не трогает.
// Возвращает сброшенные коды.
func (r *Requester) ResetAll() ([]string, error) {
	var reset []string
	for _, d := range Domains {
		c := r.controllers[d]
		for _, code := range c.order {
			if _, isUnit := r.parent[code]; isUnit {
				continue
			}
			if c.errors[code].LastStatus() != Unraised || !c.errors[code].Pending() {
				continue
			}
			handled, err := r.Handle(code, "", Reset)
			if errors.Is(err, ErrIllegalTransition) {
				continue
			}
			if err != nil {
				return reset, err
			}
			if handled {
				reset = append(reset, code)
			}
		}
		for _, code := range c.order {
			if _, isUnit := r.parent[code]; !isUnit || c.errors[code].LastStatus() != Unraised || !c.errors[code].Pending() {
				continue
			}
			if _, err := r.Handle(code, "", Reset); err != nil {
				return reset, err
			}
			reset = append(reset, code)
		}
	}
	return reset, nil
}

// HasAnyErrors - есть ли поднятая ошибка в любом контроллере.
func (r *Requester) HasAnyErrors() bool {
	for _, c := range r.controllers {
		if c.AnyActive() {
			return true
		}
	}
	return false
}

// HasAllErrorsReset проверяет только контроллер безопасности.
// Ошибки робота учитываются в HasAlarmErrorsReset.
func (r *Requester) HasAllErrorsReset() bool {
	return r.controllers[DomainSecurity].AllReset()
}

// HasAlarmErrorsReset проверяет аварийные ошибки и ошибки робота.
func (r *Requester) HasAlarmErrorsReset() bool {
	return r.controllers[DomainAlarm].AllReset() && r.controllers[DomainRobot].AllReset()
}

// CanRun - сводное условие запуска и продолжения программы (без учета кнопки разрешения).
func (r *Requester) CanRun() bool {
	return !r.HasAnyErrors() && r.HasAllErrorsReset() && r.HasAlarmErrorsReset()
}

// Errors возвращает копии ошибок всех контроллеров.
func (r *Requester) Errors() []Error {
	var out []Error
	for _, d := range Domains {
		out = append(out, r.controllers[d].Errors()...)
	}
	return out
}

func (r *Requester) Error(code string) (Error, error) {
	c, err := r.controllerFor(code)
	if err != nil {
		return Error{}, err
	}
	e, ok := c.Error(code)
	if !ok {
		return Error{}, fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}
	return e, nil
}
