package interlock

import (
	"fmt"
	"strings"
	"time"
)

// Domain - контроллер, которому принадлежит код. Значение совпадает с префиксом кода.
type Domain string

const (
	DomainRobot    Domain = "R"
	DomainSecurity Domain = "S"
	DomainAlarm    Domain = "A"
)

// Domains перечисляет контроллеры в порядке опроса.
var Domains = []Domain{DomainRobot, DomainSecurity, DomainAlarm}

func (d Domain) String() string {
	switch d {
	case DomainRobot:
		return "robot"
	case DomainSecurity:
		return "security"
	case DomainAlarm:
		return "alarm"
	}
	return string(d)
}

// DomainOf определяет контроллер по префиксу кода ("S-1001" -> Security).
func DomainOf(code string) (Domain, error) {
	prefix, _, ok := strings.Cut(code, "-")
	if ok {
		for _, d := range Domains {
			if prefix == string(d) {
				return d, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, code)
}

// Event - принятый переход ошибки, передается подписчикам.
type Event struct {
	ErrorID   string
	Domain    Domain
	Code      string
	Message   string
	Status    Status
	Timestamp time.Time
	Counter   int
}

type Callback func(Event)

// Controller владеет ошибками одного домена и их счетчиком.
type Controller struct {
	domain  Domain
	errors  map[string]*Error
	order   []string
	counter int

	onRaised   []Callback
	onUnraised []Callback
	onReset    []Callback
}

// NewController регистрирует ошибки домена. Все коды должны иметь префикс домена.
func NewController(domain Domain, defs []CodeDefinition) (*Controller, error) {
	c := &Controller{domain: domain, errors: make(map[string]*Error, len(defs))}
	for _, def := range defs {
		d, err := DomainOf(def.Code)
		if err != nil {
			return nil, err
		}
		if d != domain {
			return nil, fmt.Errorf("code %s registered in %s controller", def.Code, domain)
		}
		if _, dup := c.errors[def.Code]; dup {
			return nil, fmt.Errorf("duplicate error code %s", def.Code)
		}
		c.errors[def.Code] = newError(def)
		c.order = append(c.order, def.Code)
	}
	return c, nil
}

func (c *Controller) Domain() Domain { return c.domain }

// Counter - число ошибок, поднятых и еще не сброшенных.
func (c *Controller) Counter() int { return c.counter }

func (c *Controller) Has(code string) bool {
	_, ok := c.errors[code]
	return ok
}

func (c *Controller) Codes() []string {
	return append([]string(nil), c.order...)
}

// Error возвращает копию ошибки по коду.
func (c *Controller) Error(code string) (Error, bool) {
	e, ok := c.errors[code]
	if !ok {
		return Error{}, false
	}
	return e.Clone(), true
}

// Errors возвращает копии ошибок в порядке регистрации.
func (c *Controller) Errors() []Error {
	out := make([]Error, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.errors[code].Clone())
	}
	return out
}

func (c *Controller) OnRaised(cb Callback)   { c.onRaised = append(c.onRaised, cb) }
func (c *Controller) OnUnraised(cb Callback) { c.onUnraised = append(c.onUnraised, cb) }
func (c *Controller) OnReset(cb Callback)    { c.onReset = append(c.onReset, cb) }

// AnyActive - есть ли поднятая ошибка.
func (c *Controller) AnyActive() bool {
	for _, e := range c.errors {
		if e.Active {
			return true
		}
	}
	return false
}

// AllReset - все ошибки сброшены или ни разу не поднимались.
func (c *Controller) AllReset() bool {
	for _, e := range c.errors {
		if e.Pending() {
			return false
		}
	}
	return true
}

// HandleError применяет запрошенный статус к ошибке code.
// Возвращает false без ошибки, если статус совпадает с текущим.
// Из сброшенного состояния допустим только Raised, из поднятого - Unraised и Reset,
// из снятого - Raised и Reset.
func (c *Controller) HandleError(code, message string, at time.Time, status Status) (bool, error) {
	e, ok := c.errors[code]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}
	if status == e.LastStatus() {
		return false, nil
	}

	// Повторное поднятие снятой, но не сброшенной ошибки не меняет счетчик.
	pending := e.Pending()
	if !pending && status != Raised {
		return false, fmt.Errorf("%w: cannot %s %s, it is not raised", ErrIllegalTransition, strings.ToLower(status.String()), code)
	}

	if message != "" {
		e.Message = message
	}
	e.record(status, at)

	switch status {
	case Raised:
		if !pending {
			c.counter++
		}
		c.fire(c.onRaised, e, status, at)
		if e.AutoUnraise {
			e.record(Unraised, at)
		}
	case Unraised:
		c.fire(c.onUnraised, e, status, at)
	case Reset:
		c.counter--
		c.fire(c.onReset, e, status, at)
	}
	return true, nil
}

func (c *Controller) fire(cbs []Callback, e *Error, status Status, at time.Time) {
	if len(cbs) == 0 {
		return
	}
	ev := Event{
		ErrorID:   e.ID.String(),
		Domain:    c.domain,
		Code:      e.Code,
		Message:   e.Message,
		Status:    status,
		Timestamp: at,
		Counter:   c.counter,
	}
	for _, cb := range cbs {
		cb(ev)
	}
}
