package pendant_service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iwtcode/pendantService/internal/domain/dio"
	"github.com/iwtcode/pendantService/models"
)

var ErrUnknownSensor = errors.New("unknown sensor")

// ParseSensorBindings разбирает строку вида "estop0=S-1001-0,gate=S-1002".
func ParseSensorBindings(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, code, ok := strings.Cut(pair, "=")
		name, code = strings.TrimSpace(name), strings.TrimSpace(code)
		if !ok || name == "" || code == "" {
			return nil, fmt.Errorf("invalid sensor binding %q", pair)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("duplicate sensor %q", name)
		}
		out[name] = code
	}
	return out, nil
}

// Sensors переводит сигналы датчиков в запросы ошибок и состояние цифровых входов.
// Нажатие датчика поднимает привязанную ошибку, отпускание снимает ее.
type Sensors struct {
	bindings map[string]string
	errors   *ErrorHandler
	bank     *dio.Bank
}

func NewSensors(bindings map[string]string, handler *ErrorHandler, bank *dio.Bank) *Sensors {
	return &Sensors{bindings: bindings, errors: handler, bank: bank}
}

// Codes возвращает коды всех привязок для проверки при старте.
func (s *Sensors) Codes() []string {
	out := make([]string, 0, len(s.bindings))
	for _, code := range s.bindings {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (s *Sensors) Bindings() map[string]string {
	out := make(map[string]string, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// Apply применяет сигнал.
func (s *Sensors) Apply(sig models.Signal) error {
	if sig.Input != nil {
		return s.bank.Set(*sig.Input, sig.Active)
	}
	code, ok := s.bindings[sig.Sensor]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSensor, sig.Sensor)
	}
	var err error
	if sig.Active {
		_, err = s.errors.Raise(code)
	} else {
		_, err = s.errors.Unraise(code)
	}
	return err
}
