package program

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrProgramExists   = errors.New("program already exists")
	ErrProgramInUse    = errors.New("program is in use")
	ErrInvalidName     = errors.New("program name is empty")
	ErrDuplicateName   = errors.New("duplicate program name")
)

// InUseFunc сообщает, открыта ли программа в редакторе или загружена на исполнение.
type InUseFunc func(name string) bool

// Library - набор сохраненных программ по имени в порядке добавления.
// Не потокобезопасна: владелец - главный цикл.
type Library struct {
	programs map[string]*Program
	order    []string
	guards   []InUseFunc
}

// NewLibrary создает библиотеку; при повторе имени остается первая программа.
func NewLibrary(programs ...*Program) *Library {
	l := &Library{programs: make(map[string]*Program, len(programs))}
	for _, p := range programs {
		if _, ok := l.programs[p.Name]; !ok {
			l.add(p)
		}
	}
	return l
}

func (l *Library) add(p *Program) {
	if _, ok := l.programs[p.Name]; !ok {
		l.order = append(l.order, p.Name)
	}
	l.programs[p.Name] = p
}

// AddGuard регистрирует проверку, запрещающую удаление используемых программ.
func (l *Library) AddGuard(fn InUseFunc) {
	l.guards = append(l.guards, fn)
}

func (l *Library) inUse(name string) bool {
	for _, g := range l.guards {
		if g(name) {
			return true
		}
	}
	return false
}

func (l *Library) Create(name, description string) (*Program, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if _, ok := l.programs[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrProgramExists, name)
	}
	p := New(name, description)
	l.add(p)
	return p, nil
}

func (l *Library) Get(name string) (*Program, error) {
	p, ok := l.programs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, name)
	}
	return p, nil
}

// List возвращает программы в порядке добавления, то есть в порядке документа хранилища.
func (l *Library) List() []*Program {
	out := make([]*Program, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.programs[name])
	}
	return out
}

// Save добавляет или заменяет программу с тем же именем, сохраняя ее позицию.
func (l *Library) Save(p *Program) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	l.add(p)
	return nil
}

// Duplicate сохраняет глубокую копию программы src под именем dst.
func (l *Library) Duplicate(src, dst string) (*Program, error) {
	p, err := l.Get(src)
	if err != nil {
		return nil, err
	}
	dst = strings.TrimSpace(dst)
	if dst == "" {
		return nil, ErrInvalidName
	}
	if _, ok := l.programs[dst]; ok {
		return nil, fmt.Errorf("%w: %s", ErrProgramExists, dst)
	}
	c := p.Clone()
	c.Name = dst
	l.add(c)
	return c, nil
}

func (l *Library) Delete(name string) error {
	if _, ok := l.programs[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, name)
	}
	if l.inUse(name) {
		return fmt.Errorf("%w: %s", ErrProgramInUse, name)
	}
	delete(l.programs, name)
	l.order = slices.DeleteFunc(l.order, func(n string) bool { return n == name })
	return nil
}

// Replace заменяет все содержимое библиотеки, например после перечитывания файла.
// Набор с повторяющимися именами отклоняется целиком, прежнее содержимое остается.
func (l *Library) Replace(programs []*Program) error {
	if err := CheckUniqueNames(programs); err != nil {
		return err
	}
	l.programs = make(map[string]*Program, len(programs))
	l.order = make([]string, 0, len(programs))
	for _, p := range programs {
		l.add(p)
	}
	return nil
}

// CheckUniqueNames возвращает ErrDuplicateName для первого повторного имени.
func CheckUniqueNames(programs []*Program) error {
	seen := make(map[string]struct{}, len(programs))
	for _, p := range programs {
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
