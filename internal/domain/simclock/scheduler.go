// Package simclock реализует симуляционное время и отложенные перепроверки,
// которые можно отменить до срабатывания.
package simclock

import (
	"sort"
	"time"
)

// Handle идентифицирует запланированный вызов.
type Handle uint64

type pending struct {
	handle Handle
	due    time.Duration
	fn     func()
}

// Scheduler не потокобезопасен: им владеет главный цикл.
type Scheduler struct {
	now     time.Duration
	next    Handle
	pending []pending
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now возвращает симуляционное время от начала сессии.
func (s *Scheduler) Now() time.Duration { return s.now }

// After планирует fn через d симуляционного времени.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.next++
	s.pending = append(s.pending, pending{handle: s.next, due: s.now + d, fn: fn})
	sort.SliceStable(s.pending, func(i, j int) bool { return s.pending[i].due < s.pending[j].due })
	return s.next
}

// Cancel снимает запланированный вызов. Возвращает false, если он уже сработал или не существовал.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, p := range s.pending {
		if p.handle == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scheduler) Pending() int { return len(s.pending) }

// Advance сдвигает время на dt и вызывает наступившие задачи в порядке срока.
// Задачи, запланированные из обработчиков, срабатывают в этом же вызове, если уже наступили.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	for len(s.pending) > 0 && s.pending[0].due <= s.now {
		p := s.pending[0]
		s.pending = s.pending[1:]
		p.fn()
	}
}
