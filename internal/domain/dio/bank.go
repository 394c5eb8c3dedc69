// Package dio моделирует банк цифровых входов ячейки.
package dio

import "fmt"

// Bank - массив цифровых входов фиксированной длины.
type Bank struct {
	bits []bool
}

func NewBank(count int) *Bank {
	if count < 0 {
		count = 0
	}
	return &Bank{bits: make([]bool, count)}
}

// Count ограничивает допустимые индексы битов в инструкциях.
func (b *Bank) Count() int { return len(b.bits) }

func (b *Bank) Get(index uint) bool {
	if index >= uint(len(b.bits)) {
		return false
	}
	return b.bits[index]
}

func (b *Bank) Set(index uint, value bool) error {
	if index >= uint(len(b.bits)) {
		return fmt.Errorf("digital input %d out of range (count %d)", index, len(b.bits))
	}
	b.bits[index] = value
	return nil
}

// Snapshot возвращает копию состояния входов.
func (b *Bank) Snapshot() []bool {
	out := make([]bool, len(b.bits))
	copy(out, b.bits)
	return out
}
