package instruction

import "math"

// Токены клавиатуры пульта.
const (
	TokenEnter = "Enter"
	TokenPrev  = "PREV"
	TokenDot   = "."
)

// IsToken сообщает, является ли строка токеном, который понимает редактор строк.
func IsToken(token string) bool {
	if _, ok := digit(token); ok {
		return true
	}
	switch token {
	case TokenEnter, TokenPrev, TokenDot:
		return true
	}
	return false
}

func digit(token string) (int, bool) {
	if len(token) != 1 || token[0] < '0' || token[0] > '9' {
		return 0, false
	}
	return int(token[0] - '0'), true
}

// accumulate применяет цифру или PREV к целочисленному полю.
func accumulate(v int, token string, st *editState, max int) int {
	if token == TokenPrev {
		st.fresh = false
		return clampInt(v/10, 0, max)
	}
	d, ok := digit(token)
	if !ok {
		return v
	}
	if st.fresh {
		v = d
		st.fresh = false
	} else {
		v = v*10 + d
	}
	return clampInt(v, 0, max)
}

func savedPoints(lim Limits) int {
	if lim == nil {
		return math.MaxInt32
	}
	return lim.SavedPointCount()
}

func digitalInputs(lim Limits) int {
	if lim == nil {
		return math.MaxInt32
	}
	return lim.DigitalInputCount()
}
