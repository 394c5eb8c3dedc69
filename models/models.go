package models

import "time"

// InstructionView - строка программы в том виде, в каком она отображается на пульте.
type InstructionView struct {
	Index       int    `json:"index"`
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	Commented   bool   `json:"commented"`
	Indentation int    `json:"indentation"`
	MaxPart     int    `json:"max_part"`
}

// PointView - сохраненная точка программы.
type PointView struct {
	Index    int        `json:"index"`
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
}

// ProgramSummary - краткая информация о сохраненной программе.
type ProgramSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Lines       int    `json:"lines"`
	Points      int    `json:"points"`
}

// ProgramView - полное содержимое программы.
type ProgramView struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Lines       []InstructionView `json:"lines"`
	Points      []PointView       `json:"points"`
}

// EditorState - состояние редактора: открытая программа, курсор и подсветка.
type EditorState struct {
	Program        string            `json:"program"`
	Line           int               `json:"line"`
	Part           int               `json:"part"`
	Text           string            `json:"text"`
	HighlightStart int               `json:"highlight_start"`
	HighlightEnd   int               `json:"highlight_end"`
	Lines          []InstructionView `json:"lines"`
}

// OccurrenceView - одно вхождение ошибки.
type OccurrenceView struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorView - зарегистрированная ошибка и ее история.
type ErrorView struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Domain      string           `json:"domain"`
	Message     string           `json:"message"`
	Active      bool             `json:"active"`
	AutoUnraise bool             `json:"auto_unraise"`
	Status      string           `json:"status"`
	Occurrences []OccurrenceView `json:"occurrences"`
}

// InterlockState - сводные условия, блокирующие запуск программы.
type InterlockState struct {
	HasAnyErrors        bool           `json:"has_any_errors"`
	HasAllErrorsReset   bool           `json:"has_all_errors_reset"`
	HasAlarmErrorsReset bool           `json:"has_alarm_errors_reset"`
	CanRun              bool           `json:"can_run"`
	Counters            map[string]int `json:"counters"`
}

// HandleResult - результат запроса на изменение статуса ошибки.
type HandleResult struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Handled bool   `json:"handled"`
}

// ExecutionState - состояние исполнения программы.
type ExecutionState struct {
	Program  string     `json:"program"`
	Mode     string     `json:"mode"`
	State    string     `json:"state"`
	Line     int        `json:"line"`
	Deadman  bool       `json:"deadman"`
	ToolOn   bool       `json:"tool_on"`
	Position [3]float64 `json:"position"`
	SimTime  float64    `json:"sim_time_sec"`
}

// InterlockEvent - принятый переход ошибки.
type InterlockEvent struct {
	ErrorID   string    `json:"error_id"`
	Code      string    `json:"code"`
	Domain    string    `json:"domain"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Counter   int       `json:"counter"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventInterlock = "interlock"
	EventExecution = "execution"
)

// Event публикуется в Kafka и в поток событий websocket.
type Event struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Interlock *InterlockEvent `json:"interlock,omitempty"`
	Execution *ExecutionState `json:"execution,omitempty"`
}

// Key возвращает ключ сообщения Kafka.
func (e Event) Key() string {
	if e.Interlock != nil {
		return e.Interlock.Code
	}
	return e.Type
}

// Signal - сигнал датчика ячейки: именованный датчик или цифровой вход.
type Signal struct {
	Sensor string `json:"sensor,omitempty"`
	Input  *uint  `json:"input,omitempty"`
	Active bool   `json:"active"`
}

// EditRequest - команда редактора.
type EditRequest struct {
	Op       string `json:"op" binding:"required"`
	Line     int    `json:"line,omitempty"`
	Delta    int    `json:"delta,omitempty"`
	Part     int    `json:"part,omitempty"`
	Token    string `json:"token,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Position string `json:"position,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Операции редактора.
const (
	EditGoto          = "goto"
	EditStep          = "step"
	EditSelectPart    = "select_part"
	EditNextPart      = "next_part"
	EditPrevPart      = "prev_part"
	EditInput         = "input"
	EditInsert        = "insert"
	EditDelete        = "delete"
	EditChangeKind    = "change_kind"
	EditToggleComment = "toggle_comment"
	EditSetText       = "set_text"
	EditTouchUp       = "touch_up"
)
