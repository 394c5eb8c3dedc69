package instruction

const indentUnit = "  "

// segment - фрагмент отрисованной строки. part == 0 означает неизменяемый текст.
// Одна и та же таблица сегментов используется и для отрисовки, и для выделения полей.
type segment struct {
	part int
	text string
}

func lit(text string) segment { return segment{text: text} }

func field(part int, text string) segment { return segment{part: part, text: text} }

// SelectPart переводит курсор на поле partIndex и возвращает диапазон
// [start, end) этого поля в строке Text(). Поле 0 - вся строка.
func (i *Instruction) SelectPart(partIndex int) (start, end int) {
	i.selected = clampInt(partIndex, 0, i.body.maxPart())
	return i.PartRange(i.selected)
}

// PartRange вычисляет диапазон поля без перемещения курсора.
func (i *Instruction) PartRange(partIndex int) (start, end int) {
	segs := i.body.layout()
	prefix := len(i.prefix())

	total := prefix
	for _, s := range segs {
		total += len(s.text)
	}
	if partIndex <= 0 || partIndex > i.body.maxPart() {
		return 0, total
	}

	offset := prefix
	for _, s := range segs {
		if s.part == partIndex {
			return offset, offset + len(s.text)
		}
		offset += len(s.text)
	}
	return 0, total
}

// BeginFieldEdit отмечает, что курсор только что пришел на поле:
// первая цифра заменит значение, а не допишется к нему.
func (i *Instruction) BeginFieldEdit() {
	i.edit = editState{fresh: true}
}

// ProcessInput применяет токен клавиатуры пульта к выбранному полю.
// Неизвестные токены игнорируются, значения вне диапазона обрезаются.
func (i *Instruction) ProcessInput(token string, lim Limits) {
	i.body.input(i.selected, token, &i.edit, lim)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
