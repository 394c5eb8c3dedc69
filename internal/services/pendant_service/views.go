package pendant_service

import (
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/models"
)

// --- Преобразование доменных объектов в DTO ---

func lineViews(p *program.Program) []models.InstructionView {
	insts := p.Instructions()
	out := make([]models.InstructionView, len(insts))
	for i, inst := range insts {
		out[i] = models.InstructionView{
			Index:       i,
			Kind:        string(inst.Kind()),
			Text:        inst.Text(),
			Commented:   inst.IsCommented(),
			Indentation: inst.IndentationLevel(),
			MaxPart:     inst.MaxSelectablePartIndex(),
		}
	}
	return out
}

func programView(p *program.Program) *models.ProgramView {
	v := &models.ProgramView{
		Name:        p.Name,
		Description: p.Description,
		Lines:       lineViews(p),
		Points:      []models.PointView{},
	}
	for i, pt := range p.Points() {
		v.Points = append(v.Points, models.PointView{
			Index:    i,
			Position: [3]float64(pt.Position),
			Rotation: [3]float64(pt.Rotation),
		})
	}
	return v
}

func programSummary(p *program.Program) models.ProgramSummary {
	return models.ProgramSummary{
		Name:        p.Name,
		Description: p.Description,
		Lines:       p.Len(),
		Points:      p.SavedPointCount(),
	}
}

func errorView(e interlock.Error) models.ErrorView {
	d, _ := interlock.DomainOf(e.Code)
	v := models.ErrorView{
		ID:          e.ID.String(),
		Code:        e.Code,
		Domain:      d.String(),
		Message:     e.Message,
		Active:      e.Active,
		AutoUnraise: e.AutoUnraise,
		Status:      e.LastStatus().String(),
		Occurrences: make([]models.OccurrenceView, len(e.Occurrences)),
	}
	if len(e.Occurrences) == 0 {
		v.Status = "Clear"
	}
	for i, o := range e.Occurrences {
		v.Occurrences[i] = models.OccurrenceView{Status: o.Status.String(), Timestamp: o.Timestamp}
	}
	return v
}

func interlockEvent(ev interlock.Event) *models.InterlockEvent {
	return &models.InterlockEvent{
		ErrorID:   ev.ErrorID,
		Code:      ev.Code,
		Domain:    ev.Domain.String(),
		Message:   ev.Message,
		Status:    ev.Status.String(),
		Counter:   ev.Counter,
		Timestamp: ev.Timestamp,
	}
}

func interlockState(r *interlock.Requester) *models.InterlockState {
	st := &models.InterlockState{
		HasAnyErrors:        r.HasAnyErrors(),
		HasAllErrorsReset:   r.HasAllErrorsReset(),
		HasAlarmErrorsReset: r.HasAlarmErrorsReset(),
		CanRun:              r.CanRun(),
		Counters:            make(map[string]int, len(interlock.Domains)),
	}
	for _, d := range interlock.Domains {
		st.Counters[d.String()] = r.Controller(d).Counter()
	}
	return st
}

func executionState(x *Executor) *models.ExecutionState {
	st := &models.ExecutionState{
		Mode:     string(x.Mode()),
		State:    string(x.State()),
		Line:     x.Line(),
		Deadman:  x.Deadman(),
		ToolOn:   x.ToolOn(),
		Position: [3]float64(x.Pose().Position),
		SimTime:  x.SimTime().Seconds(),
	}
	if p := x.Program(); p != nil {
		st.Program = p.Name
	}
	return st
}

func editorState(e *Editor) (*models.EditorState, error) {
	text, start, end, err := e.Highlight()
	if err != nil {
		return nil, err
	}
	return &models.EditorState{
		Program:        e.Program().Name,
		Line:           e.Line(),
		Part:           e.Part(),
		Text:           text,
		HighlightStart: start,
		HighlightEnd:   end,
		Lines:          lineViews(e.Program()),
	}, nil
}
