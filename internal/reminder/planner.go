package reminder

import (
	"context"
	"fmt"
	"machine-reminder/internal/contract"
	"machine-reminder/internal/model"
	"sort"
	"time"
)

const titleFormat = "%s · %s için kontrol formu (Şablon: %s)"

type Planner struct {
	calendar Calendar
}

func NewPlanner(calendar Calendar) *Planner {
	return &Planner{calendar: calendar}
}

// Plan decides whether the (machine, template) pair needs a new reminder at
// now. It returns nil without error when nothing should be created; errors
// only come from the history lookups.
//
// A pair with history is extended once its latest due day has passed. A pair
// without history starts one interval after yesterday, or today when the
// template has no usable rule.
func (p *Planner) Plan(ctx context.Context, machine model.Machine, tmpl model.ControlFormTemplate, history contract.ReminderReader, now time.Time) (*model.ReminderTask, error) {
	period := ParsePeriod(tmpl.Period)

	latest, err := history.FindLatestReminder(ctx, machine.ID, tmpl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest reminder for machine %d template %d: %w", machine.ID, tmpl.ID, err)
	}

	var candidate time.Time
	if latest != nil {
		if !p.calendar.Normalize(latest.DueDate).Before(p.calendar.Normalize(now)) {
			return nil, nil
		}
		next, ok := p.calendar.NextDue(latest.DueDate, period, tmpl.PeriodDays)
		if !ok {
			return nil, nil
		}
		candidate = next
	} else {
		next, ok := p.calendar.NextDue(now.AddDate(0, 0, -1), period, tmpl.PeriodDays)
		if !ok {
			next = p.calendar.Normalize(now)
		}
		candidate = next
	}

	exists, err := history.ExistsReminderOnDate(ctx, machine.ID, tmpl.ID, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to check reminder on %s for machine %d template %d: %w", candidate.Format(time.DateOnly), machine.ID, tmpl.ID, err)
	}
	if exists {
		return nil, nil
	}

	return newReminderTask(machine, tmpl, candidate), nil
}

// PlanFromExisting runs Plan against an in-memory history of the pair.
func (p *Planner) PlanFromExisting(machine model.Machine, tmpl model.ControlFormTemplate, existing []model.ReminderTask, now time.Time) *model.ReminderTask {
	task, _ := p.Plan(context.Background(), machine, tmpl, NewMemoryHistory(existing), now)
	return task
}

func newReminderTask(machine model.Machine, tmpl model.ControlFormTemplate, due time.Time) *model.ReminderTask {
	var periodDays *int
	if tmpl.PeriodDays != nil {
		days := *tmpl.PeriodDays
		periodDays = &days
	}
	return &model.ReminderTask{
		Title:                 fmt.Sprintf(titleFormat, machine.MachineType, machine.Name, tmpl.Name),
		Description:           tmpl.DefaultNotes,
		MachineID:             machine.ID,
		ControlFormTemplateID: tmpl.ID,
		DueDate:               due,
		Period:                tmpl.Period,
		PeriodDays:            periodDays,
		Status:                model.ReminderStatusOpen,
	}
}

// MemoryHistory is a ReminderReader over a fixed slice of reminders.
type MemoryHistory struct {
	reminders []model.ReminderTask
}

func NewMemoryHistory(reminders []model.ReminderTask) *MemoryHistory {
	sorted := make([]model.ReminderTask, len(reminders))
	copy(sorted, reminders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.After(sorted[j].DueDate)
	})
	return &MemoryHistory{reminders: sorted}
}

func (h *MemoryHistory) FindLatestReminder(_ context.Context, machineID, templateID uint) (*model.ReminderTask, error) {
	for i := range h.reminders {
		r := h.reminders[i]
		if r.MachineID == machineID && r.ControlFormTemplateID == templateID {
			return &r, nil
		}
	}
	return nil, nil
}

func (h *MemoryHistory) ExistsReminderOnDate(_ context.Context, machineID, templateID uint, day time.Time) (bool, error) {
	y, m, d := day.Date()
	for _, r := range h.reminders {
		if r.MachineID != machineID || r.ControlFormTemplateID != templateID {
			continue
		}
		ry, rm, rd := r.DueDate.In(day.Location()).Date()
		if ry == y && rm == m && rd == d {
			return true, nil
		}
	}
	return false, nil
}
