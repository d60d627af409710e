package service

import (
	"context"
	"errors"
	"machine-reminder/internal/model"
	"machine-reminder/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(clock Clock, catalog *fakeCatalog, store *fakeStore) ReminderGenerator {
	return NewReminderGenerator(logger.NewNop(), clock, newTestPlanner(), catalog, store)
}

func TestReminderGenerator_RunCycle(t *testing.T) {
	catalog := &fakeCatalog{
		machines:  []model.Machine{forklift, crane},
		templates: []model.ControlFormTemplate{dailyCheck, monthlyCare},
	}
	store := &fakeStore{}
	generator := newTestGenerator(newFakeClock(testStart), catalog, store)

	summary, err := generator.RunCycle(context.Background(), CycleOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, summary.CycleID)
	assert.Equal(t, 2, summary.MachineCount)
	assert.Equal(t, 2, summary.TemplateCount)
	assert.Equal(t, 2, summary.PairCount)
	assert.Equal(t, 2, summary.Planned)
	assert.Equal(t, 2, summary.Persisted)
	assert.Empty(t, summary.Error)
	assert.Equal(t, 1, store.InsertCalls())

	stored := store.Stored()
	require.Len(t, stored, 2)
	assert.Equal(t, dailyCheck.ID, stored[0].ControlFormTemplateID)
	assert.True(t, stored[0].DueDate.Equal(utcAt(2024, 3, 15, 8)))
	assert.Equal(t, monthlyCare.ID, stored[1].ControlFormTemplateID)
	assert.True(t, stored[1].DueDate.Equal(utcAt(2024, 4, 14, 8)))
	for _, task := range stored {
		assert.Equal(t, forklift.ID, task.MachineID)
		assert.Equal(t, model.ReminderStatusOpen, task.Status)
	}
}

func TestReminderGenerator_SameDayRunCreatesNothingNew(t *testing.T) {
	catalog := &fakeCatalog{
		machines:  []model.Machine{forklift},
		templates: []model.ControlFormTemplate{dailyCheck, monthlyCare},
	}
	store := &fakeStore{}
	generator := newTestGenerator(newFakeClock(testStart), catalog, store)

	_, err := generator.RunCycle(context.Background(), CycleOptions{})
	require.NoError(t, err)

	summary, err := generator.RunCycle(context.Background(), CycleOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PairCount)
	assert.Zero(t, summary.Planned)
	assert.Zero(t, summary.Persisted)

	assert.Len(t, store.Stored(), 2)
	assert.Equal(t, 1, store.InsertCalls(), "empty batch must not be written")
}

func TestReminderGenerator_SkipsEmptyBatch(t *testing.T) {
	catalog := &fakeCatalog{
		machines:  []model.Machine{crane},
		templates: []model.ControlFormTemplate{dailyCheck, monthlyCare},
	}
	store := &fakeStore{}
	generator := newTestGenerator(newFakeClock(testStart), catalog, store)

	summary, err := generator.RunCycle(context.Background(), CycleOptions{})
	require.NoError(t, err)
	assert.Zero(t, summary.PairCount)
	assert.Zero(t, store.InsertCalls())
}

func TestReminderGenerator_IgnoresInactiveMachines(t *testing.T) {
	idle := forklift
	idle.Status = "Maintenance"
	catalog := &fakeCatalog{
		machines:  []model.Machine{idle},
		templates: []model.ControlFormTemplate{dailyCheck},
	}
	store := &fakeStore{}
	generator := newTestGenerator(newFakeClock(testStart), catalog, store)

	summary, err := generator.RunCycle(context.Background(), CycleOptions{})
	require.NoError(t, err)
	assert.Zero(t, summary.PairCount)
	assert.Empty(t, store.Stored())
}

func TestReminderGenerator_DryRun(t *testing.T) {
	catalog := &fakeCatalog{
		machines:  []model.Machine{forklift},
		templates: []model.ControlFormTemplate{monthlyCare},
	}
	store := &fakeStore{}
	generator := newTestGenerator(newFakeClock(testStart), catalog, store)

	summary, err := generator.RunCycle(context.Background(), CycleOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Planned)
	assert.Zero(t, summary.Persisted)
	require.Len(t, summary.Reminders, 1)
	assert.True(t, summary.Reminders[0].DueDate.Equal(utcAt(2024, 4, 14, 8)))
	assert.Zero(t, store.InsertCalls())
}

func TestReminderGenerator_Errors(t *testing.T) {
	catalogErr := errors.New("catalog unavailable")

	tests := []struct {
		name    string
		catalog *fakeCatalog
		store   *fakeStore
		wantErr error
		wantMsg string
	}{
		{
			name:    "machines",
			catalog: &fakeCatalog{machinesErr: catalogErr},
			store:   &fakeStore{},
			wantErr: catalogErr,
			wantMsg: "failed to list active machines",
		},
		{
			name:    "templates",
			catalog: &fakeCatalog{machines: []model.Machine{forklift}, templatesErr: catalogErr},
			store:   &fakeStore{},
			wantErr: catalogErr,
			wantMsg: "failed to list active templates",
		},
		{
			name:    "insert",
			catalog: &fakeCatalog{machines: []model.Machine{forklift}, templates: []model.ControlFormTemplate{dailyCheck}},
			store:   &fakeStore{failOn: map[int]bool{1: true}},
			wantErr: errInsertFailed,
			wantMsg: "failed to persist reminder batch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := newTestGenerator(newFakeClock(testStart), tt.catalog, tt.store)

			summary, err := generator.RunCycle(context.Background(), CycleOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, err.Error(), summary.Error)
			assert.Zero(t, summary.Persisted)
			assert.False(t, summary.FinishedAt.IsZero())
			assert.Empty(t, tt.store.Stored())
		})
	}
}
