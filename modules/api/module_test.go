package api

import (
	"context"
	"testing"

	"github.com/example/task-tracker/config"
	"github.com/example/task-tracker/modules/activity"
	"github.com/example/task-tracker/modules/task"
	"github.com/stretchr/testify/assert"
)

func TestModule_Name(t *testing.T) {
	m := NewModule(config.Config{HTTPPort: 3000}, nil, nil, &mockLogger{})
	assert.Equal(t, "api", m.Name())
	assert.Equal(t, ":3000", m.addr)
}

func TestModule_StartRequiresStartedTaskModule(t *testing.T) {
	log := &mockLogger{}
	taskModule := task.NewModule(config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:"}, log)
	m := NewModule(config.Config{HTTPPort: 0}, taskModule, activity.NewModule(log), log)

	err := m.Start(context.Background())
	assert.EqualError(t, err, "task module not started")
	assert.False(t, m.Health(context.Background()).Healthy)
	assert.NoError(t, m.Stop(context.Background()))
}
