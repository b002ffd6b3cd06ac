package cmd

import (
	"testing"
	"time"

	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestBuildTaskData_FromFlags(t *testing.T) {
	opts := createFlags{
		name:      "Banner de rebajas",
		priority:  "high",
		estimate:  90,
		assignees: []int64{42},
		epicID:    "e1",
		tags:      []string{"web"},
		due:       "2026-11-02",
	}
	task, err := buildTaskData(afero.NewMemMapFs(), opts, changedSet("name", "priority", "estimate", "assignee", "epic", "tag", "due"))
	require.NoError(t, err)

	assert.Equal(t, "Banner de rebajas", task.Name)
	assert.Equal(t, "high", task.Priority)
	assert.Equal(t, 90, task.TimeEstimate)
	assert.Equal(t, []int64{42}, task.Assignees)
	assert.Equal(t, "e1", task.EpicID)
	assert.Equal(t, []string{"web"}, task.Tags)
	require.NotNil(t, task.DueDate)
	want := time.Date(2026, 11, 2, 0, 0, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, want, *task.DueDate)
}

func TestBuildTaskData_InvalidDue(t *testing.T) {
	_, err := buildTaskData(afero.NewMemMapFs(), createFlags{due: "02/11/2026"}, changedSet("due"))
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestBuildTaskData_FileThenFlags(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "task.json", []byte(`{"name":"Desde archivo","priority":"low","timeEstimate":30}`), 0o644))

	opts := createFlags{fromFile: "task.json", priority: "urgent"}
	task, err := buildTaskData(fs, opts, changedSet("priority"))
	require.NoError(t, err)

	assert.Equal(t, "Desde archivo", task.Name)
	assert.Equal(t, "urgent", task.Priority)
	assert.Equal(t, 30, task.TimeEstimate)
}

func TestBuildTaskData_MissingFile(t *testing.T) {
	_, err := buildTaskData(afero.NewMemMapFs(), createFlags{fromFile: "nope.json"}, changedSet())
	assert.ErrorContains(t, err, "read task file")
}

func TestDecodeTaskFile(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want clickup.TaskData
	}{
		{
			name: "task data",
			raw:  `{"name":"A","type":"bug","sprintId":"sp1"}`,
			want: clickup.TaskData{Name: "A", Type: "bug", SprintID: "sp1"},
		},
		{
			name: "request body",
			raw:  `{"spaceId":"s1","taskData":{"name":"B","epicId":"e1"}}`,
			want: clickup.TaskData{Name: "B", EpicID: "e1"},
		},
		{
			name: "suggestion",
			raw: `{"name":"C","description":"d","type":"task","priority":"normal","timeEstimate":60,
				"tags":["x"],"suggestedSpaceId":"s1","suggestedAssigneeIds":[7],
				"suggestedSprintId":"sp2","suggestedEpicId":null,"suggestedStatus":"in progress"}`,
			want: clickup.TaskData{
				Name: "C", Description: "d", Type: "task", Priority: "normal", TimeEstimate: 60,
				Tags: []string{"x"}, Assignees: []int64{7}, SprintID: "sp2", Status: "in progress",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeTaskFile([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeTaskFile_Invalid(t *testing.T) {
	_, err := decodeTaskFile([]byte(`[1,2]`))
	assert.Error(t, err)
}
