package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTaskPayload_TimeEstimate(t *testing.T) {
	tests := []struct {
		minutes int
		want    int64
	}{
		{minutes: 90, want: 5_400_000},
		{minutes: 0, want: 0},
		{minutes: 1, want: 60_000},
	}
	for _, tt := range tests {
		p := BuildTaskPayload(TaskData{Name: "x", TimeEstimate: tt.minutes})
		assert.Equal(t, tt.want, p.TimeEstimate, "minutes=%d", tt.minutes)
	}
}

func TestBuildTaskPayload_Priority(t *testing.T) {
	for name, want := range map[string]int{"urgent": 1, "high": 2, "normal": 3, "low": 4} {
		p := BuildTaskPayload(TaskData{Priority: name})
		require.NotNil(t, p.Priority, name)
		assert.Equal(t, want, *p.Priority, name)
	}
	assert.Nil(t, BuildTaskPayload(TaskData{Priority: "whenever"}).Priority)
}

func TestBuildTaskPayload_OptionalFields(t *testing.T) {
	minimal, err := json.Marshal(BuildTaskPayload(TaskData{Name: "x", Priority: "normal", EpicID: "E1", SprintID: "SP1"}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(minimal, &got))
	assert.Equal(t, []any{}, got["tags"], "tags default to an empty list")
	for _, absent := range []string{"assignees", "status", "due_date", "parent"} {
		assert.NotContains(t, got, absent)
	}

	due := int64(1767225600000)
	full, err := json.Marshal(BuildTaskPayload(TaskData{
		Name:      "x",
		Assignees: []int64{7},
		Status:    "to do",
		DueDate:   &due,
		Tags:      []string{"shopify"},
	}))
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(full, &got))
	assert.Equal(t, []any{float64(7)}, got["assignees"])
	assert.Equal(t, "to do", got["status"])
	assert.Equal(t, float64(due), got["due_date"])
	assert.Equal(t, []any{"shopify"}, got["tags"])
}

func TestResolveDestinationList(t *testing.T) {
	t.Run("epic wins over direct lists", func(t *testing.T) {
		fake := newFakeClickUp(t)
		fake.on("GET", "/space/S1/list", 200, lists(List{ID: "D1"}))
		svc := newTestService(t, fake)

		id, err := svc.ResolveDestinationList(context.Background(), "S1", TaskData{EpicID: "E1"})
		require.NoError(t, err)
		assert.Equal(t, "E1", id)
		assert.Zero(t, fake.totalCalls())
	})

	t.Run("first direct list", func(t *testing.T) {
		fake := newFakeClickUp(t)
		fake.on("GET", "/space/S1/list", 200, lists(List{ID: "D1"}, List{ID: "D2"}))
		svc := newTestService(t, fake)

		id, err := svc.ResolveDestinationList(context.Background(), "S1", TaskData{})
		require.NoError(t, err)
		assert.Equal(t, "D1", id)
		assert.Zero(t, fake.count("GET", "/space/S1/folder"))
	})

	t.Run("first list of first folder with lists", func(t *testing.T) {
		fake := newFakeClickUp(t)
		fake.on("GET", "/space/S1/list", 200, lists())
		fake.on("GET", "/space/S1/folder", 200, folders(Folder{ID: "F0"}, Folder{ID: "F1"}, Folder{ID: "F2"}))
		fake.on("GET", "/folder/F0/list", 200, lists())
		fake.on("GET", "/folder/F1/list", 200, lists(List{ID: "L1"}, List{ID: "L2"}))
		fake.on("GET", "/folder/F2/list", 200, lists(List{ID: "L3"}))
		svc := newTestService(t, fake)

		id, err := svc.ResolveDestinationList(context.Background(), "S1", TaskData{})
		require.NoError(t, err)
		assert.Equal(t, "L1", id)
		assert.Zero(t, fake.count("GET", "/folder/F2/list"))
	})

	t.Run("no list anywhere", func(t *testing.T) {
		fake := newFakeClickUp(t)
		fake.on("GET", "/space/S1/list", 200, lists())
		fake.on("GET", "/space/S1/folder", 200, folders(Folder{ID: "F1"}))
		fake.on("GET", "/folder/F1/list", 200, lists())
		svc := newTestService(t, fake)

		_, err := svc.ResolveDestinationList(context.Background(), "S1", TaskData{})
		assert.ErrorIs(t, err, ErrNoDestinationList)
	})
}

type recordingTracker struct {
	events []string
	props  []map[string]any
}

func (r *recordingTracker) Track(event string, properties map[string]any) {
	r.events = append(r.events, event)
	r.props = append(r.props, properties)
}

func TestCreateTask_EpicShortCircuit(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("POST", "/list/E1/task", 200, map[string]any{"id": "T1", "name": "Checkout", "url": "https://app.clickup.com/t/T1"})
	tracker := &recordingTracker{}
	svc := newTestService(t, fake, WithTracker(tracker))

	created, err := svc.CreateTask(context.Background(), "S1", TaskData{
		Name:         "Checkout",
		Priority:     "high",
		TimeEstimate: 90,
		EpicID:       "E1",
	})
	require.NoError(t, err)
	assert.Equal(t, "T1", created.ID)

	assert.Equal(t, 1, fake.count("POST", "/list/E1/task"))
	assert.Equal(t, 1, fake.totalCalls(), "epic must skip list and folder lookups")

	body := fake.body("POST", "/list/E1/task")
	assert.Equal(t, float64(2), body["priority"])
	assert.Equal(t, float64(5_400_000), body["time_estimate"])
	assert.NotContains(t, body, "parent")

	require.Equal(t, []string{"task_created"}, tracker.events)
	assert.Equal(t, true, tracker.props[0]["has_epic"])
	assert.Equal(t, false, tracker.props[0]["has_sprint"])
}

func TestCreateTask_ReturnsRawResponse(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("GET", "/space/S1/list", 200, lists(List{ID: "D1"}))
	fake.on("POST", "/list/D1/task", 200, map[string]any{"id": "T9", "custom_id": nil, "status": map[string]any{"status": "to do"}})
	svc := newTestService(t, fake)

	created, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x", Priority: "low"})
	require.NoError(t, err)

	out, err := json.Marshal(created)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"T9","custom_id":null,"status":{"status":"to do"}}`, string(out))
}

func TestCreateTask_SprintMove(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("POST", "/list/E1/task", 200, map[string]any{"id": "T1"})
	fake.on("POST", "/list/SP1/task/T1", 200, map[string]any{})
	svc := newTestService(t, fake)

	_, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x", EpicID: "E1", SprintID: "SP1"})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.count("POST", "/list/SP1/task/T1"))
}

func TestCreateTask_SprintMoveFailureSwallowed(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("POST", "/list/E1/task", 200, map[string]any{"id": "T1"})
	// No route for the sprint move: the fake answers 404.
	svc := newTestService(t, fake)

	created, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x", EpicID: "E1", SprintID: "SP1"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "T1", created.ID)
	assert.Equal(t, 1, fake.count("POST", "/list/SP1/task/T1"))
}

func TestCreateTask_UpstreamMessage(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("POST", "/list/E1/task", 400, map[string]any{"err": "Status does not exist", "ECODE": "CRTSK_001"})
	svc := newTestService(t, fake)

	_, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x", EpicID: "E1", Status: "doing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskCreationFailed)

	var tcErr *TaskCreationError
	require.True(t, errors.As(err, &tcErr))
	assert.Equal(t, "E1", tcErr.ListID)
	assert.Equal(t, "Status does not exist", tcErr.UpstreamMessage())
	assert.Contains(t, err.Error(), "Status does not exist")
}

func TestCreateTask_NoDestination(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("GET", "/space/S1/list", 200, lists())
	fake.on("GET", "/space/S1/folder", 200, folders())
	svc := newTestService(t, fake)

	_, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x"})
	assert.ErrorIs(t, err, ErrNoDestinationList)
	assert.Zero(t, fake.count("POST", "/list//task"))
}

func TestCreateTask_ResolutionFailureIsTaskCreationError(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("GET", "/space/S1/list", 500, map[string]any{"err": "boom"})
	svc := newTestService(t, fake)

	_, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskCreationFailed)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "boom")

	var tcErr *TaskCreationError
	require.True(t, errors.As(err, &tcErr))
	assert.Empty(t, tcErr.ListID)
	assert.Equal(t, "boom", tcErr.UpstreamMessage())
	assert.Zero(t, fake.count("POST", "/list//task"))
}

func TestCreateTask_NoDestinationIsNotTaskCreationError(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("GET", "/space/S1/list", 200, lists())
	fake.on("GET", "/space/S1/folder", 200, folders())
	svc := newTestService(t, fake)

	_, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x"})
	assert.ErrorIs(t, err, ErrNoDestinationList)
	assert.NotErrorIs(t, err, ErrTaskCreationFailed)
}

func TestCreateTask_SprintMoveSkippedWithoutTaskID(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("POST", "/list/E1/task", 200, map[string]any{"name": "x"})
	svc := newTestService(t, fake)

	created, err := svc.CreateTask(context.Background(), "S1", TaskData{Name: "x", EpicID: "E1", SprintID: "SP1"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Empty(t, created.ID)
	assert.Zero(t, fake.count("POST", "/list/SP1/task/"))
	assert.Equal(t, 1, fake.totalCalls())
}
