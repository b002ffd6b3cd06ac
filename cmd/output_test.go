package cmd

import (
	"bytes"
	"testing"

	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStructured(t *testing.T) {
	task := &clickup.CreatedTask{ID: "abc", URL: "https://app.clickup.com/t/abc"}

	t.Run("json", func(t *testing.T) {
		var b bytes.Buffer
		done, err := writeStructured(&b, "json", task)
		require.NoError(t, err)
		assert.True(t, done)
		assert.JSONEq(t, `{"id":"abc","url":"https://app.clickup.com/t/abc"}`, b.String())
	})

	t.Run("yaml uses json keys", func(t *testing.T) {
		var b bytes.Buffer
		done, err := writeStructured(&b, "yaml", []clickup.Member{{ID: 7, Username: "ana", Email: "ana@x.io"}})
		require.NoError(t, err)
		assert.True(t, done)
		assert.Contains(t, b.String(), "username: ana")
		assert.Contains(t, b.String(), "id: 7")
	})

	t.Run("text is left to the caller", func(t *testing.T) {
		var b bytes.Buffer
		done, err := writeStructured(&b, "text", task)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Empty(t, b.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		var b bytes.Buffer
		done, err := writeStructured(&b, "xml", task)
		assert.True(t, done)
		assert.Error(t, err)
	})
}
