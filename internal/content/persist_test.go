package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(name string, required bool, err error, ran *[]string) Write {
	return Write{
		Name:     name,
		Required: required,
		Fn: func(ctx context.Context) error {
			*ran = append(*ran, name)
			return err
		},
	}
}

func TestPersistRequiredFailureFailsOverall(t *testing.T) {
	var ran []string
	p := &Persister{Logger: zerolog.Nop()}

	_, err := p.Persist(context.Background(), []Write{
		write("detail", true, errors.New("connection refused"), &ran),
		write("summary", true, nil, &ran),
	})

	var persistErr *PersistenceError
	require.True(t, errors.As(err, &persistErr))
	assert.Equal(t, "detail", persistErr.Write)
	assert.Equal(t, []string{"detail"}, ran, "later writes do not run after a required failure")
}

func TestPersistBestEffortFailureSucceedsOverall(t *testing.T) {
	var ran []string
	p := &Persister{Logger: zerolog.Nop()}

	out, err := p.Persist(context.Background(), []Write{
		write("detail", true, nil, &ran),
		write("summary", true, nil, &ran),
		write("user_content_index", false, errors.New("user row locked"), &ran),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"user_content_index"}, out.Skipped)
	assert.Equal(t, []string{"detail", "summary", "user_content_index"}, ran)
}

func TestPersistLogsBestEffortFailureCategory(t *testing.T) {
	var buf bytes.Buffer
	p := &Persister{Logger: zerolog.New(&buf)}

	_, err := p.Persist(context.Background(), []Write{
		write("user_content_index", false, errors.New("boom"), new([]string)),
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "persistence", entry["category"])
	assert.Equal(t, "user_content_index", entry["write"])
}

func TestPersistRunsWritesInDeclaredOrder(t *testing.T) {
	var ran []string
	p := &Persister{Logger: zerolog.Nop()}

	_, err := p.Persist(context.Background(), []Write{
		write("detail", true, nil, &ran),
		write("summary", true, nil, &ran),
		write("index", false, nil, &ran),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"detail", "summary", "index"}, ran)
}
