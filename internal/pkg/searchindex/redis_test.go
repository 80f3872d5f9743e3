package searchindex

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/coursehub/internal/app/models"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewClient(Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(Config{URL: "not-a-url"})
	assert.Error(t, err)
}

func TestIndexProgramUpsertsDocument(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	desc := "Covers software and systems"
	program := &models.Program{ID: 42, Name: "Computer Science", Description: &desc}
	require.NoError(t, client.IndexProgram(ctx, program))

	raw, err := mr.Get("search:program:42")
	require.NoError(t, err)

	var doc models.Program
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Computer Science", doc.Name)

	// Upsert replaces the document in place.
	program.Name = "Computer Science and Engineering"
	require.NoError(t, client.IndexProgram(ctx, program))

	raw, err = mr.Get("search:program:42")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Computer Science and Engineering", doc.Name)
}

func TestDeleteProgramRemovesDocument(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.IndexProgram(ctx, &models.Program{ID: 7, Name: "Physics"}))
	require.NoError(t, client.DeleteProgram(ctx, 7))

	assert.False(t, mr.Exists("search:program:7"))
}

func TestDeleteMissingDocumentIsNoError(t *testing.T) {
	client, _ := newTestClient(t)

	assert.NoError(t, client.DeleteProgram(context.Background(), 999))
	assert.NoError(t, client.DeleteCourse(context.Background(), 999))
	assert.NoError(t, client.DeleteEnrollment(context.Background(), 999))
}

func TestEntityKeysDoNotCollide(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.IndexProgram(ctx, &models.Program{ID: 1, Name: "Physics"}))
	require.NoError(t, client.IndexCourse(ctx, &models.Course{ID: 1, ProgramID: 1, Title: "Mechanics"}))
	require.NoError(t, client.IndexEnrollment(ctx, &models.Enrollment{ID: 1, UserID: 1, ProgramID: 1}))

	assert.True(t, mr.Exists("search:program:1"))
	assert.True(t, mr.Exists("search:course:1"))
	assert.True(t, mr.Exists("search:enrollment:1"))

	require.NoError(t, client.DeleteCourse(ctx, 1))
	assert.True(t, mr.Exists("search:program:1"))
	assert.False(t, mr.Exists("search:course:1"))
}
