package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectList = `[
	{"id":"p1","title":"Shop Front","tech_stack":["Go","React"],"published":true},
	{"id":"p2","title":"Blog","tech_stack":["Hugo"],"published":false}
]`

func TestSplitTechnologies(t *testing.T) {
	assert.Equal(t, []string{"Go", "React"}, SplitTechnologies(" Go , ,React,"))
	assert.Equal(t, []string{}, SplitTechnologies(""))
}

func TestProjectFormBody(t *testing.T) {
	form := NewProjectForm()
	assert.True(t, form.Published)

	form.Title = "  Hello World! "
	form.Technologies = "Go, SQLite"
	form.RepoURL = "https://example.com/repo"
	form.LiveURL = "   "

	raw, err := json.Marshal(form.Body())
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Hello World!", body["title"])
	assert.Equal(t, "hello-world", body["slug"])
	assert.Equal(t, []interface{}{"Go", "SQLite"}, body["tech_stack"])
	assert.Equal(t, "https://example.com/repo", body["repo_url"])
	assert.NotContains(t, body, "live_url")
	assert.NotContains(t, body, "cover_url")
	assert.Equal(t, true, body["published"])
}

func TestProjectsLoadAndFilter(t *testing.T) {
	b, c, _ := newBackend(t)
	b.set("GET /api/projects", http.StatusOK, projectList)
	s := NewProjectsScreen(c, &notes{}, &answer{})

	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Projects(), 2)
	assert.Empty(t, b.recorded()[0].Auth, "the list is public")

	assert.Len(t, s.Filter(""), 2)
	got := s.Filter("react")
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
	got = s.Filter("BLO")
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
	assert.Empty(t, s.Filter("rust"))
}

func TestProjectsSaveCreatesThenUpdates(t *testing.T) {
	b, c, _ := newBackend(t)
	b.set("GET /api/projects", http.StatusOK, projectList)
	b.set("POST /api/projects", http.StatusCreated, `{"id":"p3"}`)
	b.set("PUT /api/projects/p1", http.StatusOK, `{"id":"p1"}`)
	n := &notes{}
	s := NewProjectsScreen(c, n, &answer{})
	ctx := context.Background()

	form := NewProjectForm()
	form.Title = "New One"
	require.NoError(t, s.Save(ctx, "", form))
	require.NoError(t, s.Save(ctx, "p1", form))

	assert.Equal(t, []string{
		"POST /api/projects", "GET /api/projects",
		"PUT /api/projects/p1", "GET /api/projects",
	}, b.routes())
	assert.Equal(t, []string{"Project created", "Project updated"}, n.successes)
	assert.Len(t, s.Projects(), 2)
}

func TestProjectsSaveValidatesLocally(t *testing.T) {
	b, c, _ := newBackend(t)
	n := &notes{}
	err := NewProjectsScreen(c, n, &answer{}).Save(context.Background(), "", NewProjectForm())
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Empty(t, b.recorded())
	assert.Len(t, n.errors, 1)
}

func TestProjectsSaveFailureKeepsList(t *testing.T) {
	b, c, _ := newBackend(t)
	b.set("GET /api/projects", http.StatusOK, projectList)
	b.set("POST /api/projects", http.StatusBadRequest, `{"error":"title is required"}`)
	n := &notes{}
	s := NewProjectsScreen(c, n, &answer{})
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	form := NewProjectForm()
	form.Title = "x"
	err := s.Save(ctx, "", form)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, []string{"Failed to save project"}, n.errors)
	assert.Len(t, s.Projects(), 2)
	assert.Equal(t, []string{"GET /api/projects", "POST /api/projects"}, b.routes())
}

func TestProjectsDeleteRequiresConfirmation(t *testing.T) {
	b, c, _ := newBackend(t)
	b.set("GET /api/projects", http.StatusOK, `[]`)
	b.set("DELETE /api/projects/p1", http.StatusNoContent, ``)
	confirm := &answer{yes: false}
	n := &notes{}
	s := NewProjectsScreen(c, n, confirm)
	ctx := context.Background()

	assert.ErrorIs(t, s.Delete(ctx, "p1"), ErrCancelled)
	assert.Empty(t, b.recorded())
	assert.Len(t, confirm.prompts, 1)

	confirm.yes = true
	require.NoError(t, s.Delete(ctx, "p1"))
	assert.Equal(t, []string{"DELETE /api/projects/p1", "GET /api/projects"}, b.routes())
	assert.Equal(t, []string{"Project deleted"}, n.successes)
}

func TestProjectsUnreachable(t *testing.T) {
	n := &notes{}
	err := NewProjectsScreen(unreachableClient(t), n, &answer{}).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{MsgUnreachable}, n.errors)
}
