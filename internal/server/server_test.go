package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/colecto/internal/bridge"
	"github.com/Paintersrp/colecto/internal/store"
)

const folder = "/notes"

func newTestServer(t *testing.T) (*fiber.App, afero.Fs, *bytes.Buffer) {
	t.Helper()
	return newTestServerWith(t, Options{})
}

// newTestServerWith defaults opts.Folder to the test folder.
func newTestServerWith(t *testing.T, opts Options) (*fiber.App, afero.Fs, *bytes.Buffer) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(folder, 0o755))

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	b := bridge.New(store.New(fsys, logger), logger)

	if opts.Folder == nil {
		opts.Folder = func() string { return folder }
	}
	srv := New(b, opts, logger)
	return srv.GetApp(), fsys, &logs
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func notePath(id string) string {
	return "/api/notes/" + url.PathEscape(id)
}

func TestListNotes(t *testing.T) {
	app, fsys, logs := newTestServer(t)
	require.NoError(t, afero.WriteFile(fsys, folder+"/a.md", []byte("alpha"), 0o644))

	resp, body := do(t, app, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notes []map[string]any
	require.NoError(t, json.Unmarshal(body, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "a.md", notes[0]["id"])
	assert.Equal(t, "a", notes[0]["title"])
	assert.Equal(t, "alpha", notes[0]["content"])

	assert.Contains(t, logs.String(), `"path":"/api/notes"`)
}

func TestListUnreadableFolderIsEmpty(t *testing.T) {
	app, _, _ := newTestServerWith(t, Options{AllowAnyFolder: true})

	resp, body := do(t, app, http.MethodGet, "/api/notes?folder=/missing", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestCreateSaveShowFlow(t *testing.T) {
	app, fsys, _ := newTestServer(t)

	resp, body := do(t, app, http.MethodPost, "/api/notes", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created bridge.CreateResult
	require.NoError(t, json.Unmarshal(body, &created))
	require.True(t, created.Success)
	assert.Equal(t, "Untitled Note 1.md", created.ID)

	resp, _ = do(t, app, http.MethodPut, notePath(created.ID), map[string]string{"content": "# hi"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := afero.ReadFile(fsys, folder+"/Untitled Note 1.md")
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))

	resp, body = do(t, app, http.MethodGet, notePath(created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"content":"# hi"`)
}

func TestShowMissingNote(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp, body := do(t, app, http.MethodGet, notePath("ghost.md"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), bridge.MsgNotFound)
}

func TestDeleteNote(t *testing.T) {
	app, fsys, _ := newTestServer(t)
	require.NoError(t, afero.WriteFile(fsys, folder+"/a.md", nil, 0o644))

	resp, _ := do(t, app, http.MethodDelete, notePath("a.md"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exists, err := afero.Exists(fsys, folder+"/a.md")
	require.NoError(t, err)
	assert.False(t, exists)

	resp, body := do(t, app, http.MethodDelete, notePath("a.md"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var res bridge.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
}

func TestRenameCollisionIsConflict(t *testing.T) {
	app, fsys, _ := newTestServer(t)
	require.NoError(t, afero.WriteFile(fsys, folder+"/a.md", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, folder+"/b.md", []byte("b"), 0o644))

	resp, body := do(t, app, http.MethodPost, notePath("a.md")+"/rename", map[string]string{"title": "b"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var res bridge.RenameResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, bridge.MsgExists, res.Error)

	resp, body = do(t, app, http.MethodPost, notePath("a.md")+"/rename", map[string]string{"title": "c"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "c.md", res.NewID)
}

func TestRejectsInvalidNames(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp, _ := do(t, app, http.MethodPost, notePath("a.md")+"/rename", map[string]string{"title": "../escape"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPut, notePath(`a\b.md`), map[string]string{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNoFolderConfigured(t *testing.T) {
	fsys := afero.NewMemMapFs()
	logger := zerolog.Nop()
	srv := New(bridge.New(store.New(fsys, logger), logger), Options{Folder: func() string { return "" }}, logger)

	resp, body := do(t, srv.GetApp(), http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "no folder selected")
}

func TestForeignOriginIsRefused(t *testing.T) {
	app, fsys, _ := newTestServer(t)
	require.NoError(t, afero.WriteFile(fsys, folder+"/a.md", []byte("a"), 0o644))

	req := httptest.NewRequest(http.MethodOptions, notePath("a.md"), nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodDelete, notePath("a.md"), nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	exists, err := afero.Exists(fsys, folder+"/a.md")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConfiguredOriginGetsCORSHeaders(t *testing.T) {
	app, _, _ := newTestServerWith(t, Options{AllowOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestOnlyNoteFilesCanBeTouched(t *testing.T) {
	app, fsys, _ := newTestServer(t)
	require.NoError(t, afero.WriteFile(fsys, folder+"/.bashrc", []byte("export X=1"), 0o644))

	resp, _ := do(t, app, http.MethodDelete, notePath(".bashrc"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, notePath(".bashrc"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, notePath(".bashrc")+"/rename", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	exists, err := afero.Exists(fsys, folder+"/.bashrc")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOtherFoldersNeedOptIn(t *testing.T) {
	app, fsys, _ := newTestServer(t)
	require.NoError(t, fsys.MkdirAll("/home/u", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/home/u/a.md", []byte("a"), 0o644))

	resp, _ := do(t, app, http.MethodDelete, notePath("a.md")+"?folder=/home/u", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	exists, err := afero.Exists(fsys, "/home/u/a.md")
	require.NoError(t, err)
	assert.True(t, exists)

	resp, _ = do(t, app, http.MethodGet, "/api/notes?folder="+folder+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app, fsys, _ = newTestServerWith(t, Options{AllowAnyFolder: true})
	require.NoError(t, fsys.MkdirAll("/home/u", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/home/u/a.md", []byte("a"), 0o644))

	resp, _ = do(t, app, http.MethodDelete, notePath("a.md")+"?folder=/home/u", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRenameTrimsTitle(t *testing.T) {
	app, fsys, _ := newTestServer(t)
	require.NoError(t, afero.WriteFile(fsys, folder+"/a.md", []byte("a"), 0o644))

	resp, body := do(t, app, http.MethodPost, notePath("a.md")+"/rename", map[string]string{"title": "  foo "})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res bridge.RenameResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "foo.md", res.NewID)

	exists, err := afero.Exists(fsys, folder+"/foo.md")
	require.NoError(t, err)
	assert.True(t, exists)
}
