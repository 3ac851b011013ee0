package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/eventbus"
)

type fakeRunService struct {
	lastRunID    string
	lastReq      RunRequest
	cancelledIDs []string
}

func (f *fakeRunService) StartRun(_ context.Context, runID string, req RunRequest, stream *eventbus.Stream) {
	f.lastRunID = runID
	f.lastReq = req
	stream.Publish(domain.Event{RunID: runID, Type: domain.EventRunComplete})
}

func (f *fakeRunService) Cancel(runID string) {
	f.cancelledIDs = append(f.cancelledIDs, runID)
}

type fakeResultStore struct {
	files   []string
	reports map[string]domain.RunReport
}

func (f *fakeResultStore) List() []string { return f.files }

func (f *fakeResultStore) Get(filename string) (domain.RunReport, bool) {
	r, ok := f.reports[filename]
	return r, ok
}

func TestHandleRunReturnsRunIDMatchingRegisteredStream(t *testing.T) {
	runs := &fakeRunService{}
	registry := eventbus.NewRegistry()
	srv := NewServer(runs, &fakeResultStore{}, registry)

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"difficulty":"easy","num_questions":5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, out.RunID, runs.lastRunID)
	assert.Equal(t, "easy", runs.lastReq.Difficulty)
	assert.Equal(t, 5, runs.lastReq.NumQuestions)

	_, ok := registry.Lookup(out.RunID)
	assert.True(t, ok, "the stream registered for the returned run_id should still be findable")
}

func TestHandleRunRejectsInvalidDifficulty(t *testing.T) {
	srv := NewServer(&fakeRunService{}, &fakeResultStore{}, eventbus.NewRegistry())

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"difficulty":"impossible"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleListFilesReturnsStoreContents(t *testing.T) {
	store := &fakeResultStore{files: []string{"eval_results_a.json", "eval_results_b.json"}}
	srv := NewServer(&fakeRunService{}, store, eventbus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "eval_results_a.json")
}

func TestHandleGetResultNotFound(t *testing.T) {
	srv := NewServer(&fakeRunService{}, &fakeResultStore{reports: map[string]domain.RunReport{}}, eventbus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/results/missing.json", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleGetResultFound(t *testing.T) {
	report := domain.RunReport{Summary: domain.RunSummary{DatasetName: "sales", Total: 1, Passed: 1}}
	store := &fakeResultStore{reports: map[string]domain.RunReport{"eval_results_a.json": report}}
	srv := NewServer(&fakeRunService{}, store, eventbus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/results/eval_results_a.json", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sales")
}

func TestHandleEventsNotFoundForUnknownRun(t *testing.T) {
	srv := NewServer(&fakeRunService{}, &fakeResultStore{}, eventbus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/run/does-not-exist/events", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleCancelRunForwardsToRunService(t *testing.T) {
	runs := &fakeRunService{}
	registry := eventbus.NewRegistry()
	srv := NewServer(runs, &fakeResultStore{}, registry)

	startReq := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{}`))
	startReq.Header.Set("Content-Type", "application/json")
	startResp, err := srv.app.Test(startReq)
	require.NoError(t, err)
	defer startResp.Body.Close()

	body, err := io.ReadAll(startResp.Body)
	require.NoError(t, err)
	var out struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))

	cancelReq := httptest.NewRequest(http.MethodDelete, "/run/"+out.RunID, nil)
	cancelResp, err := srv.app.Test(cancelReq)
	require.NoError(t, err)
	defer cancelResp.Body.Close()

	assert.Equal(t, http.StatusAccepted, cancelResp.StatusCode)
	assert.Equal(t, []string{out.RunID}, runs.cancelledIDs)
}

func TestHandleCancelRunNotFoundForUnknownRun(t *testing.T) {
	srv := NewServer(&fakeRunService{}, &fakeResultStore{}, eventbus.NewRegistry())

	req := httptest.NewRequest(http.MethodDelete, "/run/does-not-exist", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
