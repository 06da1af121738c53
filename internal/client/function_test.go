package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfn/skyfn-console/internal/domain"
)

func TestFunctionList(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/", r.URL.Path)
		w.Write([]byte(`{"functions":[{"id":"f1","name":"resizer","runtime":"NODEJS","status":"active"}]}`))
	})
	svc := NewFunctionService(httpc)

	fns, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, domain.RuntimeNodeJS, fns[0].Runtime)
}

func TestFunctionGet_IncludesCode(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/f1", r.URL.Path)
		w.Write([]byte(`{"id":"f1","name":"resizer","runtime":"PYTHON","status":"active","code":"def handler(e, c):\n    pass\n"}`))
	})
	svc := NewFunctionService(httpc)

	fn, err := svc.Get(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "resizer", fn.Name)
	assert.Contains(t, fn.Code, "def handler")
}

func TestFunctionCreate_OmitsExecutionTypeWhenUnset(t *testing.T) {
	var gotBody map[string]any
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"f9","name":"greeter","runtime":"PYTHON","status":"pending"}`))
	})
	svc := NewFunctionService(httpc)

	fn, err := svc.Create(context.Background(), domain.FunctionCreate{
		Name:        "greeter",
		Runtime:     domain.RuntimePython,
		WorkspaceID: "w1",
		Code:        "def handler(e, c):\n    pass\n",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FunctionStatusPending, fn.Status)
	_, present := gotBody["execution_type"]
	assert.False(t, present, "unset execution type stays off the wire")
}

func TestDeploy_SuccessResult(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/f1/deploy", r.URL.Path)
		w.Write([]byte(`{"status":"SUCCESS","knative_url":"https://resizer.default.example.com","message":"Function deployed successfully"}`))
	})
	svc := NewFunctionService(httpc)

	result, err := svc.Deploy(context.Background(), "f1", nil)

	require.NoError(t, err)
	assert.Equal(t, domain.DeploySuccess, result.Status)
	assert.Equal(t, "https://resizer.default.example.com", result.KnativeURL)
	assert.Nil(t, result.Error)
}

func TestDeploy_FailureResult(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"FAILED","error":{"code":"DEPLOYMENT_FAILED","message":"Failed to deploy function to cluster"}}`))
	})
	svc := NewFunctionService(httpc)

	result, err := svc.Deploy(context.Background(), "f1", nil)

	require.NoError(t, err)
	assert.Equal(t, domain.DeployFailed, result.Status)
	assert.Empty(t, result.KnativeURL)
	require.NotNil(t, result.Error)
	assert.Equal(t, "DEPLOYMENT_FAILED", result.Error.Code)
}

func TestInvoke_DefaultsEmptyPayload(t *testing.T) {
	var gotBody []byte
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/f1/invoke", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"job_id":"j1","status":"success","output":{"ok":true},"duration":321}`))
	})
	svc := NewFunctionService(httpc)

	result, err := svc.Invoke(context.Background(), "f1", nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(gotBody))
	assert.Equal(t, "j1", result.JobID)
	assert.Equal(t, domain.JobStatusSuccess, result.Status)
	assert.Equal(t, int64(321), result.Duration)
}

func TestFunctionJobs_ServerTotalWins(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/f1/jobs", r.URL.Path)
		// Server reports a larger total than the page it returned.
		w.Write([]byte(`{"jobs":[{"id":"j1","function_id":"f1","status":"success"}],"total":7}`))
	})
	svc := NewFunctionService(httpc)

	list, err := svc.Jobs(context.Background(), "f1")

	require.NoError(t, err)
	require.Len(t, list.Jobs, 1)
	assert.Equal(t, 7, list.Total)
}

func TestFunctionJobs_FallbackTotal(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"j1","function_id":"f1","status":"success"},{"id":"j2","function_id":"f1","status":"error"}]`))
	})
	svc := NewFunctionService(httpc)

	list, err := svc.Jobs(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestFunctionMetrics(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/f1/metrics", r.URL.Path)
		w.Write([]byte(`{"total_executions":10,"success_count":9,"error_count":1,"avg_duration":812.5}`))
	})
	svc := NewFunctionService(httpc)

	m, err := svc.Metrics(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, int64(10), m.TotalExecutions)
	assert.InDelta(t, 812.5, m.AvgDuration, 0.001)
}

func TestJobGet(t *testing.T) {
	httpc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/j1", r.URL.Path)
		w.Write([]byte(`{"id":"j1","function_id":"f1","status":"running"}`))
	})
	svc := NewJobService(httpc)

	job, err := svc.Get(context.Background(), "j1")

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusRunning, job.Status)
	assert.False(t, job.Status.Terminal())
}
