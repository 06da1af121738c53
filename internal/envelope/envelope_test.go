package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestCollection_BareArray(t *testing.T) {
	payload := []byte(`[{"id":"a","name":"x"},{"id":"b","name":"y"}]`)

	items, err := DecodeList[workspace](payload, "workspaces")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}

func TestCollection_ResourceWrapperKey(t *testing.T) {
	payload := []byte(`{"workspaces":[{"id":"a","name":"x"}]}`)

	items, err := DecodeList[workspace](payload, "workspaces")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "x", items[0].Name)
}

func TestCollection_DataWrapperKey(t *testing.T) {
	payload := []byte(`{"data":[{"id":"a","name":"x"}]}`)

	items, err := DecodeList[workspace](payload, "workspaces")

	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCollection_ItemsWrapperKey(t *testing.T) {
	payload := []byte(`{"items":[{"id":"a","name":"x"}]}`)

	items, err := DecodeList[workspace](payload, "workspaces")

	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCollection_NestedEnvelope(t *testing.T) {
	payload := []byte(`{"data":{"workspaces":[{"id":"a","name":"x"}]}}`)

	items, err := DecodeList[workspace](payload, "workspaces")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestCollection_KeyedMapOfEntities(t *testing.T) {
	payload := []byte(`{"ws-1":{"id":"a","name":"x"},"ws-2":{"id":"b","name":"y"}}`)

	items, err := DecodeList[workspace](payload, "workspaces")

	require.NoError(t, err)
	require.Len(t, items, 2)
	// Deterministic order: sorted by key.
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}

func TestCollection_SingleEntityWrapped(t *testing.T) {
	payload := []byte(`{"id":"a","name":"x"}`)

	items, err := DecodeList[workspace](payload, "workspaces")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestCollection_DegradesToEmpty(t *testing.T) {
	cases := map[string]string{
		"null":           `null`,
		"empty object":   `{}`,
		"unknown object": `{"something":"else"}`,
		"scalar":         `42`,
		"empty payload":  ``,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			items := Collection([]byte(payload), "workspaces")
			assert.Empty(t, items)
		})
	}
}

func TestCollection_EmptyArrayStaysEmpty(t *testing.T) {
	items := Collection([]byte(`[]`), "workspaces")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestEntity_DirectObject(t *testing.T) {
	payload := []byte(`{"id":"a","name":"x"}`)

	ws, err := DecodeOne[workspace](payload, "workspace")

	require.NoError(t, err)
	assert.Equal(t, "a", ws.ID)
	assert.Equal(t, "x", ws.Name)
}

func TestEntity_WrapperKey(t *testing.T) {
	payload := []byte(`{"workspace":{"id":"a","name":"x"}}`)

	ws, err := DecodeOne[workspace](payload, "workspace")

	require.NoError(t, err)
	assert.Equal(t, "a", ws.ID)
}

func TestEntity_DataWrapper(t *testing.T) {
	payload := []byte(`{"data":{"id":"a","name":"x"}}`)

	ws, err := DecodeOne[workspace](payload, "workspace")

	require.NoError(t, err)
	assert.Equal(t, "a", ws.ID)
}

func TestEntity_UnknownShapeIsBestEffort(t *testing.T) {
	// No id/name and no wrapper key: the raw payload is handed back so the
	// caller decodes whatever fields do match.
	type metrics struct {
		TotalFunctions int `json:"total_functions"`
	}
	payload := []byte(`{"total_functions":8}`)

	m, err := DecodeOne[metrics](payload, "metrics")

	require.NoError(t, err)
	assert.Equal(t, 8, m.TotalFunctions)
}

func TestEntity_MetricsWrapper(t *testing.T) {
	type metrics struct {
		TotalFunctions int `json:"total_functions"`
	}
	payload := []byte(`{"metrics":{"total_functions":8}}`)

	m, err := DecodeOne[metrics](payload, "metrics")

	require.NoError(t, err)
	assert.Equal(t, 8, m.TotalFunctions)
}

func TestCollection_ContentPreserved(t *testing.T) {
	raw := `[{"id":"a","name":"x","owner_id":7}]`

	items := Collection([]byte(raw), "workspaces")

	require.Len(t, items, 1)
	assert.JSONEq(t, `{"id":"a","name":"x","owner_id":7}`, string(items[0]))
}

func TestDecodeList_MalformedElement(t *testing.T) {
	payload := []byte(`[{"id":"a","name":"x"},"not-an-object"]`)

	_, err := DecodeList[workspace](payload, "workspaces")

	assert.Error(t, err)
}

func TestCollection_MapValuesNotAllEntities(t *testing.T) {
	// One value fails the shape check, so the map heuristic must not fire.
	payload := []byte(`{"a":{"id":"1","name":"x"},"b":{"count":2}}`)

	items := Collection(payload, "workspaces")

	assert.Empty(t, items)
}

func TestCollection_RawMessagesRoundTrip(t *testing.T) {
	payload := []byte(`{"functions":[{"id":"f1","name":"fn","runtime":"PYTHON"}]}`)

	raws := Collection(payload, "functions")

	require.Len(t, raws, 1)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raws[0], &decoded))
	assert.Contains(t, decoded, "runtime")
}
