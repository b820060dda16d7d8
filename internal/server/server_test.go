package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadit/ethqr"
	"github.com/mkadit/ethqr/internal/metrics"
)

const restaurantJSON = `{
	"merchant": {"name": "Restaurant", "city": "Dire Dawa", "category_code": "5812"},
	"schemes": [{"type": "interbank", "guid": "581b314e257f41bfbbdc6384daa31d16", "bic": "CBETETAA", "account": "10000171234567890"}],
	"amount": "50.00",
	"additional_data": {"bill_number": "INV-001", "reference_label": "ORDER-123"}
}`

const restaurantPayload = "00020101021228690032581b314e257f41bfbbdc6384daa31d160108CBETETAA021710000171234567890520458125303230540550.005802ET5910Restaurant6009Dire Dawa62240107INV-0010509ORDER-12363040CF2"

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreatePayload(t *testing.T) {
	m := metrics.New()
	h := New(Config{Metrics: m}).Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/payloads", restaurantJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp payloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, restaurantPayload, resp.Payload)
	assert.Equal(t, "dynamic", resp.Mode)
	assert.Equal(t, len(restaurantPayload), resp.Length)
	assert.Nil(t, resp.errorResponse)

	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "ethqr_payload_builds_total"))
}

func TestCreatePayloadValidationError(t *testing.T) {
	h := New(Config{}).Handler()
	body := strings.Replace(restaurantJSON, `"5812"`, `"581a"`, 1)

	rec := do(t, h, http.MethodPost, "/api/v1/payloads", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "category_code", resp.Field)
}

func TestCreatePayloadBadRequests(t *testing.T) {
	h := New(Config{}).Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/payloads", `{"merchant":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/payloads", `{"unknown": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := strings.Replace(restaurantJSON, `"interbank"`, `"amex"`, 1)
	rec = do(t, h, http.MethodPost, "/api/v1/payloads", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBatch(t *testing.T) {
	h := New(Config{Concurrency: 2}).Handler()
	bad := strings.Replace(restaurantJSON, `"CBETETAA"`, `"CBETETAAX"`, 1)
	unsupported := strings.Replace(restaurantJSON, `"interbank"`, `"amex"`, 1)
	body := `{"payloads": [` + restaurantJSON + `,` + bad + `,` + unsupported + `]}`

	rec := do(t, h, http.MethodPost, "/api/v1/payloads/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Results []struct {
			Payload string `json:"payload"`
			Error   string `json:"error"`
			Field   string `json:"field"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, restaurantPayload, resp.Results[0].Payload)
	assert.Equal(t, "bic", resp.Results[1].Field)
	assert.Empty(t, resp.Results[1].Payload)
	assert.Contains(t, resp.Results[2].Error, "unsupported scheme")
}

func TestCreateBatchEmpty(t *testing.T) {
	h := New(Config{}).Handler()
	rec := do(t, h, http.MethodPost, "/api/v1/payloads/batch", `{"payloads": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify(t *testing.T) {
	h := New(Config{}).Handler()

	tests := []struct {
		payload string
		valid   bool
		reason  string
	}{
		{restaurantPayload, true, ""},
		{restaurantPayload[:len(restaurantPayload)-1] + "0", false, ethqr.ErrInvalidCRC.Error()},
		{"1234567", false, ethqr.ErrInvalidFormat.Error()},
	}
	for _, tc := range tests {
		body, err := json.Marshal(verifyRequest{Payload: tc.payload})
		require.NoError(t, err)
		rec := do(t, h, http.MethodPost, "/api/v1/verify", string(body))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp verifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, tc.valid, resp.Valid)
		assert.Equal(t, tc.reason, resp.Reason)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := New(Config{}).Handler()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(t, h, http.MethodPost, "/api/v1/payloads", restaurantJSON)
	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ethqr_payload_builds_total{mode="dynamic",outcome="ok"} 1`)
}
