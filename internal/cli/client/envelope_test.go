package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CodeEnvelope(t *testing.T) {
	t.Run("success returns data unchanged", func(t *testing.T) {
		data, apiErr := normalize([]byte(`{"code":0,"message":"OK","data":{"id":7,"name":"east"}}`))
		require.Nil(t, apiErr)
		assert.JSONEq(t, `{"id":7,"name":"east"}`, string(data))
	})

	t.Run("non-zero code fails with backend message", func(t *testing.T) {
		_, apiErr := normalize([]byte(`{"code":40001,"message":"stock exhausted"}`))
		require.NotNil(t, apiErr)
		assert.Equal(t, "stock exhausted", apiErr.Message)
	})

	t.Run("non-zero code without message uses default", func(t *testing.T) {
		_, apiErr := normalize([]byte(`{"code":-1}`))
		require.NotNil(t, apiErr)
		assert.Equal(t, msgRequestFailed, apiErr.Message)
	})

	t.Run("non-numeric code is a failure", func(t *testing.T) {
		_, apiErr := normalize([]byte(`{"code":"oops","message":"bad"}`))
		require.NotNil(t, apiErr)
		assert.Equal(t, "bad", apiErr.Message)
	})
}

func TestNormalize_SuccessEnvelope(t *testing.T) {
	t.Run("true returns data unchanged", func(t *testing.T) {
		data, apiErr := normalize([]byte(`{"success":true,"data":[1,2,3]}`))
		require.Nil(t, apiErr)
		assert.JSONEq(t, `[1,2,3]`, string(data))
	})

	t.Run("false fails with backend message", func(t *testing.T) {
		_, apiErr := normalize([]byte(`{"success":false,"message":"not found"}`))
		require.NotNil(t, apiErr)
		assert.Equal(t, "not found", apiErr.Message)
	})

	t.Run("false without message uses default", func(t *testing.T) {
		_, apiErr := normalize([]byte(`{"success":false}`))
		require.NotNil(t, apiErr)
		assert.Equal(t, msgRequestFailed, apiErr.Message)
	})

	t.Run("non-boolean success field passes through", func(t *testing.T) {
		body := []byte(`{"success":"yes","value":1}`)
		data, apiErr := normalize(body)
		require.Nil(t, apiErr)
		assert.Equal(t, string(body), string(data))
	})
}

func TestNormalize_Passthrough(t *testing.T) {
	cases := []string{
		`{"id":1,"name":"plain"}`,
		`[{"id":1},{"id":2}]`,
		`"just a string"`,
		`42`,
	}
	for _, body := range cases {
		data, apiErr := normalize([]byte(body))
		require.Nil(t, apiErr, "body %s", body)
		assert.Equal(t, body, string(data))
	}
}

func TestNormalize_CodeWinsOverSuccess(t *testing.T) {
	// A body carrying both shapes is judged by the code field
	_, apiErr := normalize([]byte(`{"code":1,"success":true,"message":"code says no"}`))
	require.NotNil(t, apiErr)
	assert.Equal(t, "code says no", apiErr.Message)

	data, apiErr := normalize([]byte(`{"code":0,"success":false,"data":5}`))
	require.Nil(t, apiErr)
	assert.Equal(t, "5", string(data))
}

func TestHTTPFailureMessage(t *testing.T) {
	t.Run("backend message field wins", func(t *testing.T) {
		fields := parseFields([]byte(`{"message":"quota exceeded","error":"ignored"}`))
		assert.Equal(t, "quota exceeded", httpFailureMessage(400, fields))
	})

	t.Run("error field is second", func(t *testing.T) {
		fields := parseFields([]byte(`{"error":"invalid credentials"}`))
		assert.Equal(t, "invalid credentials", httpFailureMessage(401, fields))
	})

	t.Run("status defaults", func(t *testing.T) {
		assert.Equal(t, msgSessionExpired, httpFailureMessage(401, nil))
		assert.Equal(t, msgForbidden, httpFailureMessage(403, nil))
		assert.Equal(t, msgNotFound, httpFailureMessage(404, nil))
		assert.Equal(t, msgServerBusy, httpFailureMessage(500, nil))
		assert.Equal(t, msgServerBusy, httpFailureMessage(503, nil))
	})

	t.Run("other statuses carry the code", func(t *testing.T) {
		assert.Equal(t, "request failed (418)", httpFailureMessage(418, nil))
	})
}
