package alpacatest

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

func get(t *testing.T, s *Server, path string, query url.Values) (int, string) {
	t.Helper()
	resp, err := http.Get(s.URL() + path + "?" + query.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func put(t *testing.T, s *Server, path string, form url.Values) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, s.URL()+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func decode(t *testing.T, body string) *wire.Envelope {
	t.Helper()
	env, err := wire.DecodeEnvelope([]byte(body))
	require.NoError(t, err)
	return env
}

func TestServerReadsStoredValue(t *testing.T) {
	s := NewServer(t)
	s.SetValue("Telescope", 0, "Name", "Sim")

	status, body := get(t, s, "/api/v1/telescope/0/name", url.Values{"ClientTransactionID": {"12"}})
	assert.Equal(t, 200, status)

	env := decode(t, body)
	assert.Equal(t, "Sim", env.Value)
	assert.Equal(t, uint32(12), env.ClientTransactionID)
	assert.Equal(t, uint32(1), env.ServerTransactionID)
}

func TestServerUnknownAttributeIsNotImplemented(t *testing.T) {
	s := NewServer(t)

	_, body := get(t, s, "/api/v1/camera/1/gain", nil)
	env := decode(t, body)
	assert.Equal(t, wire.CodeNotImplemented, env.ErrorNumber)
	assert.Equal(t, "Property gain is not implemented", env.ErrorMessage)
}

func TestServerConnectedWrite(t *testing.T) {
	s := NewServer(t)

	_, body := put(t, s, "/api/v1/dome/0/connected", url.Values{"connected": {"True"}})
	assert.True(t, decode(t, body).IsSuccess())

	v, ok := s.Value("dome", 0, "connected")
	require.True(t, ok)
	assert.Equal(t, true, v)

	_, body = put(t, s, "/api/v1/dome/0/connected", url.Values{"Connected": {"yes"}})
	assert.Equal(t, wire.CodeInvalidValue, decode(t, body).ErrorNumber)
}

func TestServerForcedReplies(t *testing.T) {
	s := NewServer(t)
	s.SetValue("telescope", 0, "tracking", true)
	s.SetError("telescope", 0, "tracking", 0x500, "mount fault")

	_, body := get(t, s, "/api/v1/telescope/0/tracking", nil)
	env := decode(t, body)
	assert.Equal(t, 0x500, env.ErrorNumber)
	assert.Equal(t, "mount fault", env.ErrorMessage)

	s.SetRawReply("telescope", 0, "tracking", 503, "busy")
	status, body := get(t, s, "/api/v1/telescope/0/tracking", nil)
	assert.Equal(t, 503, status)
	assert.Equal(t, "busy", body)
}

func TestServerRecordsRequests(t *testing.T) {
	s := NewServer(t)

	get(t, s, "/api/v1/focuser/2/position", url.Values{"ClientID": {"9"}})
	put(t, s, "/api/v1/focuser/2/move", url.Values{"Position": {"100"}})

	reqs := s.Requests()
	require.Len(t, reqs, 2)

	assert.Equal(t, Recorded{
		Method:       "GET",
		APIVersion:   1,
		DeviceType:   "focuser",
		DeviceNumber: 2,
		Attribute:    "position",
		Params:       url.Values{"ClientID": {"9"}},
		Query:        url.Values{"ClientID": {"9"}},
		Form:         url.Values{},
	}, reqs[0])

	assert.Equal(t, "PUT", reqs[1].Method)
	assert.Equal(t, "100", reqs[1].Form.Get("Position"))
	assert.Empty(t, reqs[1].Query)
}

func TestServerRejectsBadPaths(t *testing.T) {
	s := NewServer(t)

	status, _ := get(t, s, "/management/apiversions", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = get(t, s, "/api/v1/telescope/x/name", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = get(t, s, "/api/v2/telescope/0/name", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	_, ok := s.LastRequest()
	assert.False(t, ok)
}
