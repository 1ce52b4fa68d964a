// Package alpacatest provides an in-process fake Alpaca server for tests.
package alpacatest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/alpaca-client/alpaca-go/pkg/version"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recorded is a request received by the fake server.
type Recorded struct {
	Method       string
	APIVersion   uint32
	DeviceType   string
	DeviceNumber uint32
	Attribute    string

	// Params holds query parameters for GET and form parameters for PUT.
	Params url.Values

	// Query and Form are kept apart so tests can check the encoding.
	Query url.Values
	Form  url.Values
}

// HandlerFunc computes the envelope for a request.
type HandlerFunc func(req Recorded) wire.Envelope

type fault struct {
	code    int
	message string
}

type rawReply struct {
	status int
	body   string
}

// Server is a fake Alpaca device server.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	values   map[string]any
	faults   map[string]fault
	raw      map[string]rawReply
	handlers map[string]HandlerFunc
	requests []Recorded
	serverTx uint32
}

// NewServer starts a fake server. It is closed when the test ends.
func NewServer(tb interface{ Cleanup(func()) }) *Server {
	s := &Server{
		values:   make(map[string]any),
		faults:   make(map[string]fault),
		raw:      make(map[string]rawReply),
		handlers: make(map[string]HandlerFunc),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	tb.Cleanup(s.srv.Close)
	return s
}

// Host returns host:port of the server.
func (s *Server) Host() string {
	return strings.TrimPrefix(s.srv.URL, "http://")
}

// URL returns the server base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close stops the server.
func (s *Server) Close() {
	s.srv.Close()
}

func key(deviceType string, number uint32, attribute string) string {
	return fmt.Sprintf("%s/%d/%s", strings.ToLower(deviceType), number, strings.ToLower(attribute))
}

// SetValue sets the value returned for an attribute.
func (s *Server) SetValue(deviceType string, number uint32, attribute string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key(deviceType, number, attribute)] = v
}

// Value returns the stored value of an attribute.
func (s *Server) Value(deviceType string, number uint32, attribute string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key(deviceType, number, attribute)]
	return v, ok
}

// SetError makes an attribute answer with an Alpaca error number.
func (s *Server) SetError(deviceType string, number uint32, attribute string, code int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[key(deviceType, number, attribute)] = fault{code: code, message: message}
}

// SetRawReply makes an attribute answer with a fixed status and body.
func (s *Server) SetRawReply(deviceType string, number uint32, attribute string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[key(deviceType, number, attribute)] = rawReply{status: status, body: body}
}

// Handle installs a handler computing the envelope of an attribute.
func (s *Server) Handle(deviceType string, number uint32, attribute string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[key(deviceType, number, attribute)] = h
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	// /api/v1/{type}/{number}/{attribute}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 5 || parts[0] != "api" {
		http.Error(w, "unknown path "+r.URL.Path, http.StatusNotFound)
		return
	}
	apiVersion, err := version.ParsePathSegment(parts[1])
	if err != nil || apiVersion != version.APIVersion {
		http.Error(w, "unsupported API version "+parts[1], http.StatusBadRequest)
		return
	}
	number, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		http.Error(w, "bad device number "+parts[3], http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := Recorded{
		Method:       r.Method,
		APIVersion:   apiVersion,
		DeviceType:   parts[2],
		DeviceNumber: uint32(number),
		Attribute:    parts[4],
		Query:        r.URL.Query(),
		Form:         r.PostForm,
	}
	if r.Method == http.MethodGet {
		rec.Params = rec.Query
	} else {
		rec.Params = rec.Form
	}

	k := key(rec.DeviceType, rec.DeviceNumber, rec.Attribute)

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	s.serverTx++
	serverTx := s.serverTx
	raw, hasRaw := s.raw[k]
	f, hasFault := s.faults[k]
	h := s.handlers[k]
	s.mu.Unlock()

	if hasRaw {
		w.WriteHeader(raw.status)
		_, _ = w.Write([]byte(raw.body))
		return
	}

	var env wire.Envelope
	switch {
	case hasFault:
		env = wire.Envelope{ErrorNumber: f.code, ErrorMessage: f.message}
	case h != nil:
		env = h(rec)
	case r.Method == http.MethodGet:
		env = s.read(k, rec)
	default:
		env = s.write(k, rec)
	}

	env.ClientTransactionID = paramUint(rec.Params, wire.ParamClientTransactionID)
	env.ServerTransactionID = serverTx

	data, err := json.Marshal(&env)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) read(k string, rec Recorded) wire.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[k]
	if !ok {
		return wire.Envelope{
			ErrorNumber:  wire.CodeNotImplemented,
			ErrorMessage: "Property " + rec.Attribute + " is not implemented",
		}
	}
	return wire.Envelope{Value: v}
}

func (s *Server) write(k string, rec Recorded) wire.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.EqualFold(rec.Attribute, "connected") {
		raw := paramGet(rec.Params, wire.ParamConnected)
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return wire.Envelope{
				ErrorNumber:  wire.CodeInvalidValue,
				ErrorMessage: "Connected must be True or False, got " + strconv.Quote(raw),
			}
		}
		s.values[k] = b
		return wire.Envelope{}
	}

	// Methods such as action or commandstring answer with a stored value.
	if v, ok := s.values[k]; ok {
		return wire.Envelope{Value: v}
	}
	return wire.Envelope{}
}

// paramGet looks a parameter up case-insensitively, as Alpaca servers do.
func paramGet(params url.Values, name string) string {
	for k, v := range params {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func paramUint(params url.Values, name string) uint32 {
	v, err := strconv.ParseUint(paramGet(params, name), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
