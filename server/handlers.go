package server

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/vitalvas/infotheory/xentropy"
)

var (
	errNotFinite    = errors.New("result is not a finite number")
	errTrailingData = errors.New("invalid request body: unexpected data after JSON value")
)

// Mode may also be sent as "datatype".
type entropyRequest struct {
	Dataset  json.RawMessage `json:"dataset"`
	Base     *float64        `json:"base"`
	Mode     string          `json:"mode"`
	Datatype string          `json:"datatype"`
}

type pairRequest struct {
	DatasetA json.RawMessage `json:"dataset_a"`
	DatasetB json.RawMessage `json:"dataset_b"`
	Base     *float64        `json:"base"`
	Mode     string          `json:"mode"`
	Datatype string          `json:"datatype"`
}

type gridRequest struct {
	Joint [][]float64 `json:"joint"`
	Base  *float64    `json:"base"`
}

type entropyResponse struct {
	Entropy float64       `json:"entropy"`
	Base    float64       `json:"base"`
	Mode    xentropy.Mode `json:"mode"`
}

type jointResponse struct {
	JointEntropy float64       `json:"joint_entropy"`
	Base         float64       `json:"base"`
	Mode         xentropy.Mode `json:"mode"`
}

type mutualResponse struct {
	MutualInformation float64       `json:"mutual_information"`
	Base              float64       `json:"base"`
	Mode              xentropy.Mode `json:"mode"`
}

type gridResponse struct {
	JointEntropy      float64 `json:"joint_entropy"`
	MutualInformation float64 `json:"mutual_information"`
	Base              float64 `json:"base"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("PONG"))
}

func (s *Server) handleEntropy(w http.ResponseWriter, r *http.Request) {
	var req entropyRequest
	if err := s.parseJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	base, mode, err := s.params(req.Base, cmp.Or(req.Mode, req.Datatype))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data, err := decodeDataset(req.Dataset)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("dataset: %w", err))
		return
	}

	h := xentropy.Entropy(data, xentropy.WithBase(base), xentropy.WithMode(mode))
	if err := finite(h); err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entropyResponse{Entropy: h, Base: base, Mode: mode})
}

func (s *Server) handleJointEntropy(w http.ResponseWriter, r *http.Request) {
	a, b, base, mode, err := s.parsePair(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	h, err := xentropy.JointEntropy(a, b, xentropy.WithBase(base), xentropy.WithMode(mode))
	if err == nil {
		err = finite(h)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, jointResponse{JointEntropy: h, Base: base, Mode: mode})
}

func (s *Server) handleMutualInformation(w http.ResponseWriter, r *http.Request) {
	a, b, base, mode, err := s.parsePair(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	mi, err := xentropy.MutualInformation(a, b, xentropy.WithBase(base), xentropy.WithMode(mode))
	if err == nil {
		err = finite(mi)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mutualResponse{MutualInformation: mi, Base: base, Mode: mode})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	var req gridRequest
	if err := s.parseJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	base := s.conf.Entropy.Base
	if req.Base != nil {
		base = *req.Base
	}

	grid, err := xentropy.NewGrid(req.Joint)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := gridResponse{
		JointEntropy:      xentropy.GridEntropy(grid, xentropy.WithBase(base)),
		MutualInformation: xentropy.GridMutualInformation(grid, xentropy.WithBase(base)),
		Base:              base,
	}
	if finite(resp.JointEntropy) != nil || finite(resp.MutualInformation) != nil {
		s.respondError(w, r, errNotFinite)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) parsePair(w http.ResponseWriter, r *http.Request) ([]float64, []float64, float64, xentropy.Mode, error) {
	var req pairRequest
	if err := s.parseJSON(w, r, &req); err != nil {
		return nil, nil, 0, xentropy.Mode{}, err
	}

	base, mode, err := s.params(req.Base, cmp.Or(req.Mode, req.Datatype))
	if err != nil {
		return nil, nil, 0, xentropy.Mode{}, err
	}

	a, err := decodeDataset(req.DatasetA)
	if err != nil {
		return nil, nil, 0, xentropy.Mode{}, fmt.Errorf("dataset_a: %w", err)
	}

	b, err := decodeDataset(req.DatasetB)
	if err != nil {
		return nil, nil, 0, xentropy.Mode{}, fmt.Errorf("dataset_b: %w", err)
	}

	return a, b, base, mode, nil
}

// params resolves the request base and mode, falling back to the configured defaults.
func (s *Server) params(base *float64, tag string) (float64, xentropy.Mode, error) {
	resolvedBase := s.conf.Entropy.Base
	if base != nil {
		resolvedBase = *base
	}

	mode := s.conf.Entropy.Mode
	if tag != "" {
		parsed, err := xentropy.ParseMode(tag)
		if err != nil {
			return 0, xentropy.Mode{}, err
		}
		mode = parsed
	}

	return resolvedBase, mode, nil
}

// decodeDataset turns a raw JSON value into a dataset. Arrays and series
// objects are accepted; anything else is an unsupported container.
func decodeDataset(raw json.RawMessage) ([]float64, error) {
	var value any

	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}

	return xentropy.FromAny(value)
}

func finite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errNotFinite
	}
	return nil
}

func (s *Server) parseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.conf.MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	// a single JSON value, optionally followed by whitespace
	err := dec.Decode(&struct{}{})
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &maxBytesErr):
		return fmt.Errorf("invalid request body: %w", err)
	default:
		return errTrailingData
	}
}

// statusFor maps a request error to its HTTP status. Everything that reaches
// it was caused by the request itself, so the fallback is 400.
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errNotFinite):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	s.logger.LogAttrs(r.Context(), slog.LevelWarn, "request failed",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)

	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
