package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gopxl/beep"
	"github.com/google/uuid"
	"github.com/jsphweid/chordplay/audio"
	"github.com/jsphweid/chordplay/model"
	"github.com/stretchr/testify/assert"
)

func do(h http.Handler, method string, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetChord(t *testing.T) {
	w := do(NewRouter(nil), http.MethodGet, "/chords/Abmaj7", nil)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))

	var res model.ResolveResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal([]string{"G#4", "C5", "D#5", "G5"}, res.Notes)
	assert.Equal([]uint8{68, 72, 75, 79}, res.MidiKeys)
}

func TestGetChordWithOctaveAndSharp(t *testing.T) {
	w := do(NewRouter(nil), http.MethodGet, "/chords/C%23maj7%235?octave=3", nil)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)

	var res model.ResolveResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal([]string{"C#3", "F3", "A3", "C4"}, res.Notes)
}

func TestGetChordErrors(t *testing.T) {
	assert := assert.New(t)

	w := do(NewRouter(nil), http.MethodGet, "/chords/Cxyz", nil)
	assert.Equal(http.StatusBadRequest, w.Code)
	var res model.ErrorResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(res.Error, "unknown chord quality")

	w = do(NewRouter(nil), http.MethodGet, "/chords/Cmaj?octave=high", nil)
	assert.Equal(http.StatusBadRequest, w.Code)
}

func TestPostResolveNoteList(t *testing.T) {
	body := model.ResolveRequestBody{Notes: []string{"Ab4", "C", "E"}}
	w := do(NewRouter(nil), http.MethodPost, "/resolve", body)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)

	var res model.ResolveResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal([]string{"G#4", "C5", "E5"}, res.Notes)
}

func TestPostResolveName(t *testing.T) {
	body := model.ResolveRequestBody{Name: "Bbmin", Octave: 2}
	w := do(NewRouter(nil), http.MethodPost, "/resolve", body)

	var res model.ResolveResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"A#2", "C#3", "F3"}, res.Notes)
}

func TestPostResolveMissingSpec(t *testing.T) {
	w := do(NewRouter(nil), http.MethodPost, "/resolve", model.ResolveRequestBody{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostPlay(t *testing.T) {
	oc := audio.NewOfflineContext(beep.SampleRate(8000))
	duration := 0.1
	body := model.PlayRequestBody{
		ResolveRequestBody: model.ResolveRequestBody{Name: "Dmin7"},
		Duration:           &duration,
	}
	w := do(NewRouter(oc), http.MethodPost, "/play", body)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)

	var res model.PlayResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	_, err := uuid.Parse(res.Id)
	assert.NoError(err)
	assert.Equal([]string{"D4", "F4", "A4", "C5"}, res.Notes)
	assert.Equal(0.1, res.Duration)

	assert.NotEmpty(oc.Render())
}

func TestPostPlayWithoutAudio(t *testing.T) {
	body := model.PlayRequestBody{ResolveRequestBody: model.ResolveRequestBody{Name: "Dmin7"}}
	w := do(NewRouter(nil), http.MethodPost, "/play", body)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPostPlayBadChord(t *testing.T) {
	oc := audio.NewOfflineContext(beep.SampleRate(8000))
	body := model.PlayRequestBody{ResolveRequestBody: model.ResolveRequestBody{Name: "D"}}
	w := do(NewRouter(oc), http.MethodPost, "/play", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostPlayWave(t *testing.T) {
	oc := audio.NewOfflineContext(beep.SampleRate(8000))
	duration := 0.1
	body := model.PlayRequestBody{
		ResolveRequestBody: model.ResolveRequestBody{Name: "Emin"},
		Duration:           &duration,
		Wave:               "saw",
	}
	w := do(NewRouter(oc), http.MethodPost, "/play", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, oc.Render())

	body.Wave = "kazoo"
	w = do(NewRouter(oc), http.MethodPost, "/play", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res model.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Error, "unknown wave")
}
