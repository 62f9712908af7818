package cmd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordplay/audio"
	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/constants"
	"github.com/jsphweid/chordplay/model"
	"github.com/jsphweid/chordplay/noteplayer"
	"github.com/jsphweid/chordplay/player"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var servePort string

var errNoAudio = errors.New("no audio device")

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves chord resolution and playback over HTTP`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var ctx audio.Context
		if sc, err := audio.Default(); err != nil {
			log.Error("No audio device, /play will fail", "err", err)
		} else {
			ctx = sc
		}
		return serve(ctx, servePort)
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func specFromBody(body model.ResolveRequestBody) model.ChordSpec {
	if len(body.Notes) > 0 {
		return model.NoteList(body.Notes)
	}
	if body.Name != "" {
		return model.Name(body.Name)
	}
	return nil
}

func octaveOrDefault(octave int) int {
	if octave == 0 {
		return constants.DefaultOctave
	}
	return octave
}

func resolveResponse(notes model.Notes) (model.ResolveResponse, error) {
	res := model.ResolveResponse{Notes: chord.Names(notes), MidiKeys: make([]uint8, len(notes))}
	for i, n := range notes {
		key, err := chord.MidiKey(n)
		if err != nil {
			return res, err
		}
		res.MidiKeys[i] = key
	}
	return res, nil
}

func respondWithNotes(w http.ResponseWriter, spec model.ChordSpec, octave int) {
	notes, err := chord.Resolve(spec, octave)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := resolveResponse(notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, res)
}

func HandleChord(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	octave := constants.DefaultOctave
	if o := r.URL.Query().Get("octave"); o != "" {
		parsed, err := strconv.Atoi(o)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		octave = parsed
	}
	respondWithNotes(w, model.Name(name), octave)
}

func HandleResolve(w http.ResponseWriter, r *http.Request) {
	var input model.ResolveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	respondWithNotes(w, specFromBody(input), octaveOrDefault(input.Octave))
}

func handlePlay(ctx audio.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctx == nil {
			writeError(w, http.StatusServiceUnavailable, errNoAudio)
			return
		}

		var input model.PlayRequestBody
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		wave, err := noteplayer.ParseWave(input.Wave)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		cp, err := player.New(specFromBody(input.ResolveRequestBody), ctx,
			player.WithFactory(noteplayer.SynthFactory{Wave: wave}))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		cp.SetOctave(octaveOrDefault(input.Octave))
		if input.Volume != nil {
			cp.SetVolume(*input.Volume)
		}
		if input.Duration != nil {
			cp.SetDuration(*input.Duration)
		}

		id, err := cp.Play(func() {
			log.Info("Finished playing", "chord", cp.Spec())
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		notes := chord.Names(cp.Resolved())
		log.Info("Playing", "id", id, "notes", notes, "wave", wave)
		writeJSON(w, model.PlayResponse{Id: id, Notes: notes, Duration: cp.Duration()})
	}
}

// NewRouter wires the HTTP API. ctx may be nil, in which case /play fails.
func NewRouter(ctx audio.Context) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/chords/{name}", HandleChord).Methods("GET")
	router.HandleFunc("/resolve", HandleResolve).Methods("POST")
	router.HandleFunc("/play", handlePlay(ctx)).Methods("POST")
	return cors.Default().Handler(router)
}

func serve(ctx audio.Context, port string) error {
	log.Info("Serving", "port", port)
	return http.ListenAndServe(":"+port, NewRouter(ctx))
}
