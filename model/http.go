package model

type ResolveRequestBody struct {
	Name   string   `json:"name,omitempty"`
	Notes  []string `json:"notes,omitempty"`
	Octave int      `json:"octave,omitempty"`
}

type ResolveResponse struct {
	Notes    []string `json:"notes"`
	MidiKeys []uint8  `json:"midi_keys"`
}

type PlayRequestBody struct {
	ResolveRequestBody
	Volume   *float64 `json:"volume,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Wave     string   `json:"wave,omitempty"`
}

type PlayResponse struct {
	Id       string   `json:"id"`
	Notes    []string `json:"notes"`
	Duration float64  `json:"duration"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
