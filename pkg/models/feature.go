package models

import "encoding/json"

// Feature is one named entry in a monster's trait/action lists, or a lair
// action. Cost is only meaningful for legendary actions (0 means unset).
type Feature struct {
	Name        string `json:"name"`
	Cost        int    `json:"cost,omitempty"`
	Description string `json:"description"`
}

// EncodeFeatures serializes a feature list to the JSON text form stored in
// the database. A nil or empty list encodes to the empty string so legacy
// rows and blank form fields look the same.
func EncodeFeatures(fs []Feature) (string, error) {
	if len(fs) == 0 {
		return "", nil
	}
	b, err := json.Marshal(fs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeFeatures parses the stored JSON text form. Empty or "null" input
// yields a nil list. Decode(Encode(x)) must round-trip for edit flows to
// re-serialize without loss.
func DecodeFeatures(s string) ([]Feature, error) {
	if s == "" || s == "null" {
		return nil, nil
	}
	var fs []Feature
	if err := json.Unmarshal([]byte(s), &fs); err != nil {
		return nil, err
	}
	return fs, nil
}
