//go:build !tinygo

package config

import (
	"circuitplay-go/errcode"

	"gopkg.in/yaml.v3"
)

// LoadYAML overlays a YAML document onto base. Keys absent from the
// document keep base's values. Durations use Go syntax ("50ms").
func LoadYAML(data []byte, base Board) (Board, error) {
	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: "yaml", Err: err}
	}
	return out.Normalise(), nil
}

// MarshalYAML renders b, e.g. for dumping the effective tuning.
func MarshalYAML(b Board) ([]byte, error) {
	return yaml.Marshal(&b)
}
