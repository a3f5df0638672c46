package skydrift

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a render script.
type scriptStep struct {
	Action string `json:"action"`
	Theme  string `json:"theme,omitempty"`
	Label  string `json:"label,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a render script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences theme switches, resizes, frame waits and screenshots
// against a Headless engine. Actions:
//
//	{"action": "theme", "theme": "theme-deep"}
//	{"action": "resize", "width": 1280, "height": 720}
//	{"action": "wait", "frames": 120}
//	{"action": "screenshot", "label": "night"}
//	{"action": "stop"} / {"action": "start"}
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON render script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "theme", "resize", "wait", "screenshot", "stop", "start":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Run executes every step against h. Screenshots are written to dir; their
// paths are returned in order.
func (s *Script) Run(h *Headless, dir string) ([]string, error) {
	var shots []string
	for i, st := range s.steps {
		switch st.Action {
		case "theme":
			h.Engine().SetTheme(st.Theme)
		case "resize":
			h.Engine().Resize(st.Width, st.Height)
		case "wait":
			h.Advance(max(st.Frames, 1))
		case "stop":
			h.Engine().Stop()
		case "start":
			h.Engine().Start()
		case "screenshot":
			path, err := Snapshot(dir, fmt.Sprintf("%03d_%s", i, st.Label), h.Surface())
			if err != nil {
				return shots, fmt.Errorf("script step %d: %w", i, err)
			}
			shots = append(shots, path)
		}
	}
	return shots, nil
}
