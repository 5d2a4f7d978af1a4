package arbor

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var testKeys = map[string]Key{
	"tab":    KeyTab,
	"escape": KeyEscape,
	"enter":  KeyEnter,
}

// Snapshot is the layout recorded by a "snapshot" step: the rect of every
// panel keyed by name, and the dock tree dump.
type Snapshot struct {
	Frame  uint64
	Panels map[string]Rect
	Tree   string
}

// TestRunner sequences injected input events and layout snapshots across
// frames for scripted interaction tests. Attach to a Context via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	snapshots map[string]Snapshot
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Context via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "click", "drag", "wait", "snapshot", "screenshot":
		case "key":
			if _, ok := testKeys[st.Key]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, snapshots: make(map[string]Snapshot)}, nil
}

// SetTestRunner attaches a TestRunner to the context. The runner's step
// method is called from BeginFrame before injected input is processed.
func (c *Context) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Snapshot returns the snapshot recorded under label.
func (r *TestRunner) Snapshot(label string) (Snapshot, bool) {
	s, ok := r.snapshots[label]
	return s, ok
}

// step advances the test runner by one frame. Called from BeginFrame.
func (r *TestRunner) step(c *Context) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		r.snapshots[st.Label] = takeSnapshot(c)
	case "screenshot":
		c.Screenshot(st.Label)
	case "press":
		c.InjectPress(st.X, st.Y)
	case "move":
		c.InjectMove(st.X, st.Y)
	case "release":
		c.InjectRelease(st.X, st.Y)
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		var mods KeyModifiers
		if st.Shift {
			mods |= ModShift
		}
		c.InjectKey(testKeys[st.Key], mods)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}

func takeSnapshot(c *Context) Snapshot {
	s := Snapshot{Frame: c.frame, Panels: make(map[string]Rect, len(c.panels)), Tree: c.tree.String()}
	for _, p := range c.panels {
		s.Panels[p.Name] = p.Rect()
	}
	return s
}
