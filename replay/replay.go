// Package replay records simulation runs and plays them back.
//
// The simulation is deterministic: the same world, gravity and timestep
// produce bit-identical results on the same floating-point
// implementation. A recording is therefore just the per-tick inputs plus
// the resulting ball states, stored as snappy-compressed JSON lines, and
// playback can verify a recording by re-simulating it and comparing
// states exactly.
package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/snappy"

	"github.com/akmonengine/marble"
)

// BallState is the recorded state of one ball at the end of a tick.
type BallState struct {
	P mgl32.Vec3 `json:"p"`
	V mgl32.Vec3 `json:"v"`
	W mgl32.Vec3 `json:"w"`
}

// Frame is one recorded simulation tick.
type Frame struct {
	Tick    uint64      `json:"tick"`
	Dt      float32     `json:"dt"`
	Gravity mgl32.Vec3  `json:"g"`
	Balls   []BallState `json:"balls"`
	Bounce  float32     `json:"bounce"`
	Rest    int         `json:"rest"`
}

// Recorder writes frames to a snappy-compressed JSONL stream.
type Recorder struct {
	w    *snappy.Writer
	enc  *json.Encoder
	tick uint64
}

// NewRecorder wraps w in a compressed frame stream. Close flushes it.
func NewRecorder(w io.Writer) *Recorder {
	sw := snappy.NewBufferedWriter(w)

	return &Recorder{w: sw, enc: json.NewEncoder(sw)}
}

// Record captures the ball states of w after a step that ran with the
// given inputs and results.
func (r *Recorder) Record(w *marble.World, g mgl32.Vec3, dt, bounce float32, rest int) error {
	f := Frame{
		Tick:    r.tick,
		Dt:      dt,
		Gravity: g,
		Bounce:  bounce,
		Rest:    rest,
		Balls:   make([]BallState, 0, len(w.Balls)),
	}
	for i := range w.Balls {
		u := &w.Balls[i]
		f.Balls = append(f.Balls, BallState{P: u.P, V: u.V, W: u.W})
	}

	r.tick++

	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Tick, err)
	}
	return nil
}

// Close flushes the compressed stream.
func (r *Recorder) Close() error {
	return r.w.Close()
}

// ReadAll decodes every frame of a recording.
func ReadAll(rd io.Reader) ([]Frame, error) {
	scanner := bufio.NewScanner(snappy.NewReader(rd))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var frames []Frame
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var f Frame
		if err := json.Unmarshal(line, &f); err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
	return frames, scanner.Err()
}

// Verify re-simulates frames on w, stepping ball ui, and returns the
// index of the first frame whose recorded ball states diverge from the
// re-simulation, or -1 when the whole run reproduces exactly. The world
// must be in the state the recording started from.
func Verify(w *marble.World, frames []Frame, ui int) int {
	rest := 0

	for i := range frames {
		f := &frames[i]

		w.Step(f.Gravity, f.Dt, ui, &rest)

		for bi := range w.Balls {
			if bi >= len(f.Balls) {
				break
			}

			u := &w.Balls[bi]
			s := &f.Balls[bi]

			if u.P != s.P || u.V != s.V || u.W != s.W {
				return i
			}
		}
	}
	return -1
}
