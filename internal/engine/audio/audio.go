// Package audio plays the cinematic soundtrack.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Player streams one looping music track.
type Player struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	track   beep.StreamSeekCloser
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	path    string
	playing bool

	level float64 // 0.0 to 1.0
	muted bool
}

// New creates a player at the given volume (0.0 to 1.0).
func New(volume float64) *Player {
	return &Player{
		sampleRate: DefaultSampleRate,
		level:      clamp(volume, 0, 1),
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if p.initialized {
		speaker.Close()
	}
	p.initialized = false
}

// PlayFile starts the WAV file at path, replacing any current track.
func (p *Player) PlayFile(path string, loop bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		f.Close()
		return fmt.Errorf("audio not initialized")
	}
	p.stopLocked()

	track, out, err := decode(f, p.sampleRate, loop)
	if err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	p.track = track
	p.ctrl = &beep.Ctrl{Streamer: out}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolume()
	p.path = path
	p.playing = true

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	})))
	return nil
}

// decode opens a WAV stream and resamples it to rate, optionally looping.
// The returned StreamSeekCloser owns f.
func decode(f *os.File, rate beep.SampleRate, loop bool) (beep.StreamSeekCloser, beep.Streamer, error) {
	track, format, err := wav.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("decode wav: %w", err)
	}

	var s beep.Streamer = track
	if loop {
		s = &loopStreamer{track: track}
	}
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}
	return track, s, nil
}

// Stop ends playback.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
	if p.initialized {
		speaker.Clear()
	}
	if p.track != nil {
		p.track.Close()
	}
	p.track = nil
	p.ctrl = nil
	p.volume = nil
	p.path = ""
	p.playing = false
}

// SetPaused pauses or resumes the current track.
func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
	p.playing = !paused
}

// SetVolume sets the volume (0.0 to 1.0).
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = clamp(vol, 0, 1)
	p.applyVolume()
}

// SetMuted silences the track without stopping it.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.applyVolume()
}

// ToggleMute flips the mute state and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.applyVolume()
	return p.muted
}

// Volume returns the volume level.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Playing reports whether a track is playing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Path returns the path of the current track.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

func (p *Player) applyVolume() {
	if p.volume == nil {
		return
	}
	silent := p.muted || p.level <= 0
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Silent = silent
	if !silent {
		p.volume.Volume = volumeToExponent(p.level)
	}
}

// volumeToExponent converts a linear 0-1 level to the base-2 exponent
// effects.Volume expects: 1 plays at full volume, 0.5 one step quieter.
func volumeToExponent(level float64) float64 {
	if level <= 0 {
		return -100
	}
	return math.Log2(level)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loopStreamer rewinds track when it runs out.
type loopStreamer struct {
	track beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.track.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			if l.track.Len() == 0 {
				return filled, filled > 0
			}
			if err := l.track.Seek(0); err != nil {
				return filled, filled > 0
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.track.Err()
}
