package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober reports the playback duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// NewProber returns an ffprobe-backed Prober when probing is enabled, otherwise a NopProber.
func NewProber(cfg *Config) Prober {
	if !cfg.Probe {
		return NopProber{}
	}
	return &FFProbe{timeout: cfg.ProbeTimeoutDuration()}
}

// NopProber reports zero duration for every file.
type NopProber struct{}

// Duration always returns 0.
func (NopProber) Duration(context.Context, string) (float64, error) {
	return 0, nil
}

// FFProbe runs the ffprobe binary against staged files.
type FFProbe struct {
	timeout time.Duration
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration runs ffprobe with the smaller of the configured timeout and the context deadline.
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, context.DeadlineExceeded
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	return parseDuration(out)
}

func parseDuration(out string) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	if parsed.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe output has no duration")
	}

	d, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", parsed.Format.Duration, err)
	}
	return d, nil
}
