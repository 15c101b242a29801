// Package cue turns timer cues into sound and vibration.
package cue

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"intervalfit/internal/core/timer"
)

// DefaultSampleRate is used for synthesized tones.
const DefaultSampleRate = 22050

const fadeDuration = 10 * time.Millisecond

// Tone describes a synthesized beep. Volume is in [0, 1].
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Volume    float64
}

// ToneFor returns the fallback tone for a cue kind.
func ToneFor(kind timer.CueKind) Tone {
	switch kind {
	case timer.CueCountdown:
		return Tone{Frequency: 600, Duration: 150 * time.Millisecond, Volume: 0.2}
	case timer.CueFinish:
		return Tone{Frequency: 1000, Duration: 500 * time.Millisecond, Volume: 0.6}
	default:
		return Tone{Frequency: 800, Duration: 100 * time.Millisecond, Volume: 0.4}
	}
}

// Synthesize renders the tone as a 16-bit mono PCM WAV file.
func Synthesize(tone Tone, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	volume := math.Max(0, math.Min(1, tone.Volume))
	samples := int(tone.Duration.Seconds() * float64(sampleRate))
	if samples < 0 {
		samples = 0
	}
	fade := int(fadeDuration.Seconds() * float64(sampleRate))

	pcm := make([]int16, samples)
	for i := range pcm {
		envelope := 1.0
		if fade > 0 {
			envelope = math.Min(envelope, float64(i)/float64(fade))
			envelope = math.Min(envelope, float64(samples-i)/float64(fade))
		}
		value := math.Sin(2 * math.Pi * tone.Frequency * float64(i) / float64(sampleRate))
		pcm[i] = int16(value * envelope * volume * math.MaxInt16)
	}

	dataSize := uint32(len(pcm) * 2)
	var buf bytes.Buffer
	buf.Grow(44 + int(dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	_ = binary.Write(&buf, binary.LittleEndian, pcm)
	return buf.Bytes()
}
