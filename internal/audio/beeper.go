// Package audio plays the period-ending beep.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate    = 44100
	toneHz        = 440.0
	toneLength    = 500 * time.Millisecond
	toneAmplitude = 0.1
)

// Beeper plays a short sine tone on the default output device. The device is
// opened lazily on the first request and shared by later ones.
type Beeper struct {
	once    sync.Once
	context *oto.Context
	initErr error
	tone    []byte
	playing sync.Mutex
}

// NewBeeper returns a beeper; no audio device is touched until the first alert.
func NewBeeper() *Beeper {
	return &Beeper{tone: sineTone(sampleRate, toneHz, toneLength, toneAmplitude)}
}

// RequestAlert plays the tone in the background and returns immediately.
// Failures are logged, never returned.
func (beeper *Beeper) RequestAlert(volume float64) {
	go func() {
		if err := beeper.Beep(volume); err != nil {
			log.Printf("beep: %v", err)
		}
	}()
}

// Beep plays the tone and blocks until it has finished.
func (beeper *Beeper) Beep(volume float64) error {
	otoContext, err := beeper.open()
	if err != nil {
		return err
	}

	beeper.playing.Lock()
	defer beeper.playing.Unlock()

	player := otoContext.NewPlayer(bytes.NewReader(beeper.tone))
	player.SetVolume(clampVolume(volume))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}

func (beeper *Beeper) open() (*oto.Context, error) {
	beeper.once.Do(func() {
		options := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		}
		otoContext, ready, err := oto.NewContext(options)
		if err != nil {
			beeper.initErr = fmt.Errorf("open audio device: %w", err)
			return
		}
		<-ready
		beeper.context = otoContext
	})
	return beeper.context, beeper.initErr
}

// Silent drops every alert; used when no audio device is wanted.
type Silent struct{}

// RequestAlert implements timekeeper.Alerter.
func (Silent) RequestAlert(float64) {}

func clampVolume(volume float64) float64 {
	if math.IsNaN(volume) || volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}

// sineTone renders a mono float32 little-endian sine wave.
func sineTone(rate int, frequency float64, length time.Duration, amplitude float64) []byte {
	samples := int(float64(rate) * length.Seconds())
	buf := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		value := float32(math.Sin(2*math.Pi*frequency*float64(i)/float64(rate)) * amplitude)
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(value))
	}
	return buf
}
