package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/cmdbot/pkg/ports"
)

// LEDStrip is a simulated addressable strip. Set writes a back buffer;
// Flush publishes it.
type LEDStrip struct {
	mu      sync.Mutex
	buffer  []ports.Color
	shown   []ports.Color
	flushes int
}

func NewLEDStrip(length int) *LEDStrip {
	return &LEDStrip{buffer: make([]ports.Color, length), shown: make([]ports.Color, length)}
}

func (l *LEDStrip) Len() int { return len(l.buffer) }

// Set ignores indices outside the strip.
func (l *LEDStrip) Set(index int, c ports.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.buffer) {
		return
	}
	l.buffer[index] = c
}

func (l *LEDStrip) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.buffer) == 0 {
		return fmt.Errorf("led strip has no pixels")
	}
	copy(l.shown, l.buffer)
	l.flushes++
	return nil
}

// Shown returns a copy of the last flushed colors.
func (l *LEDStrip) Shown() []ports.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ports.Color(nil), l.shown...)
}

// Flushes counts successful flushes.
func (l *LEDStrip) Flushes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushes
}

func (l *LEDStrip) Step(time.Duration) {}
