package subsystems

import (
	"io"
	"log/slog"
	"math"

	"github.com/aretw0/cmdbot/pkg/command"
	"github.com/aretw0/cmdbot/pkg/ports"
	"github.com/lucasb-eyer/go-colorful"
)

// Game piece and alliance colors.
var (
	ColorCone = ports.Color{R: 255, G: 190, B: 0}
	ColorCube = ports.Color{R: 120, G: 0, B: 200}
	ColorRed  = ports.Color{R: 255}
	ColorBlue = ports.Color{B: 255}
	ColorOff  = ports.Color{}
)

// LEDs is the addressable LED subsystem. Commands write pixels; Periodic
// flushes them once per tick.
type LEDs struct {
	hw     ports.LEDStrip
	logger *slog.Logger
}

func NewLEDs(hw ports.LEDStrip, logger *slog.Logger) *LEDs {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &LEDs{hw: hw, logger: logger}
}

func (l *LEDs) Name() string { return "leds" }

func (l *LEDs) Periodic() {
	if err := l.hw.Flush(); err != nil {
		l.logger.Warn("led flush failed", "err", err)
	}
}

// Fill sets every pixel to c.
func (l *LEDs) Fill(c ports.Color) {
	for i := range l.hw.Len() {
		l.hw.Set(i, c)
	}
}

// SolidCommand holds a single color until interrupted.
func SolidCommand(l *LEDs, name string, c ports.Color) *command.FuncCommand {
	cmd := command.Func(name, l)
	cmd.OnInit = func() { l.Fill(c) }
	return cmd
}

func ConeCommand(l *LEDs) *command.FuncCommand { return SolidCommand(l, "cone_leds", ColorCone) }
func CubeCommand(l *LEDs) *command.FuncCommand { return SolidCommand(l, "cube_leds", ColorCube) }

// RainbowCommand scrolls a rainbow along the strip, advancing the hue by
// step degrees per tick.
type RainbowCommand struct {
	command.Base
	leds   *LEDs
	step   float64
	offset float64
}

func NewRainbowCommand(l *LEDs, step float64) *RainbowCommand {
	return &RainbowCommand{Base: command.NewBase("rainbow_leds", l), leds: l, step: step}
}

func (c *RainbowCommand) Execute() {
	n := c.leds.hw.Len()
	for i := range n {
		hue := wrapHue(c.offset + float64(i)*360/float64(n))
		r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
		c.leds.hw.Set(i, ports.Color{R: r, G: g, B: b})
	}
	c.offset = wrapHue(c.offset + c.step)
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// AllianceCommand shows the alliance color reported by the driver station.
func AllianceCommand(l *LEDs, ds ports.DriverStation) *command.FuncCommand {
	cmd := command.Func("alliance_leds", l)
	cmd.OnExecute = func() {
		switch ds.Alliance() {
		case ports.AllianceRed:
			l.Fill(ColorRed)
		case ports.AllianceBlue:
			l.Fill(ColorBlue)
		default:
			l.Fill(ColorOff)
		}
	}
	return cmd
}
