// Package config loads the robot configuration: controller ports, button
// indices, arm presets, autonomous constants and the outer surfaces of the
// simulator.
package config

import (
	"fmt"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// Config is the full robot configuration.
type Config struct {
	Period      time.Duration     `yaml:"period" mapstructure:"period"`
	LogLevel    string            `yaml:"log_level" mapstructure:"log_level"`
	LogFile     string            `yaml:"log_file" mapstructure:"log_file"`
	Controllers ControllersConfig `yaml:"controllers" mapstructure:"controllers"`
	Buttons     ButtonsConfig     `yaml:"buttons" mapstructure:"buttons"`
	Drive       DriveConfig       `yaml:"drive" mapstructure:"drive"`
	Arm         ArmConfig         `yaml:"arm" mapstructure:"arm"`
	LEDs        LEDConfig         `yaml:"leds" mapstructure:"leds"`
	Vision      VisionConfig      `yaml:"vision" mapstructure:"vision"`
	Autonomous  AutonomousConfig  `yaml:"autonomous" mapstructure:"autonomous"`
	Redis       RedisConfig       `yaml:"redis" mapstructure:"redis"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
}

// ControllersConfig holds driver station ports.
type ControllersConfig struct {
	Driver int `yaml:"driver" mapstructure:"driver"`
	Board  int `yaml:"board" mapstructure:"board"`
}

// ButtonsConfig holds the 1-based button board indices.
type ButtonsConfig struct {
	BlueUpper int `yaml:"blue_upper" mapstructure:"blue_upper"`
	BlueLower int `yaml:"blue_lower" mapstructure:"blue_lower"`
	RedUpper1 int `yaml:"red_upper_1" mapstructure:"red_upper_1"`
	RedUpper2 int `yaml:"red_upper_2" mapstructure:"red_upper_2"`
	RedUpper3 int `yaml:"red_upper_3" mapstructure:"red_upper_3"`
	RedLower1 int `yaml:"red_lower_1" mapstructure:"red_lower_1"`
	RedLower2 int `yaml:"red_lower_2" mapstructure:"red_lower_2"`
	RedLower3 int `yaml:"red_lower_3" mapstructure:"red_lower_3"`
	Black1    int `yaml:"black_1" mapstructure:"black_1"`
	Black2    int `yaml:"black_2" mapstructure:"black_2"`
}

// All returns every configured index keyed by its name.
func (b ButtonsConfig) All() map[string]int {
	return map[string]int{
		"blue_upper":  b.BlueUpper,
		"blue_lower":  b.BlueLower,
		"red_upper_1": b.RedUpper1,
		"red_upper_2": b.RedUpper2,
		"red_upper_3": b.RedUpper3,
		"red_lower_1": b.RedLower1,
		"red_lower_2": b.RedLower2,
		"red_lower_3": b.RedLower3,
		"black_1":     b.Black1,
		"black_2":     b.Black2,
	}
}

// DriveConfig tunes the drivetrain.
type DriveConfig struct {
	TopSpeed float64 `yaml:"top_speed" mapstructure:"top_speed"`
	Deadband float64 `yaml:"deadband" mapstructure:"deadband"`
}

// ArmConfig tunes the arm controller. Angles are in degrees.
type ArmConfig struct {
	KP         float64    `yaml:"kp" mapstructure:"kp"`
	Tolerance  float64    `yaml:"tolerance" mapstructure:"tolerance"`
	MaxPower   float64    `yaml:"max_power" mapstructure:"max_power"`
	Min        float64    `yaml:"min" mapstructure:"min"`
	Max        float64    `yaml:"max" mapstructure:"max"`
	Start      float64    `yaml:"start" mapstructure:"start"`
	Deadband   float64    `yaml:"deadband" mapstructure:"deadband"`
	ManualAxis int        `yaml:"manual_axis" mapstructure:"manual_axis"`
	Presets    ArmPresets `yaml:"presets" mapstructure:"presets"`
}

// ArmPresets are the scoring and pickup positions.
type ArmPresets struct {
	Default    float64 `yaml:"default" mapstructure:"default"`
	Ground     float64 `yaml:"ground" mapstructure:"ground"`
	Substation float64 `yaml:"substation" mapstructure:"substation"`
	LowerCone  float64 `yaml:"lower_cone" mapstructure:"lower_cone"`
	LowerCube  float64 `yaml:"lower_cube" mapstructure:"lower_cube"`
	UpperCone  float64 `yaml:"upper_cone" mapstructure:"upper_cone"`
	UpperCube  float64 `yaml:"upper_cube" mapstructure:"upper_cube"`
}

// All returns every preset keyed by its name.
func (p ArmPresets) All() map[string]float64 {
	return map[string]float64{
		"default":    p.Default,
		"ground":     p.Ground,
		"substation": p.Substation,
		"lower_cone": p.LowerCone,
		"lower_cube": p.LowerCube,
		"upper_cone": p.UpperCone,
		"upper_cube": p.UpperCube,
	}
}

// LEDConfig describes the LED strip.
type LEDConfig struct {
	Length      int     `yaml:"length" mapstructure:"length"`
	RainbowStep float64 `yaml:"rainbow_step" mapstructure:"rainbow_step"`
}

// VisionConfig holds the entries written to the vision table at startup.
type VisionConfig struct {
	Table    string  `yaml:"table" mapstructure:"table"`
	LEDMode  float64 `yaml:"led_mode" mapstructure:"led_mode"`
	CamMode  float64 `yaml:"cam_mode" mapstructure:"cam_mode"`
	Pipeline float64 `yaml:"pipeline" mapstructure:"pipeline"`
}

// AutonomousConfig holds the constants of the autonomous routine.
type AutonomousConfig struct {
	Delay         time.Duration `yaml:"delay" mapstructure:"delay"`
	DriveDistance float64       `yaml:"drive_distance" mapstructure:"drive_distance"`
	DriveSpeed    float64       `yaml:"drive_speed" mapstructure:"drive_speed"`
	// Timeout bounds the whole routine in simulation; zero disables it.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RedisConfig enables the Redis vision table and telemetry when Addr is set.
type RedisConfig struct {
	Addr   string        `yaml:"addr" mapstructure:"addr"`
	Prefix string        `yaml:"prefix" mapstructure:"prefix"`
	TTL    time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// HTTPConfig configures the dashboard server. An empty AuthSecret leaves the
// write endpoints open.
type HTTPConfig struct {
	Addr       string `yaml:"addr" mapstructure:"addr"`
	AuthSecret string `yaml:"auth_secret" mapstructure:"auth_secret"`
}

// Default returns the configuration the robot was tuned with.
func Default() Config {
	return Config{
		Period:      20 * time.Millisecond,
		LogLevel:    "info",
		Controllers: ControllersConfig{Driver: 0, Board: 1},
		Buttons: ButtonsConfig{
			BlueUpper: 1,
			BlueLower: 2,
			RedUpper1: 3,
			RedUpper2: 4,
			RedUpper3: 5,
			RedLower1: 6,
			RedLower2: 7,
			RedLower3: 8,
			Black1:    9,
			Black2:    10,
		},
		Drive: DriveConfig{TopSpeed: 3.0, Deadband: 0.08},
		Arm: ArmConfig{
			KP:         0.04,
			Tolerance:  2,
			MaxPower:   0.6,
			Min:        -5,
			Max:        110,
			Start:      0,
			Deadband:   0.1,
			ManualAxis: 1,
			Presets: ArmPresets{
				Default:    0,
				Ground:     95,
				Substation: 60,
				LowerCone:  78,
				LowerCube:  82,
				UpperCone:  52,
				UpperCube:  58,
			},
		},
		LEDs:   LEDConfig{Length: 60, RainbowStep: 3},
		Vision: VisionConfig{Table: "limelight", LEDMode: 1, CamMode: 1, Pipeline: 9},
		Autonomous: AutonomousConfig{
			Delay:         750 * time.Millisecond,
			DriveDistance: -1.0,
			DriveSpeed:    -0.4,
			Timeout:       15 * time.Second,
		},
		Redis: RedisConfig{Prefix: "cmdbot:", TTL: time.Minute},
		HTTP:  HTTPConfig{Addr: ":8080"},
	}
}

// MaxPorts and MaxButtons mirror the driver station limits.
const (
	MaxPorts   = 6
	MaxButtons = 32
)

// Validate checks ports, button indices, the tick period and arm presets.
func (c Config) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("period %v must be positive: %w", c.Period, domain.ErrInvalidConstant)
	}
	for name, port := range map[string]int{"driver": c.Controllers.Driver, "board": c.Controllers.Board} {
		if port < 0 || port >= MaxPorts {
			return fmt.Errorf("controllers.%s: port %d out of range 0..%d: %w", name, port, MaxPorts-1, domain.ErrInvalidPort)
		}
	}
	if c.Controllers.Driver == c.Controllers.Board {
		return fmt.Errorf("controllers: driver and board share port %d: %w", c.Controllers.Driver, domain.ErrInvalidPort)
	}
	seen := make(map[int]string)
	for name, idx := range c.Buttons.All() {
		if idx < 1 || idx > MaxButtons {
			return fmt.Errorf("buttons.%s: index %d out of range 1..%d: %w", name, idx, MaxButtons, domain.ErrInvalidButton)
		}
		if other, ok := seen[idx]; ok {
			return fmt.Errorf("buttons.%s and buttons.%s share index %d: %w", name, other, idx, domain.ErrInvalidButton)
		}
		seen[idx] = name
	}
	if c.Arm.Min >= c.Arm.Max {
		return fmt.Errorf("arm: min %v must be below max %v: %w", c.Arm.Min, c.Arm.Max, domain.ErrInvalidConstant)
	}
	for name, p := range c.Arm.Presets.All() {
		if p < c.Arm.Min || p > c.Arm.Max {
			return fmt.Errorf("arm.presets.%s: %v outside [%v, %v]: %w", name, p, c.Arm.Min, c.Arm.Max, domain.ErrInvalidConstant)
		}
	}
	if c.LEDs.Length <= 0 {
		return fmt.Errorf("leds.length %d must be positive: %w", c.LEDs.Length, domain.ErrInvalidConstant)
	}
	if c.Autonomous.Delay < 0 {
		return fmt.Errorf("autonomous.delay %v must not be negative: %w", c.Autonomous.Delay, domain.ErrInvalidConstant)
	}
	if c.Autonomous.Timeout <= 0 {
		return fmt.Errorf("autonomous.timeout %v must be positive: %w", c.Autonomous.Timeout, domain.ErrInvalidConstant)
	}
	return nil
}
