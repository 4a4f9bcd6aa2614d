package robot

import (
	"fmt"
	"math"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// ActionKind names a command the robot knows how to build.
type ActionKind int

const (
	ActionLowGear ActionKind = iota + 1
	ActionSwitchGear
	ActionOpenGrabber
	ActionCloseGrabber
	ActionArmTo
	ActionManualArm
	ActionWait
	ActionDriveDistance
	ActionManualDrive
	ActionConeLEDs
	ActionCubeLEDs
	ActionRainbowLEDs
	ActionAllianceLEDs
)

var actionNames = map[ActionKind]string{
	ActionLowGear:       "low_gear",
	ActionSwitchGear:    "switch_gear",
	ActionOpenGrabber:   "open_grabber",
	ActionCloseGrabber:  "close_grabber",
	ActionArmTo:         "arm_to",
	ActionManualArm:     "manual_arm",
	ActionWait:          "wait",
	ActionDriveDistance: "drive_distance",
	ActionManualDrive:   "manual_drive",
	ActionConeLEDs:      "cone_leds",
	ActionCubeLEDs:      "cube_leds",
	ActionRainbowLEDs:   "rainbow_leds",
	ActionAllianceLEDs:  "alliance_leds",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action describes one command to build. Only the fields used by Kind are
// read.
type Action struct {
	Kind     ActionKind
	Position float64
	Distance float64
	Speed    float64
	Duration time.Duration
}

func LowGear() Action               { return Action{Kind: ActionLowGear} }
func SwitchGear() Action            { return Action{Kind: ActionSwitchGear} }
func OpenGrabber() Action           { return Action{Kind: ActionOpenGrabber} }
func CloseGrabber() Action          { return Action{Kind: ActionCloseGrabber} }
func ArmTo(position float64) Action { return Action{Kind: ActionArmTo, Position: position} }
func ManualArm() Action             { return Action{Kind: ActionManualArm} }
func Wait(d time.Duration) Action   { return Action{Kind: ActionWait, Duration: d} }
func ManualDrive() Action           { return Action{Kind: ActionManualDrive} }
func ConeLEDs() Action              { return Action{Kind: ActionConeLEDs} }
func CubeLEDs() Action              { return Action{Kind: ActionCubeLEDs} }
func RainbowLEDs() Action           { return Action{Kind: ActionRainbowLEDs} }
func AllianceLEDs() Action          { return Action{Kind: ActionAllianceLEDs} }

func DriveDistance(distance, speed float64) Action {
	return Action{Kind: ActionDriveDistance, Distance: distance, Speed: speed}
}

// Validate checks the constants that do not depend on hardware limits.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionArmTo:
		if math.IsNaN(a.Position) || math.IsInf(a.Position, 0) {
			return fmt.Errorf("%v: position %v: %w", a.Kind, a.Position, domain.ErrInvalidConstant)
		}
	case ActionWait:
		if a.Duration < 0 {
			return fmt.Errorf("%v: duration %v: %w", a.Kind, a.Duration, domain.ErrInvalidConstant)
		}
	case ActionDriveDistance:
		if a.Speed == 0 || math.Abs(a.Speed) > 1 || math.IsNaN(a.Speed) || math.IsNaN(a.Distance) || math.IsInf(a.Distance, 0) {
			return fmt.Errorf("%v: distance %v speed %v: %w", a.Kind, a.Distance, a.Speed, domain.ErrInvalidConstant)
		}
	default:
		if _, ok := actionNames[a.Kind]; !ok {
			return fmt.Errorf("%v: %w", a.Kind, domain.ErrUnknownAction)
		}
	}
	return nil
}

func (a Action) String() string {
	switch a.Kind {
	case ActionArmTo:
		return fmt.Sprintf("arm_to(%.1f)", a.Position)
	case ActionWait:
		return fmt.Sprintf("wait(%v)", a.Duration)
	case ActionDriveDistance:
		return fmt.Sprintf("drive_distance(%.2f m @ %.2f)", a.Distance, a.Speed)
	}
	return a.Kind.String()
}

// CommandFactory materializes actions into fresh commands.
type CommandFactory interface {
	Command(a Action) (domain.Command, error)
}

// binding adapts a CommandFactory and an Action to a trigger.Factory.
// Actions are validated at install time, so a build error here means the
// hardware changed underneath; the table logs the nil command.
type binding struct {
	factory CommandFactory
	action  Action
}

func (b binding) NewCommand() domain.Command {
	cmd, err := b.factory.Command(b.action)
	if err != nil {
		return nil
	}
	return cmd
}

func (b binding) String() string { return b.action.String() }
