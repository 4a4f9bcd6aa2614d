package command

import "github.com/aretw0/cmdbot/pkg/domain"

// FuncCommand runs plain functions at each lifecycle stage.
// Nil functions are skipped; a nil Finished never finishes.
type FuncCommand struct {
	Base
	OnInit    func()
	OnExecute func()
	OnEnd     func(interrupted bool)
	Finished  func() bool
}

// Func creates a FuncCommand requiring the given subsystems.
func Func(name string, requirements ...domain.Subsystem) *FuncCommand {
	return &FuncCommand{Base: NewBase(name, requirements...)}
}

func (c *FuncCommand) Initialize() {
	if c.OnInit != nil {
		c.OnInit()
	}
}

func (c *FuncCommand) Execute() {
	if c.OnExecute != nil {
		c.OnExecute()
	}
}

func (c *FuncCommand) IsFinished() bool {
	return c.Finished != nil && c.Finished()
}

func (c *FuncCommand) End(interrupted bool) {
	if c.OnEnd != nil {
		c.OnEnd(interrupted)
	}
}

// Instant runs fn once on Initialize and finishes in the same tick.
func Instant(name string, fn func(), requirements ...domain.Subsystem) *FuncCommand {
	c := Func(name, requirements...)
	c.OnInit = fn
	c.Finished = func() bool { return true }
	return c
}

// Run calls fn every tick until interrupted.
func Run(name string, fn func(), requirements ...domain.Subsystem) *FuncCommand {
	c := Func(name, requirements...)
	c.OnExecute = fn
	return c
}

// WaitUntil finishes on the first tick cond samples true.
func WaitUntil(cond domain.Condition) *FuncCommand {
	c := Func("wait_until")
	c.Finished = cond.Sample
	return c
}
