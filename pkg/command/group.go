package command

import (
	"fmt"
	"strings"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// newGroupBase validates children and derives the group's requirements,
// disabled behavior and interruption behavior from them.
func newGroupBase(kind, sep string, children []domain.Command, disjoint bool) (Base, error) {
	if err := checkClaimable(children); err != nil {
		return Base{}, fmt.Errorf("%s: %w", kind, err)
	}
	if disjoint {
		if err := checkDisjoint(children); err != nil {
			return Base{}, fmt.Errorf("%s: %w", kind, err)
		}
	}
	claimAll(children)

	names := make([]string, 0, len(children))
	b := Base{runsWhenDisabled: true}
	for _, c := range children {
		names = append(names, c.Name())
		b.AddRequirements(c.Requirements()...)
		if !c.RunsWhenDisabled() {
			b.runsWhenDisabled = false
		}
		if c.InterruptionBehavior() == domain.CancelIncoming {
			b.interruption = domain.CancelIncoming
		}
	}
	b.name = kind + "(" + strings.Join(names, sep) + ")"
	return b, nil
}

func checkDisjoint(children []domain.Command) error {
	owner := make(map[domain.Subsystem]string)
	for _, c := range children {
		for _, r := range c.Requirements() {
			if prev, ok := owner[r]; ok {
				return fmt.Errorf("%s and %s both require %s: %w", prev, c.Name(), r.Name(), domain.ErrOverlappingRequirements)
			}
			owner[r] = c.Name()
		}
	}
	return nil
}

// SequentialGroup runs its children one after another. When a child
// finishes, the next one is initialized in the same tick.
type SequentialGroup struct {
	Base
	children []domain.Command
	index    int
}

// Sequence composes children into a SequentialGroup.
func Sequence(children ...domain.Command) (*SequentialGroup, error) {
	base, err := newGroupBase("sequence", " -> ", children, false)
	if err != nil {
		return nil, err
	}
	return &SequentialGroup{Base: base, children: children, index: -1}, nil
}

// Children returns the composed commands in order.
func (g *SequentialGroup) Children() []domain.Command { return g.children }

func (g *SequentialGroup) Initialize() {
	g.index = 0
	if len(g.children) > 0 {
		g.children[0].Initialize()
	}
}

func (g *SequentialGroup) Execute() {
	if g.index < 0 || g.index >= len(g.children) {
		return
	}
	current := g.children[g.index]
	current.Execute()
	if !current.IsFinished() {
		return
	}
	current.End(false)
	g.index++
	if g.index < len(g.children) {
		g.children[g.index].Initialize()
	}
}

func (g *SequentialGroup) IsFinished() bool {
	return g.index == len(g.children)
}

func (g *SequentialGroup) End(interrupted bool) {
	if interrupted && g.index >= 0 && g.index < len(g.children) {
		g.children[g.index].End(true)
	}
	g.index = -1
}

// parallelMode selects when a parallel group is finished.
type parallelMode int

const (
	waitAll parallelMode = iota
	waitAny
	waitDeadline
)

// ParallelGroup runs its children in the same ticks. All children are
// initialized in the tick the group is.
type ParallelGroup struct {
	Base
	children []domain.Command
	running  []bool
	mode     parallelMode
	finished bool
}

// Parallel finishes once every child has finished.
func Parallel(children ...domain.Command) (*ParallelGroup, error) {
	return newParallel("parallel", waitAll, children)
}

// Race finishes as soon as any child finishes; the others are interrupted.
func Race(children ...domain.Command) (*ParallelGroup, error) {
	return newParallel("race", waitAny, children)
}

// Deadline finishes when deadline finishes; the others are interrupted.
func Deadline(deadline domain.Command, others ...domain.Command) (*ParallelGroup, error) {
	children := append([]domain.Command{deadline}, others...)
	return newParallel("deadline", waitDeadline, children)
}

func newParallel(kind string, mode parallelMode, children []domain.Command) (*ParallelGroup, error) {
	base, err := newGroupBase(kind, " | ", children, true)
	if err != nil {
		return nil, err
	}
	return &ParallelGroup{
		Base:     base,
		children: children,
		running:  make([]bool, len(children)),
		mode:     mode,
	}, nil
}

// Children returns the composed commands in order.
func (g *ParallelGroup) Children() []domain.Command { return g.children }

func (g *ParallelGroup) Initialize() {
	g.finished = false
	for i, c := range g.children {
		g.running[i] = true
		c.Initialize()
	}
}

func (g *ParallelGroup) Execute() {
	for i, c := range g.children {
		if !g.running[i] {
			continue
		}
		c.Execute()
		if !c.IsFinished() {
			continue
		}
		c.End(false)
		g.running[i] = false
		switch g.mode {
		case waitAny:
			g.finished = true
		case waitDeadline:
			if i == 0 {
				g.finished = true
			}
		}
	}
	if g.mode == waitAll {
		g.finished = !g.anyRunning()
	}
	if g.finished && g.mode != waitAll {
		// Children still running lost the race.
		g.interruptRunning()
	}
}

func (g *ParallelGroup) IsFinished() bool {
	if len(g.children) == 0 {
		return true
	}
	return g.finished
}

func (g *ParallelGroup) End(interrupted bool) {
	if interrupted {
		g.interruptRunning()
	}
}

func (g *ParallelGroup) anyRunning() bool {
	for _, r := range g.running {
		if r {
			return true
		}
	}
	return false
}

func (g *ParallelGroup) interruptRunning() {
	for i, c := range g.children {
		if g.running[i] {
			c.End(true)
			g.running[i] = false
		}
	}
}
