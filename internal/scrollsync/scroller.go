package scrollsync

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const (
	fps       = 60
	frequency = 8.0
	damping   = 1.0
)

// TickMsg advances the Scroller with the matching ID by one frame.
type TickMsg struct {
	ID int
}

// Scroller eases a scroll offset toward a target with a critically damped
// spring. It runs on the bubbletea loop: ScrollTo starts a chain of TickMsgs
// that stops once the offset settles.
type Scroller struct {
	id        int
	spring    harmonica.Spring
	pos, vel  float64
	target    float64
	animating bool
}

func NewScroller(id int) *Scroller {
	return &Scroller{
		id:     id,
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

func (s *Scroller) ID() int { return s.id }

func (s *Scroller) Offset() int { return int(math.Round(s.pos)) }

func (s *Scroller) Target() int { return int(s.target) }

func (s *Scroller) Animating() bool { return s.animating }

// ScrollTo retargets the animation. It returns nil when there is nothing new to
// schedule: already resting at target, or a running animation just picks up the
// new target on its next frame.
func (s *Scroller) ScrollTo(target int) tea.Cmd {
	s.target = float64(target)
	if s.animating {
		return nil
	}
	if s.Offset() == target && math.Abs(s.vel) < 0.5 {
		s.pos = s.target
		return nil
	}
	s.animating = true
	return s.tick()
}

// Jump moves to offset immediately and cancels any animation. Used when the
// user scrolls by hand.
func (s *Scroller) Jump(offset int) {
	s.pos = float64(offset)
	s.target = s.pos
	s.vel = 0
	s.animating = false
}

// Update handles this scroller's ticks. It reports whether msg was one.
func (s *Scroller) Update(msg tea.Msg) (bool, tea.Cmd) {
	tm, ok := msg.(TickMsg)
	if !ok || tm.ID != s.id {
		return false, nil
	}
	if !s.animating {
		return true, nil
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos = s.target
		s.vel = 0
		s.animating = false
		return true, nil
	}
	return true, s.tick()
}

func (s *Scroller) tick() tea.Cmd {
	id := s.id
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg { return TickMsg{ID: id} })
}

// Settle runs the animation to completion without waiting on the clock.
func (s *Scroller) Settle() {
	for i := 0; s.animating && i < 10*fps; i++ {
		s.Update(TickMsg{ID: s.id})
	}
	if s.animating {
		s.Jump(int(s.target))
	}
}
