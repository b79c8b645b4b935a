package common

import (
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	loaderFPS       = 60
	loaderFrequency = 5.0
	loaderDamping   = 0.4
	loaderSpines    = 12
	loaderHold      = 30 // frames spent on each shelf end
)

type LoaderFrameMsg time.Time

// Shown under the loader while a list is on its way.
var loaderQuotes = []string{
	"Checking this week's list...",
	"Counting weeks on the list...",
	"Asking the Times what everyone is reading...",
	"Dusting off the archive...",
	"Ranking the hardcovers...",
	"Reading the fine print on the jacket...",
	"Looking for a new number one...",
}

// Loader draws a shelf of book spines with a spring-driven highlight
// sliding between its ends.
type Loader struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	frame  int
	active bool
	quote  string
}

func NewLoader() Loader {
	return Loader{
		spring: harmonica.NewSpring(harmonica.FPS(loaderFPS), loaderFrequency, loaderDamping),
	}
}

func (l *Loader) Start() tea.Cmd {
	l.active = true
	l.frame = 0
	l.pos = 0
	l.vel = 0
	l.quote = loaderQuotes[rand.Intn(len(loaderQuotes))]
	return l.tick()
}

func (l *Loader) Stop() {
	l.active = false
}

func (l *Loader) Active() bool {
	return l.active
}

func (l *Loader) tick() tea.Cmd {
	return tea.Tick(time.Second/loaderFPS, func(t time.Time) tea.Msg {
		return LoaderFrameMsg(t)
	})
}

// Update advances one frame and schedules the next while active.
func (l *Loader) Update() tea.Cmd {
	if !l.active {
		return nil
	}
	target := float64(loaderSpines - 1)
	if (l.frame/loaderHold)%2 == 1 {
		target = 0
	}
	l.pos, l.vel = l.spring.Update(l.pos, l.vel, target)
	l.frame++
	return l.tick()
}

// highlighted returns the spine index under the spring position.
func (l *Loader) highlighted() int {
	i := int(math.Round(l.pos))
	if i < 0 {
		return 0
	}
	if i >= loaderSpines {
		return loaderSpines - 1
	}
	return i
}

func (l *Loader) View(width, height int) string {
	if width < 10 {
		width = 80
	}
	if height < 5 {
		height = 24
	}

	lit := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(ColorBorder)

	hi := l.highlighted()
	var shelf strings.Builder
	for i := 0; i < loaderSpines; i++ {
		if i == hi {
			shelf.WriteString(lit.Render("█"))
		} else {
			shelf.WriteString(dim.Render("▌"))
		}
	}
	base := dim.Render(strings.Repeat("▔", loaderSpines))

	content := lipgloss.JoinVertical(lipgloss.Center,
		shelf.String(),
		base,
		"",
		QuoteStyle.Render(Truncate(l.quote, width-4)),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
