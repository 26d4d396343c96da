package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/engine"
	"github.com/bentance/virtualgallery/gallery"
	"github.com/bentance/virtualgallery/viewer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	backendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	stubStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type tuiState int

const (
	stateSelectBackend tuiState = iota
	stateStarting
	stateRunning
	stateFailed
)

type interactiveModel struct {
	err         error
	v           *viewer.Viewer
	eng         engine.Engine
	galleryPath string
	shot        string
	backends    []engine.Info
	spin        spinner.Model
	width       int
	height      int
	selected    int
	level       int
	galleryIdx  int
	paused      bool
	state       tuiState
}

func newInteractiveModel(galleryPath string, width, height int) *interactiveModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &interactiveModel{
		galleryPath: galleryPath,
		backends:    engine.AvailableEngines(),
		spin:        sp,
		width:       width,
		height:      height,
		level:       gallery.DefaultLevel,
		state:       stateSelectBackend,
	}
}

type startedMsg struct {
	err error
	v   *viewer.Viewer
	eng engine.Engine
}

type screenshotMsg struct {
	err  error
	path string
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

// start builds a viewer for the selected backend and runs one startup
// attempt. Runs off the update loop; the result comes back as a message.
func (m *interactiveModel) start() tea.Msg {
	info := m.backends[m.selected]

	data, err := loadGallery(m.galleryPath, gallery.SourceOnline)
	if err != nil {
		return startedMsg{err: err}
	}

	v := viewer.New(viewer.Options{
		Backend: info.ID,
	})
	v.SetSurface(virtualgallery.NewCanvas("tui", m.width, m.height))
	v.SetGalleryData(data)

	if err := v.TryStart(context.Background()); err != nil {
		v.Close()
		return startedMsg{err: err}
	}
	eng := v.Engine()
	if eng == nil {
		v.Close()
		return startedMsg{err: fmt.Errorf("engine did not start")}
	}
	return startedMsg{v: v, eng: eng}
}

func (m *interactiveModel) screenshot() tea.Msg {
	path := fmt.Sprintf("gallery-%s.png", time.Now().Format("150405"))
	if err := saveScreenshot(context.Background(), m.eng, path); err != nil {
		return screenshotMsg{err: err}
	}
	return screenshotMsg{path: path}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.v != nil {
				m.v.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectBackend && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectBackend && m.selected < len(m.backends)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectBackend:
				m.state = stateStarting
				return m, tea.Batch(m.spin.Tick, m.start)
			case stateFailed:
				m.state = stateSelectBackend
				m.err = nil
			}

		case "1", "2", "3", "4":
			if m.state == stateRunning {
				level := int(msg.String()[0] - '0')
				if err := m.eng.ChangeLevel(context.Background(), level); err != nil {
					m.err = err
				} else {
					m.level = level
					m.err = nil
				}
			}

		case "n":
			if m.state == stateRunning {
				if err := m.eng.ChangeGallery(context.Background(), 1); err == nil {
					m.galleryIdx++
				}
			}

		case "p":
			if m.state == stateRunning {
				if err := m.eng.ChangeGallery(context.Background(), -1); err == nil {
					m.galleryIdx--
				}
			}

		case " ":
			if m.state == stateRunning {
				if m.paused {
					m.eng.Resume()
				} else {
					m.eng.Pause()
				}
				m.paused = !m.paused
			}

		case "s":
			if m.state == stateRunning {
				return m, m.screenshot
			}
		}

	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateFailed
			return m, nil
		}
		m.v = msg.v
		m.eng = msg.eng
		m.state = stateRunning
		return m, tick()

	case screenshotMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.shot = msg.path
			m.err = nil
		}

	case tickMsg:
		if m.state == stateRunning {
			return m, tick()
		}

	case spinner.TickMsg:
		if m.state == stateStarting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Gallery Viewer"))
	if m.galleryPath != "" {
		b.WriteString(" ")
		b.WriteString(m.galleryPath)
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectBackend:
		b.WriteString("Select a rendering backend:\n\n")
		for i, info := range m.backends {
			line := m.formatBackend(info)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter start • q quit"))

	case stateStarting:
		b.WriteString(m.spin.View())
		b.WriteString(" Starting ")
		b.WriteString(backendStyle.Render(string(m.backends[m.selected].ID)))
		b.WriteString("...")

	case stateRunning:
		caps := m.eng.Capabilities()
		running := okStyle.Render("rendering")
		if m.paused {
			running = stubStyle.Render("paused")
		}
		b.WriteString(fmt.Sprintf("Backend:  %s\n", backendStyle.Render(m.eng.Name())))
		b.WriteString(fmt.Sprintf("State:    %s (%s)\n", m.eng.State(), running))
		b.WriteString(fmt.Sprintf("Level:    %d of %d\n", m.level, gallery.MaxLevel))
		b.WriteString(fmt.Sprintf("Gallery:  #%d\n", m.galleryIdx))
		b.WriteString(fmt.Sprintf("Surface:  %dx%d, max texture %d\n", m.width, m.height, caps.MaxTextureSize))
		if m.shot != "" {
			b.WriteString("\n")
			b.WriteString(okStyle.Render("Screenshot saved: " + m.shot))
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("1-4 level • n/p gallery • space pause • s screenshot • q quit"))

	case stateFailed:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Startup failed: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m *interactiveModel) formatBackend(info engine.Info) string {
	status := okStyle.Render("implemented")
	if !info.Implemented {
		status = stubStyle.Render("stub")
	}
	marker := "  "
	if info.ID == engine.DefaultBackend {
		marker = " *"
	}
	return backendStyle.Render(string(info.ID)) + marker + " " + info.DisplayName + " (" + status + ")"
}

func runInteractive(galleryPath string, width, height int) error {
	p := tea.NewProgram(newInteractiveModel(galleryPath, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
