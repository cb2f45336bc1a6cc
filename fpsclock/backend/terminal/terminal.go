package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-fpsclock/fpsclock/backend"
	"github.com/valerio/go-fpsclock/fpsclock/timing"
)

const (
	logCapacity = 100
	logTop      = 8 // first row of the log pane
	helpText    = "q/Esc: quit"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTitle   = styleDefault.Bold(true)
	styleOverrun = styleDefault.Foreground(tcell.ColorRed)
	styleDim     = styleDefault.Foreground(tcell.ColorGray)
)

// Backend implements the Backend interface using tcell, showing the timing of
// the most recent frame and a pane of recent log lines.
type Backend struct {
	screen    tcell.Screen
	logLevel  slog.Level
	logBuffer *LogBuffer
	config    backend.Config

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once

	frames   uint64
	overruns uint64
}

// New creates a terminal backend drawing on the process terminal.
func New(logLevel slog.Level) *Backend {
	return &Backend{logLevel: logLevel}
}

// NewWithScreen creates a terminal backend drawing on screen. The screen is
// initialized by Init and finalized by Cleanup.
func NewWithScreen(screen tcell.Screen, logLevel slog.Level) *Backend {
	return &Backend{screen: screen, logLevel: logLevel}
}

// Init initializes the screen, captures the default logger and starts
// listening for keys and signals.
func (t *Backend) Init(config backend.Config) error {
	t.config = config
	t.quit = make(chan struct{})
	t.done = make(chan struct{})
	t.quitOnce = sync.Once{}
	t.doneOnce = sync.Once{}
	t.frames = 0
	t.overruns = 0

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// anything written to stderr would corrupt the screen
	t.logBuffer = NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(NewLogHandler(t.logBuffer, t.logLevel)))
	slog.Info("Terminal backend initialized", "title", config.Title)

	t.screen.SetStyle(styleDefault)
	t.screen.Clear()

	go t.handleInput()
	go t.handleSignals()

	return nil
}

// Update draws the frame and reports whether a quit was requested.
func (t *Backend) Update(frame backend.Frame) (bool, error) {
	t.frames++
	if frame.Overrun() {
		t.overruns++
	}

	t.render(frame)
	t.screen.Show()

	if t.config.MaxFrames > 0 && t.frames >= t.config.MaxFrames {
		slog.Info("Frame limit reached", "frames", t.frames)
		t.requestQuit()
	}

	select {
	case <-t.quit:
		return true, nil
	default:
		return false, nil
	}
}

// Cleanup stops the input goroutines and restores the terminal.
func (t *Backend) Cleanup() error {
	t.doneOnce.Do(func() {
		close(t.done)
		slog.Info("Finishing terminal")
		t.screen.Fini()
	})
	return nil
}

// LogBuffer returns the buffer receiving log records while the UI is active.
func (t *Backend) LogBuffer() *LogBuffer {
	return t.logBuffer
}

func (t *Backend) requestQuit() {
	t.quitOnce.Do(func() {
		if t.config.Callbacks.OnQuit != nil {
			t.config.Callbacks.OnQuit()
		}
		close(t.quit)
	})
}

func (t *Backend) handleInput() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			// screen finalized
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				t.requestQuit()
			case tcell.KeyRune:
				if ev.Rune() == 'q' || ev.Rune() == 'Q' {
					t.requestQuit()
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		slog.Info("Received signal to stop", "signal", sig)
		t.requestQuit()
	case <-t.done:
	}
}

func (t *Backend) render(frame backend.Frame) {
	t.screen.Clear()
	width, height := t.screen.Size()

	t.drawText(0, 0, width, styleTitle, " "+t.config.Title+" ")

	if frame.Rate > 0 {
		period := timing.FrameDuration(frame.Rate)
		t.drawText(0, 2, width, styleDefault, fmt.Sprintf("Target: %d fps (%s per frame)", frame.Rate, period))
	} else {
		t.drawText(0, 2, width, styleDefault, "Target: unpaced")
	}

	slackStyle := styleDefault
	if frame.Overrun() {
		slackStyle = styleOverrun
	}
	t.drawText(0, 3, width, slackStyle, fmt.Sprintf("Time since last tick (in nanosecs): %.0f", frame.Slack))
	t.drawText(0, 4, width, styleDefault, fmt.Sprintf("Frame: %d  Overruns: %d", t.frames, t.overruns))
	t.drawText(0, 5, width, styleDefault, fmt.Sprintf("Slept: %s", frame.Slept.Round(time.Microsecond)))

	t.drawText(0, logTop-1, width, styleTitle, "Logs")
	rows := height - logTop - 1
	if rows > 0 {
		for i, entry := range t.logBuffer.Recent(rows) {
			t.drawText(0, logTop+i, width, styleDim, FormatLogEntry(entry))
		}
	}

	if height > 0 {
		t.drawText(0, height-1, width, styleDim, helpText)
	}
}

func (t *Backend) drawText(x, y, maxWidth int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= maxWidth {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
