package explorer

import (
	"fmt"
	"sync"
	"time"

	"latticenoise/internal/noise"
)

const (
	TickRate      = 20 // ticks per second
	InputChanSize = 256
)

// Frame is a per-viewer snapshot sent to the session for rendering.
type Frame struct {
	Viewer  ViewerSnapshot
	Viewers int
	Tick    uint64
}

// FrameChan is the per-session channel that receives frames.
type FrameChan chan Frame

// savedState holds the exploration state of a disconnected viewer.
type savedState struct {
	viewer Viewer
	gen    noise.Perlin
}

// Loop owns every viewer's state. Inputs are applied and generators are
// reconfigured only on the loop goroutine; sessions receive copies.
type Loop struct {
	cfg       noise.Config
	inputCh   chan InputEvent
	tickCount uint64

	mu         sync.RWMutex
	viewers    map[string]*Viewer
	frameChans map[string]FrameChan
	saved      map[string]savedState // keyed by username

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop whose viewers start from cfg.
func NewLoop(cfg noise.Config) (*Loop, error) {
	if _, err := cfg.Build(); err != nil {
		return nil, fmt.Errorf("explorer config: %w", err)
	}
	return &Loop{
		cfg:        cfg,
		inputCh:    make(chan InputEvent, InputChanSize),
		viewers:    make(map[string]*Viewer),
		frameChans: make(map[string]FrameChan),
		saved:      make(map[string]savedState),
		stopCh:     make(chan struct{}),
	}, nil
}

// InputChan returns the shared input channel for sessions to send events.
func (l *Loop) InputChan() chan<- InputEvent {
	return l.inputCh
}

// AddViewer registers a viewer using their username as identity.
// If the username was seen before, camera and parameters are restored.
// Returns the effective viewer ID and the frame channel.
func (l *Loop) AddViewer(name string) (string, FrameChan) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// If this username is already online, add a suffix
	id := name
	if _, online := l.viewers[id]; online {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}

	var v *Viewer
	if ss, ok := l.saved[name]; ok {
		restored := ss.viewer
		gen := ss.gen
		restored.ID = id
		restored.gen = &gen
		restored.refresh()
		v = &restored
	} else {
		v = newViewer(id, name, l.cfg)
	}

	l.viewers[id] = v
	ch := make(FrameChan, 2)
	l.frameChans[id] = ch
	return id, ch
}

// RemoveViewer saves the viewer's state and unregisters them.
func (l *Loop) RemoveViewer(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.viewers[id]; ok {
		l.saved[v.Name] = savedState{viewer: *v, gen: *v.gen}
		delete(l.viewers, id)
	}
	if ch, ok := l.frameChans[id]; ok {
		close(ch)
		delete(l.frameChans, id)
	}
}

// Run starts the loop. Blocks until Stop is called.
func (l *Loop) Run() {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

// Stop shuts down the loop. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *Loop) tick() {
	// Drain all pending input events
	for {
		select {
		case ev := <-l.inputCh:
			l.processInput(ev)
		default:
			goto drained
		}
	}
drained:

	l.tickCount++

	// Viewer state is only written on this goroutine, so the read lock is
	// enough to guard the maps against Add/RemoveViewer.
	l.mu.RLock()
	defer l.mu.RUnlock()
	for id, v := range l.viewers {
		if v.Animating {
			v.Z += AnimSlicePerTick
		}
		frame := Frame{Viewer: v.Snapshot(), Viewers: len(l.viewers), Tick: l.tickCount}
		select {
		case l.frameChans[id] <- frame:
		default:
			// Drop frame for slow client
		}
	}
}

func (l *Loop) processInput(ev InputEvent) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if v, ok := l.viewers[ev.ViewerID]; ok {
		v.apply(ev.Action, l.cfg)
	}
}
