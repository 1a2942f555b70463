package server

import (
	"fmt"
	"io"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"latticenoise/internal/explorer"
	"latticenoise/internal/render"
)

// SSHServer wraps the SSH listener and explorer loop integration.
type SSHServer struct {
	loop    *explorer.Loop
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, loop *explorer.Loop) *SSHServer {
	return &SSHServer{
		loop:    loop,
		addr:    addr,
		hostKey: hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	viewerID, frameCh := s.loop.AddViewer(username)

	log.Printf("Viewer connected: %s (%s)", username, viewerID)
	defer func() {
		s.loop.RemoveViewer(viewerID)
		log.Printf("Viewer disconnected: %s (%s)", username, viewerID)
	}()

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(termW, termH)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	inputCh := s.loop.InputChan()
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			actions := parseInput(buf[:n])
			for _, action := range actions {
				if action == explorer.ActionQuit {
					close(quitCh)
					return
				}
				select {
				case inputCh <- explorer.InputEvent{ViewerID: viewerID, Action: action}:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	// Main render loop: read from frame channel
	for {
		select {
		case <-quitCh:
			return
		case frame, ok := <-frameCh:
			if !ok {
				return
			}

			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			output := engine.Render(viewFromFrame(frame), w, h)
			if len(output) > 0 {
				io.WriteString(sess, output)
			}
		}
	}
}

// viewFromFrame converts an explorer frame to the renderer's view.
func viewFromFrame(f explorer.Frame) render.View {
	v := f.Viewer
	return render.View{
		Field:       v.Field,
		Source:      v.Source,
		Octaves:     v.Octaves,
		Frequency:   v.Frequency,
		Lacunarity:  v.Lacunarity,
		Persistence: v.Persistence,
		CenterX:     v.CenterX,
		CenterY:     v.CenterY,
		Z:           v.Z,
		Step:        v.Step,
		Palette:     v.Palette,
		Animating:   v.Animating,
		ViewerName:  v.Name,
		Viewers:     f.Viewers,
	}
}

// keyActions maps single-byte keys to explorer actions.
var keyActions = map[rune]explorer.Action{
	'w': explorer.ActionUp, 'W': explorer.ActionUp,
	's': explorer.ActionDown, 'S': explorer.ActionDown,
	'a': explorer.ActionLeft, 'A': explorer.ActionLeft,
	'd': explorer.ActionRight, 'D': explorer.ActionRight,
	'+': explorer.ActionZoomIn, '=': explorer.ActionZoomIn,
	'-': explorer.ActionZoomOut, '_': explorer.ActionZoomOut,
	'o': explorer.ActionOctavesDown, 'O': explorer.ActionOctavesUp,
	'p': explorer.ActionPersistenceDown, 'P': explorer.ActionPersistenceUp,
	'l': explorer.ActionLacunarityDown, 'L': explorer.ActionLacunarityUp,
	'f': explorer.ActionFrequencyDown, 'F': explorer.ActionFrequencyUp,
	'z': explorer.ActionSliceBack, 'Z': explorer.ActionSliceForward,
	' ': explorer.ActionToggleAnimation,
	'c': explorer.ActionCyclePalette, 'C': explorer.ActionCyclePalette,
	'r': explorer.ActionReset, 'R': explorer.ActionReset,
	'q': explorer.ActionQuit, 'Q': explorer.ActionQuit,
	3: explorer.ActionQuit, // Ctrl-C
}

// parseInput converts raw bytes into viewer actions.
// Handles arrow key escape sequences and the single-key bindings above.
func parseInput(data []byte) []explorer.Action {
	var actions []explorer.Action
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, explorer.ActionUp)
			case 'B':
				actions = append(actions, explorer.ActionDown)
			case 'C':
				actions = append(actions, explorer.ActionRight)
			case 'D':
				actions = append(actions, explorer.ActionLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if a, ok := keyActions[r]; ok {
			actions = append(actions, a)
		}
		i += size
	}
	return actions
}
