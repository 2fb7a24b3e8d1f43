// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"golang.org/x/text/language"

	"github.com/gogpu/penpad"
	"github.com/gogpu/penpad/catalog"
)

// Default surface size when the client does not send one.
const (
	defaultWidth  = 600
	defaultHeight = 400
)

// Message is a client-to-server websocket message.
type Message struct {
	Type string `json:"type"`

	// Pointer position in client coordinates, for down and move.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// Brush width, for brush.
	Width int `json:"width,omitempty"`

	// Guide visibility, for guides.
	Visible bool `json:"visible,omitempty"`

	// Surface box in client coordinates, for layout.
	Rect *penpad.Rect `json:"rect,omitempty"`
}

// State is the pad state sent after every message.
type State struct {
	Type        string          `json:"type"`
	Exercise    string          `json:"exercise"`
	Template    penpad.Template `json:"template"`
	Strokes     int             `json:"strokes"`
	BrushWidth  int             `json:"brushWidth"`
	Guides      bool            `json:"guides"`
	Drawing     bool            `json:"drawing"`
	StrokeLabel string          `json:"strokeLabel"`
	BrushLabel  string          `json:"brushLabel"`
}

// Download carries an export to the browser.
type Download struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
	Data      []byte `json:"data"`
}

// Completed reports a completed exercise and the new progress.
type Completed struct {
	Type     string           `json:"type"`
	Exercise string           `json:"exercise"`
	Progress catalog.Progress `json:"progress"`
}

// session drives one pad from one websocket connection. All pad calls happen
// on the read loop goroutine.
type session struct {
	conn     *websocket.Conn
	catalog  *catalog.Catalog
	exercise catalog.Exercise
	lang     language.Tag
	rect     penpad.Rect
	pad      *penpad.Pad

	downloads []penpad.Export
	completed bool
}

func queryFloat(r *http.Request, name string, def float64) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("exercise")
	ex, ok := s.catalog.Exercise(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", catalog.ErrUnknownExercise, id))
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		penpad.Logger().Warn("server: websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	sess := &session{
		conn:     conn,
		catalog:  s.catalog,
		exercise: ex,
		lang:     s.requestLanguage(r),
		rect: penpad.Rect{
			X:      queryFloat(r, "x", 0),
			Y:      queryFloat(r, "y", 0),
			Width:  queryFloat(r, "w", defaultWidth),
			Height: queryFloat(r, "h", defaultHeight),
		},
	}
	opts := append([]penpad.Option{}, s.padOpts...)
	if ex.Letters != "" {
		opts = append(opts, penpad.WithLetters(ex.Letters))
	}
	opts = append(opts, penpad.WithDownloader(penpad.DownloaderFunc(sess.collect)))
	sess.pad = penpad.New(ex.ID, ex.Template, sess.complete, opts...)
	if err := sess.pad.Mount(penpad.LayoutFunc(sess.bounds)); err != nil {
		penpad.Logger().Warn("server: mount pad", "exercise", ex.ID, "err", err)
		return
	}
	defer sess.pad.Unmount()

	penpad.Logger().Info("server: session started", "exercise", ex.ID, "remote", r.RemoteAddr)
	if err := sess.run(); err != nil {
		penpad.Logger().Debug("server: session ended", "exercise", ex.ID, "err", err)
	}
}

func (ss *session) bounds() penpad.Rect { return ss.rect }

func (ss *session) collect(e penpad.Export) error {
	ss.downloads = append(ss.downloads, e)
	return nil
}

func (ss *session) complete() {
	if err := ss.catalog.Complete(ss.exercise.ID); err != nil {
		penpad.Logger().Warn("server: complete exercise", "exercise", ss.exercise.ID, "err", err)
		return
	}
	ss.completed = true
}

// run sends the initial state and then handles messages until the
// connection fails or closes.
func (ss *session) run() error {
	if err := ss.flush(); err != nil {
		return err
	}
	for {
		var m Message
		if err := ss.conn.ReadJSON(&m); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if err := ss.handle(m); err != nil {
			if err := ss.conn.WriteJSON(struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			}{"error", err.Error()}); err != nil {
				return err
			}
		}
		if err := ss.flush(); err != nil {
			return err
		}
	}
}

func (ss *session) handle(m Message) error {
	p := ss.pad
	if kind, ok := penpad.ParsePointerKind(m.Type); ok {
		p.HandlePointer(penpad.PointerEvent{Kind: kind, ClientX: m.X, ClientY: m.Y})
		return nil
	}
	switch m.Type {
	case "brush":
		p.SetBrushWidth(m.Width)
	case "guides":
		p.SetGuides(m.Visible)
	case "clear":
		p.Clear()
	case "export":
		return p.Export()
	case "complete":
		p.Complete()
	case "layout":
		if m.Rect == nil {
			return errors.New("layout message without rect")
		}
		ss.rect = *m.Rect
		return p.Resize()
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
	return nil
}

// flush sends pending downloads and completion notices, the pad state and,
// if the surface changed, a PNG frame.
func (ss *session) flush() error {
	for _, e := range ss.downloads {
		err := ss.conn.WriteJSON(Download{Type: "download", Name: e.Name, MediaType: e.MediaType, Data: e.Data})
		if err != nil {
			return err
		}
	}
	ss.downloads = ss.downloads[:0]

	if ss.completed {
		ss.completed = false
		err := ss.conn.WriteJSON(Completed{Type: "completed", Exercise: ss.exercise.ID, Progress: ss.catalog.Progress()})
		if err != nil {
			return err
		}
	}

	p := ss.pad
	state := State{
		Type:        "state",
		Exercise:    p.ExerciseID(),
		Template:    p.Template(),
		Strokes:     p.StrokeCount(),
		BrushWidth:  p.BrushWidth(),
		Guides:      p.GuidesVisible(),
		Drawing:     p.Drawing(),
		StrokeLabel: penpad.StrokeLabel(ss.lang, p.StrokeCount()),
		BrushLabel:  penpad.BrushLabel(ss.lang, p.BrushWidth()),
	}
	if err := ss.conn.WriteJSON(state); err != nil {
		return err
	}

	surface := p.Surface()
	if surface == nil || !surface.IsDirty() {
		return nil
	}
	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		return err
	}
	surface.MarkClean()
	if buf.Len() == 0 {
		return nil
	}
	return ss.conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}
