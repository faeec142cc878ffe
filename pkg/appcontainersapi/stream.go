package appcontainersapi

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainers"
	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	v1 "k8s.io/api/core/v1"
)

const writeTimeout = 10 * time.Second

// tableStream pushes the containers table over a WebSocket connection each
// time the pods or the client's table settings change.
type tableStream struct {
	conn    *websocket.Conn
	fetcher application.Fetcher

	mu    sync.Mutex
	view  appcontainers.View
	query appcontainers.Query
	state datatable.State
}

func newTableStream(conn *websocket.Conn, fetcher application.Fetcher, q appcontainers.Query, state datatable.State) *tableStream {
	return &tableStream{
		conn:    conn,
		fetcher: fetcher,
		query:   q,
		state:   state,
	}
}

// run blocks until the client disconnects or the application is gone.
func (s *tableStream) run() {
	defer s.conn.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		s.readStates()
	}()

	watcher := appcontainers.Watcher{
		Fetcher:     s.fetcher,
		Application: s.query.Application,
		OnChange:    s.setPods,
		OnReload:    s.setReloading,
	}
	err := watcher.Run(ctx)
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err != nil {
		log.Info().WithError(err).
			WithString("name", s.query.Application.Name).
			Message("Stopped watching application.")
		closeMsg = websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
}

func (s *tableStream) readStates() {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().WithError(err).Message("WebSocket read ended.")
			}
			return
		}
		var query tableQuery
		if err := json.Unmarshal(msg, &query); err != nil {
			log.Debug().WithError(err).Message("Ignoring invalid table settings message.")
			continue
		}
		state := query.state()
		if err := state.Validate(); err != nil {
			log.Debug().WithError(err).Message("Ignoring invalid table settings message.")
			continue
		}
		s.setState(state)
	}
}

func (s *tableStream) setPods(pods []v1.Pod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Pods = pods
	s.query.IsLoading = false
	s.send()
}

func (s *tableStream) setReloading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.IsLoading = true
	s.send()
}

func (s *tableStream) setState(state datatable.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.send()
}

// send must be called with the mutex held.
func (s *tableStream) send() {
	table := newTable(s.view.Table(s.query, s.state), s.query.ServerMetricsEnabled)
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(table); err != nil {
		log.Debug().WithError(err).Message("Failed to write table to WebSocket.")
	}
}
