package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"weatherseed/internal/protocol"
	"weatherseed/internal/search"
	"weatherseed/internal/weather"
)

// Server upgrades HTTP connections to WebSocket and registers each
// one with a Hub.
type Server struct {
	hub      *Hub
	log      *log.Logger
	upgrader websocket.Upgrader
}

func NewServer(hub *Hub, logger *log.Logger) *Server {
	return &Server{
		hub: hub,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler upgrades the connection and pumps frames until it closes.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Printf("ws: upgrade failed: %v", err)
			return
		}
		c := newClient(conn, s.hub)
		go c.writePump()
		c.readPump()
	}
}

// Broadcaster implements search.Sink by marshaling every event to
// JSON and publishing it to the hub. It recomputes a WeatherDetail for
// every Found event so a front end can render why a seed matched
// without re-running the oracle itself.
type Broadcaster struct {
	hub    *Hub
	legacy bool
}

func NewBroadcaster(hub *Hub, legacy bool) *Broadcaster {
	return &Broadcaster{hub: hub, legacy: legacy}
}

var _ search.Sink = (*Broadcaster)(nil)

func (b *Broadcaster) Start(total int64) {
	b.publish(protocol.NewStartEvent(total))
}

func (b *Broadcaster) Progress(checked, total int64, percent, speed, elapsed float64) {
	b.publish(protocol.NewProgressEvent(checked, total, percent, speed, elapsed))
}

func (b *Broadcaster) Found(seed int32) {
	b.publish(protocol.NewFoundEvent(seed, b.weatherDetail(seed)))
}

// weatherDetail recomputes seed's calendar on a fresh Oracle: Found
// fires concurrently from multiple workers, and an Oracle's scratch
// buffer is not safe to share across goroutines.
func (b *Broadcaster) weatherDetail(seed int32) *protocol.WeatherDetail {
	o := weather.NewOracle()
	cal := o.Predict(seed, b.legacy)
	spring, summer, fall := weather.RainyDaysBySeason(cal)
	return &protocol.WeatherDetail{
		SpringRain:   spring,
		SummerRain:   summer,
		FallRain:     fall,
		GreenRainDay: o.GreenRainDay(seed, b.legacy),
	}
}

func (b *Broadcaster) Complete(totalFound int, elapsed float64) {
	b.publish(protocol.NewCompleteEvent(totalFound, elapsed))
}

func (b *Broadcaster) publish(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	b.hub.Broadcast(data)
}
