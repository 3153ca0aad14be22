package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"arena-clash/server/internal/arena"
	"arena-clash/server/logging"
	"arena-clash/server/logging/sinks"
)

const (
	writeWait = 10 * time.Second
	tickRate  = 30 // ticks per second; spectators interpolate between frames
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectator-only endpoint; any origin may watch.
	CheckOrigin: func(*http.Request) bool { return true },
}

func main() {
	var (
		addr       = flag.String("addr", ":8080", "listen address")
		configPath = flag.String("config", "config/battle.yaml", "battle config file (YAML)")
		clientDir  = flag.String("client", "client", "directory with the spectator client")
		logJSON    = flag.String("log-json", "", "append JSON log lines to this file")
	)
	flag.Parse()

	cfg, err := arena.LoadBattleConfig(*configPath)
	if err != nil {
		log.Fatalf("battle config: %v", err)
	}

	router, err := buildLogRouter(*logJSON)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := router.Close(ctx); err != nil {
			log.Printf("logging shutdown: %v", err)
		}
	}()

	publisher := logging.WithFields(router, map[string]any{"service": "arena-clash"})
	hub := newHub(cfg, publisher)

	stop := make(chan struct{})
	go hub.RunSimulation(stop)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(*clientDir)))
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.DiagnosticsSnapshot()); err != nil {
			log.Printf("diagnostics encode: %v", err)
		}
	})

	server := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		log.Printf("listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

func buildLogRouter(jsonPath string) (*logging.Router, error) {
	cfg := logging.DefaultConfig()
	named := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console)},
	}
	if jsonPath != "" {
		jsonSink, err := sinks.NewJSONSink(logging.JSONConfig{FilePath: jsonPath})
		if err != nil {
			return nil, err
		}
		named = append(named, logging.NamedSink{Name: "json", Sink: jsonSink})
	}
	return logging.NewRouter(nil, cfg, named), nil
}

// serveWS upgrades a spectator connection, sends the init message, and
// pumps control messages until the peer goes away.
func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	sub, init := hub.Subscribe(conn)
	if err := sub.sendJSON(init); err != nil {
		log.Printf("failed to send init to subscriber %d: %v", sub.id, err)
		hub.Unsubscribe(sub.id)
		conn.Close()
		return
	}

	go func() {
		defer func() {
			hub.Unsubscribe(sub.id)
			conn.Close()
		}()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := hub.HandleControl(raw); err != nil {
				log.Printf("subscriber %d control: %v", sub.id, err)
			}
		}
	}()
}
