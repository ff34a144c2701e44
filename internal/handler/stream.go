package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"campania/internal/notify"
)

const (
	eventReady = "ready"
	eventPing  = "ping"

	subscriberBuffer = 16
	defaultHeartbeat = 25 * time.Second
)

func writeEvent(w io.Writer, name string, data []byte) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}

// OrderStreamHandler pushes order events as Server-Sent Events until the
// client goes away. The subscription is released on return.
func OrderStreamHandler(broker *notify.Broker, heartbeat time.Duration) http.HandlerFunc {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)

		sub := broker.Subscribe(subscriberBuffer)
		defer sub.Close()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, eventReady, []byte(`"ok"`)); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			slog.Error("stream flush unsupported", "error", err)
			return
		}

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return

			case <-ticker.C:
				if err := writeEvent(w, eventPing, []byte(`"1"`)); err != nil {
					return
				}

			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				data, err := json.Marshal(ev.Order)
				if err != nil {
					slog.Error("encode stream event failed", "event", ev.Name, "error", err)
					continue
				}
				if err := writeEvent(w, ev.Name, data); err != nil {
					return
				}
			}

			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
