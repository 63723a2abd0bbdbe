package main

import (
	"log"
	"net/http"
	"sync"
)

// Broadcaster fans the latest encoded JPEG frame out to all connected HTTP
// clients.  Slow clients skip frames rather than stall the capture loop
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewBroadcaster returns an empty Broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan []byte]struct{}),
	}
}

// Publish sends a copy of the frame to every client that is ready for one
func (b *Broadcaster) Publish(jpg []byte) {

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.clients) == 0 {
		return
	}

	buf := make([]byte, len(jpg))
	copy(buf, jpg)

	for ch := range b.clients {
		select {
		case ch <- buf:
		default:
			// client still writing previous frame
		}
	}
}

func (b *Broadcaster) subscribe() chan []byte {
	ch := make(chan []byte, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
}

// Clients returns the number of connected clients
func (b *Broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Stream is the HTTP handler function used to stream video frames to browser
func (b *Broadcaster) Stream(w http.ResponseWriter, r *http.Request) {

	log.Printf("New client connection established\n")

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	ch := b.subscribe()
	defer b.unsubscribe(ch)

	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			log.Printf("Client disconnected\n")
			return

		case jpg := <-ch:
			w.Write([]byte("--frame\r\n"))
			w.Write([]byte("Content-Type: image/jpeg\r\n\r\n"))

			if _, err := w.Write(jpg); err != nil {
				log.Printf("Client write failed: %v", err)
				return
			}

			w.Write([]byte("\r\n"))

			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
