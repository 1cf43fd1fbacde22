// Package realtime menyediakan kanal publish/subscribe berbasis websocket
// dengan room bernama: "admin", "orang_tua", dan "student-{id}".
//
// Pengiriman bersifat at-most-once: tidak ada retry, tidak ada penyimpanan
// event yang terlewat, dan daftar subscriber murni in-memory per proses,
// dibangun ulang setiap reconnect. Registry ini bukan sumber kebenaran
// "siapa sudah melihat notifikasi".
package realtime

import (
	"fmt"
	"log"
	"sync"
)

// Nama room yang dikenal. Room student dibentuk lewat StudentRoom.
const (
	RoomAdmin    = "admin"
	RoomOrangTua = "orang_tua"
)

// Nama event yang dipublish service absen.
const (
	EventNewAbsen    = "new-absen"
	EventNewAbsenAll = "new-absen-all"
)

// StudentRoom membentuk nama room untuk orang tua yang memantau satu siswa.
func StudentRoom(siswaID uint) string {
	return fmt.Sprintf("student-%d", siswaID)
}

// Message adalah satu frame event yang dikirim ke client.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Notifier adalah kontrak yang dipakai service untuk fan-out notifikasi.
// Hub mengimplementasikannya; test memakai fake.
type Notifier interface {
	// NotifyAdmins mengirim event ke semua subscriber room admin.
	NotifyAdmins(event string, data interface{})
	// NotifyAll mengirim event broadcast ke semua client yang terhubung.
	NotifyAll(event string, data interface{})
	// NotifyParent mengirim event ke subscriber room student-{id}.
	NotifyParent(siswaID uint, event string, data interface{})
}

// Hub menyimpan client yang sedang terhubung dan keanggotaan room-nya.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
}

// NewHub membuat hub kosong.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("[REALTIME] Client terhubung (total: %d)", total)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		for room := range c.rooms {
			h.leaveRoomLocked(c, room)
		}
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("[REALTIME] Client terputus (total: %d)", total)
}

// joinRoom mendaftarkan client ke sebuah room.
func (h *Hub) joinRoom(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	c.rooms[room] = true
}

// leaveAllRooms mengeluarkan client dari seluruh room-nya
// (dipakai saat join-role, meniru perilaku pindah role).
func (h *Hub) leaveAllRooms(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		h.leaveRoomLocked(c, room)
	}
}

func (h *Hub) leaveRoomLocked(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// publishRoom mengirim pesan ke semua anggota satu room. Client yang
// buffer kirimnya penuh di-drop, tidak pernah memblokir pengirim.
func (h *Hub) publishRoom(room string, msg Message) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.trySend(msg)
	}
}

// publishAll mengirim pesan broadcast ke semua client yang terhubung.
func (h *Hub) publishAll(msg Message) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.trySend(msg)
	}
}

// NotifyAdmins mengirim event ke room admin.
func (h *Hub) NotifyAdmins(event string, data interface{}) {
	h.publishRoom(RoomAdmin, Message{Event: event, Data: data})
	log.Printf("[REALTIME] Notifikasi ke admin: %s", event)
}

// NotifyAll mengirim event broadcast (difilter di sisi client).
func (h *Hub) NotifyAll(event string, data interface{}) {
	h.publishAll(Message{Event: event, Data: data})
	log.Printf("[REALTIME] Notifikasi broadcast: %s", event)
}

// NotifyParent mengirim event ke room pemantau satu siswa.
func (h *Hub) NotifyParent(siswaID uint, event string, data interface{}) {
	h.publishRoom(StudentRoom(siswaID), Message{Event: event, Data: data})
	log.Printf("[REALTIME] Notifikasi ke wali siswa %d: %s", siswaID, event)
}
