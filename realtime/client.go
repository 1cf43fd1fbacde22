package realtime

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Frontend dilayani dari origin berbeda saat development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage adalah frame yang dikirim client ke server:
// join-role {role, user_id}, join-student {siswa_id}, atau ping.
type clientMessage struct {
	Event   string `json:"event"`
	Role    string `json:"role,omitempty"`
	UserID  uint   `json:"user_id,omitempty"`
	SiswaID uint   `json:"siswa_id,omitempty"`
}

// Client menjembatani satu koneksi websocket dengan hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	// rooms yang diikuti client ini; hanya disentuh di bawah mutex hub.
	rooms map[string]bool

	// identitas yang dideklarasikan lewat join-role (informasional, untuk log).
	userID uint
	role   string
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:   hub,
		conn:  conn,
		send:  make(chan Message, 64),
		rooms: make(map[string]bool),
	}
}

// trySend memasukkan pesan ke buffer kirim client. Kalau buffer penuh,
// client dianggap macet dan diputus; pengirim tidak boleh ikut terblokir.
// Pengiriman dilakukan di bawah read-lock hub supaya tidak balapan dengan
// unregister yang menutup channel.
func (c *Client) trySend(msg Message) {
	c.hub.mu.RLock()
	if !c.hub.clients[c] {
		c.hub.mu.RUnlock()
		return
	}
	full := false
	select {
	case c.send <- msg:
	default:
		full = true
	}
	c.hub.mu.RUnlock()

	if full {
		log.Printf("[REALTIME] Buffer kirim penuh, client di-drop (user: %d, role: %s)", c.userID, c.role)
		c.hub.unregister(c)
	}
}

// readPump membaca frame dari client dan memproses protokol join/ping.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[REALTIME] Koneksi websocket ditutup tidak wajar: %v", err)
			}
			break
		}

		switch msg.Event {
		case "join-role":
			// Keluar dari semua room lama dulu, lalu masuk room sesuai role.
			c.hub.leaveAllRooms(c)
			c.userID = msg.UserID
			c.role = msg.Role
			c.hub.joinRoom(c, msg.Role)
			log.Printf("[REALTIME] Client (user: %d, role: %s) join room %s", msg.UserID, msg.Role, msg.Role)

		case "join-student":
			// Orang tua memantau satu siswa tertentu.
			c.hub.joinRoom(c, StudentRoom(msg.SiswaID))
			log.Printf("[REALTIME] Client join room %s", StudentRoom(msg.SiswaID))

		case "ping":
			c.trySend(Message{Event: "pong"})
		}
	}
}

// writePump menulis pesan dari hub ke koneksi, plus ping berkala.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub menutup channel: kirim close frame.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS meng-upgrade request HTTP menjadi koneksi websocket dan
// mendaftarkannya ke hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[REALTIME] Gagal upgrade websocket: %v", err)
		return
	}

	client := newClient(h, conn)
	h.register(client)

	go client.writePump()
	go client.readPump()
}
