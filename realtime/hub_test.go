package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient membuat client terdaftar tanpa koneksi websocket sungguhan;
// trySend dan manajemen room tidak menyentuh conn.
func testClient(h *Hub, buffer int) *Client {
	c := &Client{
		hub:   h,
		send:  make(chan Message, buffer),
		rooms: make(map[string]bool),
	}
	h.register(c)
	return c
}

func drain(c *Client) []Message {
	var out []Message
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestNotifyAdminsHanyaKeRoomAdmin(t *testing.T) {
	h := NewHub()
	admin := testClient(h, 8)
	ortu := testClient(h, 8)

	h.joinRoom(admin, RoomAdmin)
	h.joinRoom(ortu, RoomOrangTua)

	h.NotifyAdmins(EventNewAbsen, map[string]int{"jurnal_id": 1})

	adminMsgs := drain(admin)
	require.Len(t, adminMsgs, 1)
	assert.Equal(t, EventNewAbsen, adminMsgs[0].Event)
	assert.Empty(t, drain(ortu))
}

func TestNotifyAllKeSemuaClient(t *testing.T) {
	h := NewHub()
	a := testClient(h, 8)
	b := testClient(h, 8) // tidak join room manapun

	h.joinRoom(a, RoomAdmin)

	h.NotifyAll(EventNewAbsenAll, nil)

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
}

func TestNotifyParentPerSiswa(t *testing.T) {
	h := NewHub()
	pemantau := testClient(h, 8)
	lain := testClient(h, 8)

	h.joinRoom(pemantau, StudentRoom(7))
	h.joinRoom(lain, StudentRoom(8))

	h.NotifyParent(7, EventNewAbsen, nil)

	assert.Len(t, drain(pemantau), 1)
	assert.Empty(t, drain(lain))
}

func TestJoinRoleMeninggalkanRoomLama(t *testing.T) {
	h := NewHub()
	c := testClient(h, 8)

	h.joinRoom(c, RoomOrangTua)
	h.joinRoom(c, StudentRoom(3))
	h.leaveAllRooms(c)
	h.joinRoom(c, RoomAdmin)

	h.NotifyParent(3, EventNewAbsen, nil)
	assert.Empty(t, drain(c), "room lama sudah ditinggalkan")

	h.NotifyAdmins(EventNewAbsen, nil)
	assert.Len(t, drain(c), 1)
}

// Client yang buffer kirimnya penuh di-drop, pengirim tidak boleh terblokir.
func TestClientMacetDiDrop(t *testing.T) {
	h := NewHub()
	macet := testClient(h, 1)
	sehat := testClient(h, 8)

	h.joinRoom(macet, RoomAdmin)
	h.joinRoom(sehat, RoomAdmin)

	h.NotifyAdmins(EventNewAbsen, 1) // memenuhi buffer si macet
	h.NotifyAdmins(EventNewAbsen, 2) // buffer penuh -> macet di-unregister

	h.mu.RLock()
	_, masihAda := h.clients[macet]
	h.mu.RUnlock()
	assert.False(t, masihAda)

	// Client sehat tetap menerima keduanya.
	assert.Len(t, drain(sehat), 2)

	// Setelah di-drop, broadcast berikutnya tidak panic dan tidak sampai.
	h.NotifyAdmins(EventNewAbsen, 3)
	assert.Len(t, drain(sehat), 1)
}

func TestUnregisterDuaKaliAman(t *testing.T) {
	h := NewHub()
	c := testClient(h, 1)
	h.joinRoom(c, RoomAdmin)

	h.unregister(c)
	h.unregister(c) // idempotent, tidak boleh panic / double close

	h.NotifyAdmins(EventNewAbsen, nil)
}
