package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB membuka database sqlite in-memory terpisah per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// notifiedEvent merekam satu pemanggilan Notifier oleh service.
type notifiedEvent struct {
	Target  string // "admin", "all", atau "student"
	Event   string
	SiswaID uint
	Data    interface{}
}

// fakeNotifier merekam semua notifikasi tanpa jaringan.
type fakeNotifier struct {
	mu     sync.Mutex
	events []notifiedEvent
}

func (f *fakeNotifier) NotifyAdmins(event string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, notifiedEvent{Target: "admin", Event: event, Data: data})
}

func (f *fakeNotifier) NotifyAll(event string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, notifiedEvent{Target: "all", Event: event, Data: data})
}

func (f *fakeNotifier) NotifyParent(siswaID uint, event string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, notifiedEvent{Target: "student", Event: event, SiswaID: siswaID, Data: data})
}

func (f *fakeNotifier) recorded() []notifiedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notifiedEvent, len(f.events))
	copy(out, f.events)
	return out
}

// panicNotifier selalu panic, untuk memastikan kegagalan publish tidak
// pernah menggagalkan submit yang sudah commit.
type panicNotifier struct{}

func (panicNotifier) NotifyAdmins(string, interface{})       { panic("hub mati") }
func (panicNotifier) NotifyAll(string, interface{})          { panic("hub mati") }
func (panicNotifier) NotifyParent(uint, string, interface{}) { panic("hub mati") }

// ---------- fixture helpers ----------

func seedGuru(t *testing.T, db *gorm.DB, username, role string) *model.Guru {
	t.Helper()
	guru := model.Guru{
		Username: username,
		Password: "hashed",
		Nama:     "Guru " + username,
		NIP:      "nip-" + username,
		Mapel:    "Matematika",
		Role:     role,
	}
	require.NoError(t, db.Create(&guru).Error)
	return &guru
}

func seedKelas(t *testing.T, db *gorm.DB, nama string, jurusanID *uint) *model.Kelas {
	t.Helper()
	kelas := model.Kelas{
		Nama:        nama,
		Tingkat:     "XII",
		TahunAjaran: "2025/2026",
		JurusanID:   jurusanID,
	}
	require.NoError(t, db.Create(&kelas).Error)
	return &kelas
}

func seedSiswa(t *testing.T, db *gorm.DB, nis, nama string, kelasID uint) *model.Siswa {
	t.Helper()
	siswa := model.Siswa{NIS: nis, Nama: nama, KelasID: kelasID}
	require.NoError(t, db.Create(&siswa).Error)
	return &siswa
}

// seedJurnalAbsensi membuat satu jurnal lengkap dengan absensinya,
// status per siswa diberikan lewat map siswaID -> status.
func seedJurnalAbsensi(t *testing.T, db *gorm.DB, guruID, kelasID uint, tanggal time.Time, mapel string, statusPerSiswa map[uint]string) *model.Jurnal {
	t.Helper()
	jurnal := model.Jurnal{
		Tanggal:       tanggal,
		JamMulai:      "07:00:00",
		JamSelesai:    "08:30:00",
		MataPelajaran: mapel,
		Materi:        "Materi " + mapel,
		GuruID:        guruID,
		KelasID:       kelasID,
	}
	require.NoError(t, db.Create(&jurnal).Error)
	for siswaID, status := range statusPerSiswa {
		require.NoError(t, db.Create(&model.Absensi{
			JurnalID: jurnal.ID,
			SiswaID:  siswaID,
			Status:   status,
		}).Error)
	}
	return &jurnal
}
