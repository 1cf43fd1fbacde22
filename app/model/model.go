package model

import "time"

// Status absensi adalah enum tertutup 3 nilai.
// Nilai di luar ini tidak valid dan harus ditolak sebelum masuk database.
const (
	StatusHadir    = "hadir"
	StatusIzin     = "izin"
	StatusTanpaKet = "tanpa_ket"
)

// StatusValid mengecek apakah sebuah status absensi termasuk enum yang diizinkan.
func StatusValid(status string) bool {
	switch status {
	case StatusHadir, StatusIzin, StatusTanpaKet:
		return true
	}
	return false
}

// Role guru. Admin adalah Guru dengan role=admin, tidak ada tabel terpisah.
const (
	RoleGuru  = "guru"
	RoleAdmin = "admin"
)

// Guru merepresentasikan guru sekaligus admin sistem.
type Guru struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Nama      string    `gorm:"not null" json:"nama"`
	NIP       string    `gorm:"column:nip;unique;not null" json:"nip"`
	Mapel     string    `gorm:"not null" json:"mapel"`
	JamMulai  *string   `gorm:"type:varchar(8)" json:"jam_mulai"` // jam default mengajar, format HH:MM:SS
	Role      string    `gorm:"type:varchar(10);not null;default:guru" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Guru) TableName() string { return "guru" }

// Jurusan (major/peminatan). Saat dihapus, kelas di bawahnya TIDAK ikut
// terhapus: jurusan_id kelas di-set NULL.
type Jurusan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nama      string    `gorm:"type:varchar(100);not null" json:"nama"`
	Singkatan *string   `gorm:"type:varchar(20)" json:"singkatan"`
	Deskripsi *string   `gorm:"type:text" json:"deskripsi"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Jurusan) TableName() string { return "jurusans" }

// Kelas memiliki banyak Siswa dan Jurnal (cascade saat dihapus lewat storage,
// tapi jalur tulis bisnis menolak hapus kelas yang masih punya siswa/jurnal).
type Kelas struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nama        string    `gorm:"unique;not null" json:"nama"`
	Tingkat     string    `gorm:"not null" json:"tingkat"`
	TahunAjaran string    `gorm:"not null" json:"tahun_ajaran"`
	JurusanID   *uint     `json:"jurusan_id"`
	Jurusan     *Jurusan  `gorm:"foreignKey:JurusanID;constraint:OnDelete:SET NULL" json:"Jurusan,omitempty"`
	Siswa       []Siswa   `gorm:"foreignKey:KelasID" json:"Siswa,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Kelas) TableName() string { return "kelas" }

// Siswa selalu terikat ke tepat satu Kelas.
type Siswa struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NIS       string    `gorm:"column:nis;unique;not null" json:"nis"`
	Nama      string    `gorm:"not null" json:"nama"`
	Email     *string   `gorm:"unique" json:"email"`
	Phone     *string   `json:"phone"`
	KelasID   uint      `gorm:"not null" json:"kelas_id"`
	Kelas     *Kelas    `gorm:"foreignKey:KelasID;constraint:OnDelete:CASCADE" json:"Kelas,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Siswa) TableName() string { return "siswa" }

// OrangTua (wali murid). Relasi ke Siswa many-to-many lewat tabel
// siswa_orang_tua yang dikelola eksplisit (lihat SiswaOrangTua).
type OrangTua struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Nama      string    `gorm:"not null" json:"nama"`
	Email     string    `gorm:"unique" json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (OrangTua) TableName() string { return "orang_tua" }

// SiswaOrangTua adalah join table eksplisit Siswa <-> OrangTua.
// Sengaja bukan many2many GORM supaya pembacaan dan pengecekan kepemilikan
// dilakukan lewat query join biasa.
type SiswaOrangTua struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SiswaID    uint      `gorm:"not null;uniqueIndex:idx_siswa_ortu" json:"siswa_id"`
	OrangTuaID uint      `gorm:"not null;uniqueIndex:idx_siswa_ortu" json:"orang_tua_id"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (SiswaOrangTua) TableName() string { return "siswa_orang_tua" }

// GuruKelas mencatat guru mengajar di kelas tertentu, dengan override
// mata pelajaran opsional (fallback ke Guru.Mapel kalau kosong).
// Maksimal satu baris per pasangan (guru, kelas).
type GuruKelas struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	GuruID        uint      `gorm:"not null;uniqueIndex:idx_guru_kelas" json:"guru_id"`
	KelasID       uint      `gorm:"not null;uniqueIndex:idx_guru_kelas" json:"kelas_id"`
	MataPelajaran *string   `json:"mata_pelajaran"`
	Guru          *Guru     `gorm:"foreignKey:GuruID;constraint:OnDelete:CASCADE" json:"Guru,omitempty"`
	Kelas         *Kelas    `gorm:"foreignKey:KelasID;constraint:OnDelete:CASCADE" json:"Kelas,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (GuruKelas) TableName() string { return "guru_kelas" }

// Jurnal merepresentasikan satu sesi pembelajaran (guru, kelas, mapel,
// rentang jam) yang menjadi induk record absensi. Dibuat atomik bersama
// absensinya saat submit, setelah itu immutable.
type Jurnal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Tanggal       time.Time `gorm:"not null" json:"tanggal"`
	JamMulai      string    `gorm:"type:varchar(8);not null" json:"jam_mulai"`
	JamSelesai    string    `gorm:"type:varchar(8);not null" json:"jam_selesai"`
	MataPelajaran string    `gorm:"not null" json:"mata_pelajaran"`
	Materi        string    `gorm:"type:text;not null" json:"materi"`
	GuruID        uint      `gorm:"not null" json:"guru_id"`
	KelasID       uint      `gorm:"not null" json:"kelas_id"`
	Guru          *Guru     `gorm:"foreignKey:GuruID;constraint:OnDelete:CASCADE" json:"Guru,omitempty"`
	Kelas         *Kelas    `gorm:"foreignKey:KelasID;constraint:OnDelete:CASCADE" json:"Kelas,omitempty"`
	Absensi       []Absensi `gorm:"foreignKey:JurnalID" json:"Absensi,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Jurnal) TableName() string { return "jurnal" }

// Absensi adalah status kehadiran satu siswa pada satu jurnal.
type Absensi struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Status     string    `gorm:"type:varchar(10);not null;default:hadir" json:"status"`
	Keterangan *string   `gorm:"type:text" json:"keterangan"`
	JurnalID   uint      `gorm:"not null" json:"jurnal_id"`
	SiswaID    uint      `gorm:"not null" json:"siswa_id"`
	Jurnal     *Jurnal   `gorm:"foreignKey:JurnalID;constraint:OnDelete:CASCADE" json:"Jurnal,omitempty"`
	Siswa      *Siswa    `gorm:"foreignKey:SiswaID;constraint:OnDelete:CASCADE" json:"Siswa,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Absensi) TableName() string { return "absensi" }
