package service

import (
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/utils"
)

// riwayatLimit membatasi jumlah record riwayat yang dikirim ke orang tua.
const riwayatLimit = 100

// RiwayatAnakRow adalah satu baris riwayat absensi untuk tampilan orang tua.
type RiwayatAnakRow struct {
	ID            uint    `json:"id"`
	Tanggal       string  `json:"tanggal"`
	JamMulai      string  `json:"jam_mulai"`
	JamSelesai    string  `json:"jam_selesai"`
	MataPelajaran string  `json:"mata_pelajaran"`
	Materi        string  `json:"materi"`
	Status        string  `json:"status"`
	Keterangan    *string `json:"keterangan"`
	Kelas         string  `json:"kelas"`
}

// StatistikAnak menghitung kehadiran per-record (bukan per-hari) seorang
// siswa dalam satu bulan kalender.
type StatistikAnak struct {
	Bulan    int `json:"bulan"`
	Tahun    int `json:"tahun"`
	Hadir    int `json:"hadir"`
	Izin     int `json:"izin"`
	TanpaKet int `json:"tanpa_ket"`
	Total    int `json:"total"`
}

// OrangTuaService menangani portal orang tua: daftar anak, riwayat absensi
// anak, dan statistik bulanan. Semua akses per-anak dicek kepemilikannya.
type OrangTuaService interface {
	Anak(orangTuaID uint) ([]model.Siswa, error)
	// RiwayatAnak mengembalikan riwayat absensi anak (terbaru dulu), opsional
	// dibatasi rentang tanggal. ForbiddenError kalau bukan wali siswa tsb.
	RiwayatAnak(orangTuaID, siswaID uint, mulai, selesai *time.Time) ([]RiwayatAnakRow, error)
	// StatistikAnak menghitung rekap kehadiran anak untuk satu bulan.
	StatistikAnak(orangTuaID, siswaID uint, bulan, tahun int) (*StatistikAnak, error)
}

type orangTuaService struct {
	ortuRepo repository.OrangTuaRepository
}

// NewOrangTuaService membuat instance baru orangTuaService.
func NewOrangTuaService(ortuRepo repository.OrangTuaRepository) OrangTuaService {
	return &orangTuaService{ortuRepo}
}

func (s *orangTuaService) Anak(orangTuaID uint) ([]model.Siswa, error) {
	anak, err := s.ortuRepo.FindAnak(orangTuaID)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data anak", err)
	}
	return anak, nil
}

// pastikanWali memastikan orang tua memang wali dari siswa yang diminta.
func (s *orangTuaService) pastikanWali(orangTuaID, siswaID uint) error {
	ok, err := s.ortuRepo.IsWaliDari(orangTuaID, siswaID)
	if err != nil {
		return utils.StorageError("Gagal memeriksa relasi wali", err)
	}
	if !ok {
		return utils.ForbiddenError("Anda bukan wali dari siswa tersebut")
	}
	return nil
}

func (s *orangTuaService) RiwayatAnak(orangTuaID, siswaID uint, mulai, selesai *time.Time) ([]RiwayatAnakRow, error) {
	if err := s.pastikanWali(orangTuaID, siswaID); err != nil {
		return nil, err
	}

	riwayat, err := s.ortuRepo.FindRiwayatAbsensi(siswaID, mulai, selesai, riwayatLimit)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil riwayat absensi", err)
	}

	rows := make([]RiwayatAnakRow, 0, len(riwayat))
	for _, absensi := range riwayat {
		row := RiwayatAnakRow{
			ID:         absensi.ID,
			Status:     absensi.Status,
			Keterangan: absensi.Keterangan,
			Kelas:      "-",
		}
		if absensi.Jurnal != nil {
			row.Tanggal = absensi.Jurnal.Tanggal.Format("2006-01-02")
			row.JamMulai = absensi.Jurnal.JamMulai
			row.JamSelesai = absensi.Jurnal.JamSelesai
			row.MataPelajaran = absensi.Jurnal.MataPelajaran
			row.Materi = absensi.Jurnal.Materi
			if absensi.Jurnal.Kelas != nil {
				row.Kelas = absensi.Jurnal.Kelas.Nama
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *orangTuaService) StatistikAnak(orangTuaID, siswaID uint, bulan, tahun int) (*StatistikAnak, error) {
	if bulan < 1 || bulan > 12 {
		return nil, utils.ValidationError("Bulan tidak valid")
	}
	if err := s.pastikanWali(orangTuaID, siswaID); err != nil {
		return nil, err
	}

	start, end := repository.MonthWindow(bulan, tahun)
	absensiList, err := s.ortuRepo.FindAbsensiInWindow(siswaID, start, end)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil statistik absensi", err)
	}

	stat := StatistikAnak{Bulan: bulan, Tahun: tahun, Total: len(absensiList)}
	for _, absensi := range absensiList {
		switch absensi.Status {
		case model.StatusHadir:
			stat.Hadir++
		case model.StatusIzin:
			stat.Izin++
		case model.StatusTanpaKet:
			stat.TanpaKet++
		}
	}
	return &stat, nil
}
