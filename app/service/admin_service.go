package service

import (
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/utils"
)

// JurnalRingkas adalah satu jurnal untuk tampilan monitoring admin,
// sudah diratakan (nama guru/kelas, hitungan status).
type JurnalRingkas struct {
	ID            uint   `json:"id"`
	Tanggal       string `json:"tanggal"`
	JamMulai      string `json:"jam_mulai"`
	JamSelesai    string `json:"jam_selesai"`
	MataPelajaran string `json:"mata_pelajaran"`
	Materi        string `json:"materi"`
	Guru          string `json:"guru"`
	Kelas         string `json:"kelas"`
	TotalSiswa    int    `json:"total_siswa"`
	TotalHadir    int    `json:"total_hadir"`
	TotalIzin     int    `json:"total_izin"`
	TotalAlpha    int    `json:"total_alpha"`
}

// DashboardData adalah ringkasan hari ini untuk landing page admin.
type DashboardData struct {
	Tanggal         string          `json:"tanggal"`
	TotalJurnal     int             `json:"total_jurnal"`
	TotalSiswaHadir int             `json:"total_siswa_hadir"`
	TotalSiswaIzin  int             `json:"total_siswa_izin"`
	TotalSiswaAlpha int             `json:"total_siswa_alpha"`
	JurnalHariIni   []JurnalRingkas `json:"jurnal_hari_ini"`
}

// ExportRow adalah satu baris datar (satu record absensi) untuk diunduh
// sebagai CSV/spreadsheet di sisi frontend.
type ExportRow struct {
	Tanggal       string `json:"tanggal"`
	JamMulai      string `json:"jam_mulai"`
	JamSelesai    string `json:"jam_selesai"`
	Kelas         string `json:"kelas"`
	MataPelajaran string `json:"mata_pelajaran"`
	Guru          string `json:"guru"`
	Materi        string `json:"materi"`
	NIS           string `json:"nis"`
	NamaSiswa     string `json:"nama_siswa"`
	Status        string `json:"status"`
	Keterangan    string `json:"keterangan"`
}

// AdminService menangani monitoring untuk admin: dashboard hari ini,
// daftar jurnal terfilter, dan export data mentah.
type AdminService interface {
	Dashboard() (*DashboardData, error)
	JurnalByFilter(filter repository.JurnalFilter) ([]JurnalRingkas, error)
	// Export mengembalikan baris datar absensi dalam rentang tanggal inklusif.
	Export(mulai, selesai time.Time) ([]ExportRow, error)
}

type adminService struct {
	jurnalRepo repository.JurnalRepository
}

// NewAdminService membuat instance baru adminService.
func NewAdminService(jurnalRepo repository.JurnalRepository) AdminService {
	return &adminService{jurnalRepo}
}

// ringkasJurnal meratakan satu jurnal berisi relasi menjadi baris tampilan.
func ringkasJurnal(jurnal model.Jurnal) JurnalRingkas {
	ringkas := JurnalRingkas{
		ID:            jurnal.ID,
		Tanggal:       jurnal.Tanggal.Format("2006-01-02"),
		JamMulai:      jurnal.JamMulai,
		JamSelesai:    jurnal.JamSelesai,
		MataPelajaran: jurnal.MataPelajaran,
		Materi:        jurnal.Materi,
		Guru:          "-",
		Kelas:         "-",
		TotalSiswa:    len(jurnal.Absensi),
	}
	if jurnal.Guru != nil {
		ringkas.Guru = jurnal.Guru.Nama
	}
	if jurnal.Kelas != nil {
		ringkas.Kelas = jurnal.Kelas.Nama
	}
	for _, absensi := range jurnal.Absensi {
		switch absensi.Status {
		case model.StatusHadir:
			ringkas.TotalHadir++
		case model.StatusIzin:
			ringkas.TotalIzin++
		case model.StatusTanpaKet:
			ringkas.TotalAlpha++
		}
	}
	return ringkas
}

func (s *adminService) Dashboard() (*DashboardData, error) {
	hariIni := time.Now()
	jurnalList, err := s.jurnalRepo.FindByFilter(repository.JurnalFilter{Tanggal: &hariIni})
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data dashboard", err)
	}

	data := DashboardData{
		Tanggal:       hariIni.Format("2006-01-02"),
		TotalJurnal:   len(jurnalList),
		JurnalHariIni: make([]JurnalRingkas, 0, len(jurnalList)),
	}
	for _, jurnal := range jurnalList {
		ringkas := ringkasJurnal(jurnal)
		data.TotalSiswaHadir += ringkas.TotalHadir
		data.TotalSiswaIzin += ringkas.TotalIzin
		data.TotalSiswaAlpha += ringkas.TotalAlpha
		data.JurnalHariIni = append(data.JurnalHariIni, ringkas)
	}
	return &data, nil
}

func (s *adminService) JurnalByFilter(filter repository.JurnalFilter) ([]JurnalRingkas, error) {
	jurnalList, err := s.jurnalRepo.FindByFilter(filter)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data jurnal", err)
	}

	result := make([]JurnalRingkas, 0, len(jurnalList))
	for _, jurnal := range jurnalList {
		result = append(result, ringkasJurnal(jurnal))
	}
	return result, nil
}

func (s *adminService) Export(mulai, selesai time.Time) ([]ExportRow, error) {
	start, _ := repository.DayWindow(mulai)
	_, end := repository.DayWindow(selesai)
	if end.Before(start) {
		return nil, utils.ValidationError("Rentang tanggal tidak valid")
	}

	jurnalList, err := s.jurnalRepo.FindInRange(start, end)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data export", err)
	}

	rows := make([]ExportRow, 0)
	for _, jurnal := range jurnalList {
		guruNama, kelasNama := "-", "-"
		if jurnal.Guru != nil {
			guruNama = jurnal.Guru.Nama
		}
		if jurnal.Kelas != nil {
			kelasNama = jurnal.Kelas.Nama
		}
		for _, absensi := range jurnal.Absensi {
			row := ExportRow{
				Tanggal:       jurnal.Tanggal.Format("2006-01-02"),
				JamMulai:      jurnal.JamMulai,
				JamSelesai:    jurnal.JamSelesai,
				Kelas:         kelasNama,
				MataPelajaran: jurnal.MataPelajaran,
				Guru:          guruNama,
				Materi:        jurnal.Materi,
				Status:        absensi.Status,
			}
			if absensi.Siswa != nil {
				row.NIS = absensi.Siswa.NIS
				row.NamaSiswa = absensi.Siswa.Nama
			}
			if absensi.Keterangan != nil {
				row.Keterangan = *absensi.Keterangan
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
