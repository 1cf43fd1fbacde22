package service

import (
	"log"
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/realtime"
	"absensi-sekolah-backend/utils"

	"github.com/google/uuid"
)

// JurnalInput adalah data sesi pembelajaran yang menyertai submit absen.
type JurnalInput struct {
	JamMulai      string `json:"jam_mulai" binding:"required"`
	JamSelesai    string `json:"jam_selesai" binding:"required"`
	MataPelajaran string `json:"mata_pelajaran" binding:"required"`
	Materi        string `json:"materi" binding:"required"`
}

// SiswaStatusInput adalah satu baris roster: siswa + status kehadirannya.
type SiswaStatusInput struct {
	SiswaID    uint    `json:"siswa_id" binding:"required"`
	Status     string  `json:"status" binding:"required"`
	Keterangan *string `json:"keterangan"`
}

// SubmitAbsenInput adalah payload lengkap POST /api/guru/absen.
type SubmitAbsenInput struct {
	KelasID    uint               `json:"kelas_id"`
	JurnalData JurnalInput        `json:"jurnal_data"`
	SiswaList  []SiswaStatusInput `json:"siswa_list"`
}

// AbsenNotification adalah ringkasan yang dipublish ke room admin dan
// broadcast orang tua setelah submit berhasil commit.
type AbsenNotification struct {
	EventID       string    `json:"event_id"`
	JurnalID      uint      `json:"jurnal_id"`
	GuruID        uint      `json:"guru_id"`
	GuruName      string    `json:"guru_name"`
	KelasID       uint      `json:"kelas_id"`
	KelasName     string    `json:"kelas_name"`
	MataPelajaran string    `json:"mata_pelajaran"`
	JamMulai      string    `json:"jam_mulai"`
	JamSelesai    string    `json:"jam_selesai"`
	TotalHadir    int       `json:"total_hadir"`
	TotalIzin     int       `json:"total_izin"`
	TotalAlpha    int       `json:"total_alpha"`
	Timestamp     time.Time `json:"timestamp"`
}

// KelasAbsen adalah kelas yang ditampilkan di form absen guru, dengan
// mata pelajaran hasil override GuruKelas (fallback ke mapel default guru).
type KelasAbsen struct {
	ID            uint    `json:"id"`
	Nama          string  `json:"nama"`
	Tingkat       string  `json:"tingkat"`
	TahunAjaran   string  `json:"tahun_ajaran"`
	MataPelajaran *string `json:"mata_pelajaran"`
}

// AbsenService menangani alur absen dari sisi guru: daftar kelas, roster
// siswa, submit transaksional, dan riwayat.
type AbsenService interface {
	// SubmitAbsen membuat satu jurnal + N absensi secara atomik lalu
	// mem-publish notifikasi (best-effort). Mengembalikan id jurnal baru.
	SubmitAbsen(guruID uint, guruNama string, input SubmitAbsenInput) (uint, error)

	// KelasForGuru mengembalikan SEMUA kelas (fallback bila guru belum
	// punya relasi GuruKelas), masing-masing dengan mapel efektifnya.
	KelasForGuru(guruID uint) ([]KelasAbsen, error)

	// SiswaByKelas mengembalikan roster siswa sebuah kelas.
	SiswaByKelas(kelasID uint) ([]model.Siswa, error)

	// Settings mengembalikan profil singkat guru (nama, nip, mapel, jam mulai).
	Settings(guruID uint) (*model.Guru, error)

	// RiwayatGuru mengembalikan 50 jurnal terakhir milik guru.
	RiwayatGuru(guruID uint) ([]model.Jurnal, error)
}

type absenService struct {
	jurnalRepo    repository.JurnalRepository
	kelasRepo     repository.KelasRepository
	siswaRepo     repository.SiswaRepository
	guruRepo      repository.GuruRepository
	guruKelasRepo repository.GuruKelasRepository
	notifier      realtime.Notifier
}

// NewAbsenService membuat instance baru absenService.
func NewAbsenService(
	jurnalRepo repository.JurnalRepository,
	kelasRepo repository.KelasRepository,
	siswaRepo repository.SiswaRepository,
	guruRepo repository.GuruRepository,
	guruKelasRepo repository.GuruKelasRepository,
	notifier realtime.Notifier,
) AbsenService {
	return &absenService{
		jurnalRepo:    jurnalRepo,
		kelasRepo:     kelasRepo,
		siswaRepo:     siswaRepo,
		guruRepo:      guruRepo,
		guruKelasRepo: guruKelasRepo,
		notifier:      notifier,
	}
}

func (s *absenService) SubmitAbsen(guruID uint, guruNama string, input SubmitAbsenInput) (uint, error) {
	// Seluruh validasi dilakukan SEBELUM ada tulisan apa pun.
	if input.KelasID == 0 {
		return 0, utils.ValidationError("Data tidak lengkap: kelas_id dan siswa_list wajib ada")
	}
	if len(input.SiswaList) == 0 {
		return 0, utils.ValidationError("Data tidak lengkap: kelas_id dan siswa_list wajib ada")
	}
	for _, siswa := range input.SiswaList {
		if !model.StatusValid(siswa.Status) {
			return 0, utils.ValidationError("Status absensi tidak valid: " + siswa.Status)
		}
	}

	kelas, err := s.kelasRepo.FindByID(input.KelasID)
	if err != nil {
		return 0, utils.WrapDBError("Kelas tidak ditemukan", err)
	}

	jurnal := model.Jurnal{
		Tanggal:       time.Now(),
		JamMulai:      input.JurnalData.JamMulai,
		JamSelesai:    input.JurnalData.JamSelesai,
		MataPelajaran: input.JurnalData.MataPelajaran,
		Materi:        input.JurnalData.Materi,
		GuruID:        guruID,
		KelasID:       input.KelasID,
	}

	roster := make([]repository.AbsensiInput, 0, len(input.SiswaList))
	for _, siswa := range input.SiswaList {
		roster = append(roster, repository.AbsensiInput{
			SiswaID:    siswa.SiswaID,
			Status:     siswa.Status,
			Keterangan: siswa.Keterangan,
		})
	}

	jurnalID, err := s.jurnalRepo.CreateWithAbsensi(&jurnal, roster)
	if err != nil {
		return 0, utils.StorageError("Gagal menyimpan absen", err)
	}

	// Notifikasi realtime dikirim SETELAH commit; kegagalannya tidak boleh
	// membuat submit yang sudah commit dilaporkan gagal.
	s.publishNotification(jurnalID, guruID, guruNama, kelas, input)

	return jurnalID, nil
}

func (s *absenService) publishNotification(jurnalID, guruID uint, guruNama string, kelas *model.Kelas, input SubmitAbsenInput) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ABSEN] Gagal publish notifikasi (diabaikan): %v", r)
		}
	}()

	totalHadir, totalIzin, totalAlpha := 0, 0, 0
	for _, siswa := range input.SiswaList {
		switch siswa.Status {
		case model.StatusHadir:
			totalHadir++
		case model.StatusIzin:
			totalIzin++
		case model.StatusTanpaKet:
			totalAlpha++
		}
	}

	notif := AbsenNotification{
		EventID:       uuid.NewString(),
		JurnalID:      jurnalID,
		GuruID:        guruID,
		GuruName:      guruNama,
		KelasID:       kelas.ID,
		KelasName:     kelas.Nama,
		MataPelajaran: input.JurnalData.MataPelajaran,
		JamMulai:      input.JurnalData.JamMulai,
		JamSelesai:    input.JurnalData.JamSelesai,
		TotalHadir:    totalHadir,
		TotalIzin:     totalIzin,
		TotalAlpha:    totalAlpha,
		Timestamp:     time.Now(),
	}

	// Ke room admin, lalu broadcast ke semua (difilter di sisi client ortu).
	s.notifier.NotifyAdmins(realtime.EventNewAbsen, notif)
	s.notifier.NotifyAll(realtime.EventNewAbsenAll, notif)
}

func (s *absenService) KelasForGuru(guruID uint) ([]KelasAbsen, error) {
	guru, err := s.guruRepo.FindByID(guruID)
	if err != nil {
		return nil, utils.WrapDBError("Guru tidak ditemukan", err)
	}

	guruKelas, err := s.guruKelasRepo.FindByGuru(guruID)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil relasi guru-kelas", err)
	}

	// Map kelas_id -> override mapel dari GuruKelas.
	mapelMap := make(map[uint]string)
	for _, gk := range guruKelas {
		if gk.MataPelajaran != nil {
			mapelMap[gk.KelasID] = *gk.MataPelajaran
		}
	}

	allKelas, err := s.kelasRepo.FindAll()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil daftar kelas", err)
	}

	result := make([]KelasAbsen, 0, len(allKelas))
	for _, kelas := range allKelas {
		item := KelasAbsen{
			ID:          kelas.ID,
			Nama:        kelas.Nama,
			Tingkat:     kelas.Tingkat,
			TahunAjaran: kelas.TahunAjaran,
		}
		if mapel, ok := mapelMap[kelas.ID]; ok {
			item.MataPelajaran = &mapel
		} else if guru.Mapel != "" {
			mapel := guru.Mapel
			item.MataPelajaran = &mapel
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *absenService) SiswaByKelas(kelasID uint) ([]model.Siswa, error) {
	siswaList, err := s.siswaRepo.FindByKelas(kelasID)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil daftar siswa", err)
	}
	return siswaList, nil
}

func (s *absenService) Settings(guruID uint) (*model.Guru, error) {
	guru, err := s.guruRepo.FindByID(guruID)
	if err != nil {
		return nil, utils.WrapDBError("Guru tidak ditemukan", err)
	}
	return guru, nil
}

func (s *absenService) RiwayatGuru(guruID uint) ([]model.Jurnal, error) {
	jurnalList, err := s.jurnalRepo.FindRiwayatByGuru(guruID, 50)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil riwayat absen", err)
	}
	return jurnalList, nil
}
