package service

import (
	"math"
	"sort"
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/utils"
)

// Status ringkasan harian: hasil precedence dari semua record seorang siswa
// pada satu hari. Satu saja tanpa_ket membuat harinya dianggap alpha.
// "belum_absen" hanya muncul di rekap harian (siswa tanpa record sama sekali).
const StatusBelumAbsen = "belum_absen"

// AbsensiDetail adalah satu record absensi untuk drill-down di rekap harian.
type AbsensiDetail struct {
	Mapel      string  `json:"mapel"`
	Guru       string  `json:"guru"`
	Status     string  `json:"status"`
	Keterangan *string `json:"keterangan"`
	Jam        string  `json:"jam"`
}

// KelasInfo adalah identitas kelas di laporan.
type KelasInfo struct {
	ID      uint   `json:"id"`
	Nama    string `json:"nama"`
	Jurusan string `json:"jurusan"`
}

// SiswaHarian adalah rekap satu siswa untuk satu hari.
type SiswaHarian struct {
	ID              uint            `json:"id"`
	NIS             string          `json:"nis"`
	Nama            string          `json:"nama"`
	StatusRingkasan string          `json:"status_ringkasan"`
	TotalHadir      int             `json:"total_hadir"`
	TotalIzin       int             `json:"total_izin"`
	TotalAlpha      int             `json:"total_alpha"`
	TotalMapel      int             `json:"total_mapel"`
	Detail          []AbsensiDetail `json:"detail"`
}

// StatistikHarian menghitung empat bucket status ringkasan dalam satu lingkup
// (kelas atau keseluruhan).
type StatistikHarian struct {
	TotalSiswa      int `json:"total_siswa"`
	Hadir           int `json:"hadir"`
	Izin            int `json:"izin"`
	Alpha           int `json:"alpha"`
	BelumAbsen      int `json:"belum_absen"`
	PersentaseHadir int `json:"persentase_hadir"`
}

// RekapKelasHarian adalah rekap harian satu kelas.
type RekapKelasHarian struct {
	Kelas     KelasInfo       `json:"kelas"`
	Statistik StatistikHarian `json:"statistik"`
	Siswa     []SiswaHarian   `json:"siswa"`
}

// RekapHarianReport adalah keluaran lengkap rekap harian.
type RekapHarianReport struct {
	Tanggal              string             `json:"tanggal"`
	StatistikKeseluruhan StatistikHarian    `json:"statistik_keseluruhan"`
	TotalKelas           int                `json:"total_kelas"`
	RekapPerKelas        []RekapKelasHarian `json:"rekap_per_kelas"`
}

// SiswaBulanan adalah rekap satu siswa untuk satu bulan: jumlah hari aktif
// dan vonis per-hari hasil precedence.
type SiswaBulanan struct {
	ID              uint   `json:"id"`
	NIS             string `json:"nis"`
	Nama            string `json:"nama"`
	TotalHariAktif  int    `json:"total_hari_aktif"`
	TotalHadir      int    `json:"total_hadir"`
	TotalIzin       int    `json:"total_izin"`
	TotalAlpha      int    `json:"total_alpha"`
	PersentaseHadir int    `json:"persentase_hadir"`
}

// StatistikBulanan adalah agregat bulanan satu kelas.
type StatistikBulanan struct {
	TotalSiswa              int `json:"total_siswa"`
	TotalHadir              int `json:"total_hadir"`
	TotalIzin               int `json:"total_izin"`
	TotalAlpha              int `json:"total_alpha"`
	TotalHariAktif          int `json:"total_hari_aktif"`
	RataRataPersentaseHadir int `json:"rata_rata_persentase_hadir"`
}

// RekapKelasBulanan adalah rekap bulanan satu kelas.
type RekapKelasBulanan struct {
	Kelas     KelasInfo        `json:"kelas"`
	Statistik StatistikBulanan `json:"statistik"`
	Siswa     []SiswaBulanan   `json:"siswa"`
}

// StatistikBulananKeseluruhan adalah agregat bulanan lintas kelas.
type StatistikBulananKeseluruhan struct {
	TotalKelas              int `json:"total_kelas"`
	TotalSiswa              int `json:"total_siswa"`
	TotalHadir              int `json:"total_hadir"`
	TotalIzin               int `json:"total_izin"`
	TotalAlpha              int `json:"total_alpha"`
	RataRataPersentaseHadir int `json:"rata_rata_persentase_hadir"`
}

// RekapBulananReport adalah keluaran lengkap rekap bulanan.
type RekapBulananReport struct {
	Bulan                int                         `json:"bulan"`
	Tahun                int                         `json:"tahun"`
	NamaBulan            string                      `json:"nama_bulan"`
	JumlahHari           int                         `json:"jumlah_hari"`
	StatistikKeseluruhan StatistikBulananKeseluruhan `json:"statistik_keseluruhan"`
	RekapPerKelas        []RekapKelasBulanan         `json:"rekap_per_kelas"`
}

// FilterOptions adalah pilihan filter untuk halaman rekap.
type FilterOptions struct {
	Kelas   []model.Kelas   `json:"kelas"`
	Jurusan []model.Jurusan `json:"jurusan"`
}

// RekapService menghitung laporan harian dan bulanan dari data absensi mentah.
type RekapService interface {
	RekapHarian(tanggal time.Time, kelasID, jurusanID uint) (*RekapHarianReport, error)
	RekapBulanan(bulan, tahun int, kelasID, jurusanID uint) (*RekapBulananReport, error)
	FilterOptions() (*FilterOptions, error)
}

type rekapService struct {
	rekapRepo   repository.RekapRepository
	kelasRepo   repository.KelasRepository
	jurusanRepo repository.JurusanRepository
}

// NewRekapService membuat instance baru rekapService.
func NewRekapService(
	rekapRepo repository.RekapRepository,
	kelasRepo repository.KelasRepository,
	jurusanRepo repository.JurusanRepository,
) RekapService {
	return &rekapService{
		rekapRepo:   rekapRepo,
		kelasRepo:   kelasRepo,
		jurusanRepo: jurusanRepo,
	}
}

// absensiCtx adalah satu record absensi yang sudah dilengkapi konteks
// jurnalnya (hasil flatten dari jurnal -> absensi).
type absensiCtx struct {
	Status     string
	Keterangan *string
	Mapel      string
	GuruNama   string
	Jam        string
	Tanggal    time.Time
}

// flattenAbsensi menyusun map siswa_id -> daftar record berkonteks dari
// daftar jurnal satu jendela waktu. Urutan record mengikuti urutan jurnal
// (tanggal lalu id) supaya hasil laporan deterministik.
func flattenAbsensi(jurnalList []model.Jurnal) map[uint][]absensiCtx {
	perSiswa := make(map[uint][]absensiCtx)
	for _, jurnal := range jurnalList {
		for _, absensi := range jurnal.Absensi {
			perSiswa[absensi.SiswaID] = append(perSiswa[absensi.SiswaID], absensiCtx{
				Status:     absensi.Status,
				Keterangan: absensi.Keterangan,
				Mapel:      jurnal.MataPelajaran,
				GuruNama:   guruNamaOf(jurnal),
				Jam:        jurnal.JamMulai,
				Tanggal:    jurnal.Tanggal,
			})
		}
	}
	return perSiswa
}

func guruNamaOf(jurnal model.Jurnal) string {
	if jurnal.Guru != nil {
		return jurnal.Guru.Nama
	}
	return "-"
}

func jurusanNamaOf(kelas model.Kelas) string {
	if kelas.Jurusan != nil {
		return kelas.Jurusan.Nama
	}
	return "-"
}

// resolveDailyStatus menerapkan aturan precedence harian:
// tanpa_ket > izin > hadir > belum_absen. Satu absen tak berketerangan di
// pelajaran manapun membuat seluruh hari terhitung alpha.
func resolveDailyStatus(records []absensiCtx) string {
	if len(records) == 0 {
		return StatusBelumAbsen
	}
	hasIzin := false
	for _, r := range records {
		switch r.Status {
		case model.StatusTanpaKet:
			return model.StatusTanpaKet
		case model.StatusIzin:
			hasIzin = true
		}
	}
	if hasIzin {
		return model.StatusIzin
	}
	return model.StatusHadir
}

// roundPct menghitung round(count/total*100), 0 kalau total 0.
func roundPct(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// sortedSiswa mengembalikan salinan siswa kelas terurut nama (id sebagai
// tie-break) supaya dua pemanggilan dengan argumen sama menghasilkan
// laporan yang identik byte per byte.
func sortedSiswa(kelas model.Kelas) []model.Siswa {
	siswa := make([]model.Siswa, len(kelas.Siswa))
	copy(siswa, kelas.Siswa)
	sort.Slice(siswa, func(i, j int) bool {
		if siswa[i].Nama != siswa[j].Nama {
			return siswa[i].Nama < siswa[j].Nama
		}
		return siswa[i].ID < siswa[j].ID
	})
	return siswa
}

func (s *rekapService) RekapHarian(tanggal time.Time, kelasID, jurusanID uint) (*RekapHarianReport, error) {
	start, end := repository.DayWindow(tanggal)

	kelasList, err := s.rekapRepo.FindKelasWithSiswa(kelasID, jurusanID)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data kelas", err)
	}
	jurnalList, err := s.rekapRepo.FindJurnalInWindow(start, end)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data jurnal", err)
	}

	perSiswa := flattenAbsensi(jurnalList)

	rekapPerKelas := make([]RekapKelasHarian, 0, len(kelasList))
	total := StatistikHarian{}

	for _, kelas := range kelasList {
		siswaRekap := make([]SiswaHarian, 0, len(kelas.Siswa))
		stat := StatistikHarian{TotalSiswa: len(kelas.Siswa)}

		for _, siswa := range sortedSiswa(kelas) {
			records := perSiswa[siswa.ID]

			detail := make([]AbsensiDetail, 0, len(records))
			totalHadir, totalIzin, totalAlpha := 0, 0, 0
			for _, r := range records {
				detail = append(detail, AbsensiDetail{
					Mapel:      r.Mapel,
					Guru:       r.GuruNama,
					Status:     r.Status,
					Keterangan: r.Keterangan,
					Jam:        r.Jam,
				})
				switch r.Status {
				case model.StatusHadir:
					totalHadir++
				case model.StatusIzin:
					totalIzin++
				case model.StatusTanpaKet:
					totalAlpha++
				}
			}

			ringkasan := resolveDailyStatus(records)
			switch ringkasan {
			case model.StatusHadir:
				stat.Hadir++
			case model.StatusIzin:
				stat.Izin++
			case model.StatusTanpaKet:
				stat.Alpha++
			default:
				stat.BelumAbsen++
			}

			siswaRekap = append(siswaRekap, SiswaHarian{
				ID:              siswa.ID,
				NIS:             siswa.NIS,
				Nama:            siswa.Nama,
				StatusRingkasan: ringkasan,
				TotalHadir:      totalHadir,
				TotalIzin:       totalIzin,
				TotalAlpha:      totalAlpha,
				TotalMapel:      len(records),
				Detail:          detail,
			})
		}

		stat.PersentaseHadir = roundPct(stat.Hadir, stat.TotalSiswa)

		total.TotalSiswa += stat.TotalSiswa
		total.Hadir += stat.Hadir
		total.Izin += stat.Izin
		total.Alpha += stat.Alpha
		total.BelumAbsen += stat.BelumAbsen

		rekapPerKelas = append(rekapPerKelas, RekapKelasHarian{
			Kelas: KelasInfo{
				ID:      kelas.ID,
				Nama:    kelas.Nama,
				Jurusan: jurusanNamaOf(kelas),
			},
			Statistik: stat,
			Siswa:     siswaRekap,
		})
	}

	total.PersentaseHadir = roundPct(total.Hadir, total.TotalSiswa)

	return &RekapHarianReport{
		Tanggal:              tanggal.Format("2006-01-02"),
		StatistikKeseluruhan: total,
		TotalKelas:           len(rekapPerKelas),
		RekapPerKelas:        rekapPerKelas,
	}, nil
}

// namaBulanID adalah nama bulan dalam Bahasa Indonesia (index 1..12).
var namaBulanID = [...]string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

func (s *rekapService) RekapBulanan(bulan, tahun int, kelasID, jurusanID uint) (*RekapBulananReport, error) {
	if bulan < 1 || bulan > 12 {
		return nil, utils.ValidationError("Bulan tidak valid")
	}

	start, end := repository.MonthWindow(bulan, tahun)
	daysInMonth := start.AddDate(0, 1, -1).Day()

	kelasList, err := s.rekapRepo.FindKelasWithSiswa(kelasID, jurusanID)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data kelas", err)
	}
	jurnalList, err := s.rekapRepo.FindJurnalInWindow(start, end)
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data jurnal", err)
	}

	perSiswa := flattenAbsensi(jurnalList)

	rekapPerKelas := make([]RekapKelasBulanan, 0, len(kelasList))
	keseluruhan := StatistikBulananKeseluruhan{}
	sumAvgKelas := 0

	for _, kelas := range kelasList {
		siswaRekap := make([]SiswaBulanan, 0, len(kelas.Siswa))
		stat := StatistikBulanan{TotalSiswa: len(kelas.Siswa)}
		sumPersentase := 0

		for _, siswa := range sortedSiswa(kelas) {
			rekap := rekapBulananSiswa(siswa, perSiswa[siswa.ID])

			stat.TotalHadir += rekap.TotalHadir
			stat.TotalIzin += rekap.TotalIzin
			stat.TotalAlpha += rekap.TotalAlpha
			stat.TotalHariAktif += rekap.TotalHariAktif
			sumPersentase += rekap.PersentaseHadir

			siswaRekap = append(siswaRekap, rekap)
		}

		// Rata-rata kelas = mean persentase per siswa (bukan pooled rate
		// dari jumlah hari). Dipertahankan apa adanya dari perilaku lama;
		// siswa dengan sedikit hari aktif berbobot sama dengan yang banyak.
		if stat.TotalSiswa > 0 {
			stat.RataRataPersentaseHadir = int(math.Round(float64(sumPersentase) / float64(stat.TotalSiswa)))
		}

		keseluruhan.TotalSiswa += stat.TotalSiswa
		keseluruhan.TotalHadir += stat.TotalHadir
		keseluruhan.TotalIzin += stat.TotalIzin
		keseluruhan.TotalAlpha += stat.TotalAlpha
		sumAvgKelas += stat.RataRataPersentaseHadir

		rekapPerKelas = append(rekapPerKelas, RekapKelasBulanan{
			Kelas: KelasInfo{
				ID:      kelas.ID,
				Nama:    kelas.Nama,
				Jurusan: jurusanNamaOf(kelas),
			},
			Statistik: stat,
			Siswa:     siswaRekap,
		})
	}

	keseluruhan.TotalKelas = len(rekapPerKelas)
	if len(rekapPerKelas) > 0 {
		keseluruhan.RataRataPersentaseHadir = int(math.Round(float64(sumAvgKelas) / float64(len(rekapPerKelas))))
	}

	return &RekapBulananReport{
		Bulan:                bulan,
		Tahun:                tahun,
		NamaBulan:            namaBulanID[bulan] + " " + start.Format("2006"),
		JumlahHari:           daysInMonth,
		StatistikKeseluruhan: keseluruhan,
		RekapPerKelas:        rekapPerKelas,
	}, nil
}

// rekapBulananSiswa mengelompokkan record seorang siswa per hari kalender,
// menerapkan precedence yang sama dengan rekap harian untuk tiap hari aktif,
// lalu menghitung persentase hadir dari hari aktif.
// "belum_absen" tidak berlaku di sini: hanya hari dengan >= 1 record dihitung.
func rekapBulananSiswa(siswa model.Siswa, records []absensiCtx) SiswaBulanan {
	perTanggal := make(map[string][]absensiCtx)
	for _, r := range records {
		key := r.Tanggal.Format("2006-01-02")
		perTanggal[key] = append(perTanggal[key], r)
	}

	rekap := SiswaBulanan{
		ID:             siswa.ID,
		NIS:            siswa.NIS,
		Nama:           siswa.Nama,
		TotalHariAktif: len(perTanggal),
	}

	for _, hari := range perTanggal {
		switch resolveDailyStatus(hari) {
		case model.StatusTanpaKet:
			rekap.TotalAlpha++
		case model.StatusIzin:
			rekap.TotalIzin++
		default:
			rekap.TotalHadir++
		}
	}

	rekap.PersentaseHadir = roundPct(rekap.TotalHadir, rekap.TotalHariAktif)
	return rekap
}

func (s *rekapService) FilterOptions() (*FilterOptions, error) {
	kelasList, err := s.kelasRepo.FindAllWithJurusan()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil daftar kelas", err)
	}
	jurusanList, err := s.jurusanRepo.FindAll()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil daftar jurusan", err)
	}
	return &FilterOptions{Kelas: kelasList, Jurusan: jurusanList}, nil
}
