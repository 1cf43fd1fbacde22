package repository

import (
	"fmt"
	"time"

	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// AbsensiInput adalah satu baris roster saat submit absen.
type AbsensiInput struct {
	SiswaID    uint
	Status     string
	Keterangan *string
}

// JurnalFilter menyaring daftar jurnal untuk admin.
type JurnalFilter struct {
	Tanggal *time.Time // difilter per hari kalender
	KelasID uint
	GuruID  uint
}

// JurnalRepository menangani jurnal pembelajaran beserta absensinya.
type JurnalRepository interface {
	// CreateWithAbsensi membuat satu jurnal + N record absensi dalam SATU
	// transaksi. Jurnal ditulis dulu (absensi butuh id yang digenerate),
	// lalu absensi satu per satu; gagal di record manapun membatalkan
	// seluruhnya, termasuk jurnalnya. Mengembalikan id jurnal baru.
	CreateWithAbsensi(jurnal *model.Jurnal, roster []AbsensiInput) (uint, error)

	// FindRiwayatByGuru mengembalikan maksimal limit jurnal terbaru milik
	// guru, lengkap dengan kelas + absensi + siswa.
	FindRiwayatByGuru(guruID uint, limit int) ([]model.Jurnal, error)

	// FindByFilter mengembalikan jurnal sesuai filter admin,
	// terurut tanggal lalu created_at menurun.
	FindByFilter(filter JurnalFilter) ([]model.Jurnal, error)

	// FindInRange mengembalikan jurnal dalam rentang waktu inklusif,
	// dipakai endpoint export.
	FindInRange(start, end time.Time) ([]model.Jurnal, error)
}

type jurnalRepository struct {
	db *gorm.DB
}

// NewJurnalRepository membuat instance baru jurnalRepository.
func NewJurnalRepository(db *gorm.DB) JurnalRepository {
	return &jurnalRepository{db}
}

func (r *jurnalRepository) CreateWithAbsensi(jurnal *model.Jurnal, roster []AbsensiInput) (uint, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(jurnal).Error; err != nil {
			return err
		}

		for _, item := range roster {
			// Enum dijaga di jalur tulis, bukan diserahkan ke storage engine.
			if !model.StatusValid(item.Status) {
				return fmt.Errorf("status absensi tidak valid: %q", item.Status)
			}
			absensi := model.Absensi{
				JurnalID:   jurnal.ID,
				SiswaID:    item.SiswaID,
				Status:     item.Status,
				Keterangan: item.Keterangan,
			}
			if err := tx.Create(&absensi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return jurnal.ID, nil
}

func (r *jurnalRepository) FindRiwayatByGuru(guruID uint, limit int) ([]model.Jurnal, error) {
	var jurnalList []model.Jurnal
	err := r.db.
		Preload("Kelas").
		Preload("Absensi.Siswa").
		Where("guru_id = ?", guruID).
		Order("created_at DESC").
		Limit(limit).
		Find(&jurnalList).Error
	return jurnalList, err
}

func (r *jurnalRepository) FindByFilter(filter JurnalFilter) ([]model.Jurnal, error) {
	q := r.db.
		Preload("Guru").
		Preload("Kelas").
		Preload("Absensi.Siswa")

	if filter.Tanggal != nil {
		start, end := DayWindow(*filter.Tanggal)
		q = q.Where("tanggal BETWEEN ? AND ?", start, end)
	}
	if filter.KelasID != 0 {
		q = q.Where("kelas_id = ?", filter.KelasID)
	}
	if filter.GuruID != 0 {
		q = q.Where("guru_id = ?", filter.GuruID)
	}

	var jurnalList []model.Jurnal
	err := q.Order("tanggal DESC, created_at DESC").Find(&jurnalList).Error
	return jurnalList, err
}

func (r *jurnalRepository) FindInRange(start, end time.Time) ([]model.Jurnal, error) {
	var jurnalList []model.Jurnal
	err := r.db.
		Preload("Guru").
		Preload("Kelas").
		Preload("Absensi.Siswa").
		Where("tanggal BETWEEN ? AND ?", start, end).
		Order("tanggal DESC").
		Find(&jurnalList).Error
	return jurnalList, err
}

// DayWindow mengembalikan batas hari kalender lokal [00:00:00, 23:59:59.999]
// untuk sebuah tanggal.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// MonthWindow mengembalikan batas bulan kalender
// [tahun-bulan-01 00:00:00, hari-terakhir 23:59:59.999].
func MonthWindow(bulan, tahun int) (time.Time, time.Time) {
	start := time.Date(tahun, time.Month(bulan), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}
