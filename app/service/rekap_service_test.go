package service

import (
	"testing"
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRekapService(db *gorm.DB) RekapService {
	return NewRekapService(
		repository.NewRekapRepository(db),
		repository.NewKelasRepository(db),
		repository.NewJurusanRepository(db),
	)
}

func TestResolveDailyStatusPrecedence(t *testing.T) {
	rec := func(statuses ...string) []absensiCtx {
		out := make([]absensiCtx, 0, len(statuses))
		for _, s := range statuses {
			out = append(out, absensiCtx{Status: s})
		}
		return out
	}

	cases := []struct {
		name     string
		records  []absensiCtx
		expected string
	}{
		{"tanpa record", nil, StatusBelumAbsen},
		{"hadir semua", rec("hadir", "hadir"), model.StatusHadir},
		{"izin mengalahkan hadir", rec("hadir", "izin", "hadir"), model.StatusIzin},
		{"tanpa_ket mengalahkan izin", rec("izin", "tanpa_ket"), model.StatusTanpaKet},
		{"tanpa_ket mengalahkan semuanya", rec("hadir", "izin", "tanpa_ket", "hadir"), model.StatusTanpaKet},
		{"satu izin saja", rec("izin"), model.StatusIzin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resolveDailyStatus(tc.records))
		})
	}
}

func TestRoundPct(t *testing.T) {
	assert.Equal(t, 75, roundPct(3, 4))
	assert.Equal(t, 33, roundPct(1, 3))
	assert.Equal(t, 67, roundPct(2, 3))
	assert.Equal(t, 50, roundPct(1, 2))
	assert.Equal(t, 100, roundPct(5, 5))
	assert.Equal(t, 0, roundPct(0, 0), "pembagi nol berarti 0, bukan NaN")
}

func TestRekapHarianPrecedenceDanStatistik(t *testing.T) {
	db := setupTestDB(t)
	svc := newRekapService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	ahmad := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	budi := seedSiswa(t, db, "2021002", "Budi", kelas.ID)
	citra := seedSiswa(t, db, "2021003", "Citra", kelas.ID)
	seedSiswa(t, db, "2021004", "Dewi", kelas.ID) // tidak pernah diabsen

	tanggal := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, tanggal.Add(7*time.Hour), "Matematika", map[uint]string{
		ahmad.ID: model.StatusHadir,
		budi.ID:  model.StatusIzin,
		citra.ID: model.StatusHadir,
	})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, tanggal.Add(9*time.Hour), "Fisika", map[uint]string{
		ahmad.ID: model.StatusHadir,
		citra.ID: model.StatusTanpaKet, // satu alpha menenggelamkan hadir sebelumnya
	})

	report, err := svc.RekapHarian(tanggal, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", report.Tanggal)
	require.Len(t, report.RekapPerKelas, 1)

	rk := report.RekapPerKelas[0]
	assert.Equal(t, kelas.Nama, rk.Kelas.Nama)
	assert.Equal(t, 4, rk.Statistik.TotalSiswa)
	assert.Equal(t, 1, rk.Statistik.Hadir)
	assert.Equal(t, 1, rk.Statistik.Izin)
	assert.Equal(t, 1, rk.Statistik.Alpha)
	assert.Equal(t, 1, rk.Statistik.BelumAbsen)
	assert.Equal(t, 25, rk.Statistik.PersentaseHadir)

	// Siswa terurut nama, ringkasan per siswa sesuai precedence.
	require.Len(t, rk.Siswa, 4)
	assert.Equal(t, "Ahmad", rk.Siswa[0].Nama)
	assert.Equal(t, model.StatusHadir, rk.Siswa[0].StatusRingkasan)
	assert.Equal(t, 2, rk.Siswa[0].TotalMapel)
	assert.Len(t, rk.Siswa[0].Detail, 2)
	assert.Equal(t, model.StatusIzin, rk.Siswa[1].StatusRingkasan)
	assert.Equal(t, model.StatusTanpaKet, rk.Siswa[2].StatusRingkasan)
	assert.Equal(t, StatusBelumAbsen, rk.Siswa[3].StatusRingkasan)

	assert.Equal(t, rk.Statistik, report.StatistikKeseluruhan)
}

func TestRekapHarianFilterKelas(t *testing.T) {
	db := setupTestDB(t)
	svc := newRekapService(db)

	kelasA := seedKelas(t, db, "X A", nil)
	seedKelas(t, db, "X B", nil)
	seedSiswa(t, db, "2023001", "Eka", kelasA.ID)

	report, err := svc.RekapHarian(time.Now(), kelasA.ID, 0)
	require.NoError(t, err)
	require.Len(t, report.RekapPerKelas, 1)
	assert.Equal(t, kelasA.ID, report.RekapPerKelas[0].Kelas.ID)
}

func TestRekapBulananPerHariDanPersentase(t *testing.T) {
	db := setupTestDB(t)
	svc := newRekapService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	ahmad := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)

	maret := func(day, hour int) time.Time {
		return time.Date(2026, 3, day, hour, 0, 0, 0, time.Local)
	}

	// Hari 3: hadir. Hari 5: izin lalu hadir (vonis hari: izin).
	// Hari 9: tanpa_ket. April 2: di luar jendela, harus diabaikan.
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(3, 7), "Matematika", map[uint]string{ahmad.ID: model.StatusHadir})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(5, 7), "Fisika", map[uint]string{ahmad.ID: model.StatusIzin})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(5, 9), "Kimia", map[uint]string{ahmad.ID: model.StatusHadir})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(9, 7), "Biologi", map[uint]string{ahmad.ID: model.StatusTanpaKet})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, time.Date(2026, 4, 2, 7, 0, 0, 0, time.Local), "Sejarah", map[uint]string{ahmad.ID: model.StatusHadir})

	report, err := svc.RekapBulanan(3, 2026, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "Maret 2026", report.NamaBulan)
	assert.Equal(t, 31, report.JumlahHari)
	require.Len(t, report.RekapPerKelas, 1)

	rk := report.RekapPerKelas[0]
	require.Len(t, rk.Siswa, 1)
	sb := rk.Siswa[0]
	assert.Equal(t, 3, sb.TotalHariAktif, "April tidak boleh terhitung")
	assert.Equal(t, 1, sb.TotalHadir)
	assert.Equal(t, 1, sb.TotalIzin)
	assert.Equal(t, 1, sb.TotalAlpha)
	assert.Equal(t, 33, sb.PersentaseHadir)

	assert.Equal(t, 33, rk.Statistik.RataRataPersentaseHadir)
	assert.Equal(t, 33, report.StatistikKeseluruhan.RataRataPersentaseHadir)
	assert.Equal(t, 1, report.StatistikKeseluruhan.TotalKelas)
}

func TestRekapBulananBulanTidakValid(t *testing.T) {
	db := setupTestDB(t)
	svc := newRekapService(db)

	_, err := svc.RekapBulanan(13, 2026, 0, 0)
	require.Error(t, err)
}

// Rekap adalah pembacaan murni: dua pemanggilan beruntun dengan argumen
// sama harus menghasilkan laporan identik.
func TestRekapHarianIdempoten(t *testing.T) {
	db := setupTestDB(t)
	svc := newRekapService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	ahmad := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	budi := seedSiswa(t, db, "2021002", "Budi", kelas.ID)

	tanggal := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, tanggal.Add(7*time.Hour), "Matematika", map[uint]string{
		ahmad.ID: model.StatusHadir,
		budi.ID:  model.StatusTanpaKet,
	})

	pertama, err := svc.RekapHarian(tanggal, 0, 0)
	require.NoError(t, err)
	kedua, err := svc.RekapHarian(tanggal, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, pertama, kedua)
}
