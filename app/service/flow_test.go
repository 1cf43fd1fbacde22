package service

import (
	"testing"
	"time"

	"absensi-sekolah-backend/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Alur lengkap: guru submit absen, lalu laporan harian langsung
// mencerminkan hasilnya, termasuk keterangan izin di drill-down.
func TestSubmitAbsenLaluRekapHarian(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	absenSvc := newAbsenService(db, notifier)
	rekapSvc := newRekapService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	ahmad := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	budi := seedSiswa(t, db, "2021002", "Budi", kelas.ID)

	sakit := "sakit demam"
	input := SubmitAbsenInput{
		KelasID: kelas.ID,
		JurnalData: JurnalInput{
			JamMulai:      "07:00:00",
			JamSelesai:    "08:30:00",
			MataPelajaran: "Matematika",
			Materi:        "Integral",
		},
		SiswaList: []SiswaStatusInput{
			{SiswaID: ahmad.ID, Status: model.StatusHadir},
			{SiswaID: budi.ID, Status: model.StatusIzin, Keterangan: &sakit},
		},
	}

	_, err := absenSvc.SubmitAbsen(guru.ID, guru.Nama, input)
	require.NoError(t, err)

	report, err := rekapSvc.RekapHarian(time.Now(), 0, 0)
	require.NoError(t, err)
	require.Len(t, report.RekapPerKelas, 1)

	rk := report.RekapPerKelas[0]
	assert.Equal(t, 1, rk.Statistik.Hadir)
	assert.Equal(t, 1, rk.Statistik.Izin)
	assert.Equal(t, 50, rk.Statistik.PersentaseHadir)

	require.Len(t, rk.Siswa, 2)
	budiRekap := rk.Siswa[1]
	assert.Equal(t, "Budi", budiRekap.Nama)
	assert.Equal(t, model.StatusIzin, budiRekap.StatusRingkasan)
	require.Len(t, budiRekap.Detail, 1)
	assert.Equal(t, "Matematika", budiRekap.Detail[0].Mapel)
	assert.Equal(t, guru.Nama, budiRekap.Detail[0].Guru)
	require.NotNil(t, budiRekap.Detail[0].Keterangan)
	assert.Equal(t, sakit, *budiRekap.Detail[0].Keterangan)
}
