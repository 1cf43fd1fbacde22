package service

import (
	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/utils"

	"golang.org/x/crypto/bcrypt"
)

// JurusanInput adalah payload create/update jurusan.
type JurusanInput struct {
	Nama      string  `json:"nama" binding:"required"`
	Singkatan *string `json:"singkatan"`
	Deskripsi *string `json:"deskripsi"`
}

// GuruInput adalah payload create guru. Password wajib saat create.
type GuruInput struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Nama     string  `json:"nama" binding:"required"`
	NIP      string  `json:"nip" binding:"required"`
	Mapel    string  `json:"mapel" binding:"required"`
	JamMulai *string `json:"jam_mulai"`
	Role     string  `json:"role"`
}

// GuruUpdateInput adalah payload update guru. Password opsional:
// kosong berarti password lama dipertahankan.
type GuruUpdateInput struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password"`
	Nama     string  `json:"nama" binding:"required"`
	NIP      string  `json:"nip" binding:"required"`
	Mapel    string  `json:"mapel" binding:"required"`
	JamMulai *string `json:"jam_mulai"`
	Role     string  `json:"role"`
}

// SiswaInput adalah payload create/update siswa.
type SiswaInput struct {
	NIS     string  `json:"nis" binding:"required"`
	Nama    string  `json:"nama" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	KelasID uint    `json:"kelas_id" binding:"required"`
}

// KelasInput adalah payload create/update kelas.
type KelasInput struct {
	Nama        string `json:"nama" binding:"required"`
	Tingkat     string `json:"tingkat" binding:"required"`
	TahunAjaran string `json:"tahun_ajaran" binding:"required"`
	JurusanID   *uint  `json:"jurusan_id"`
}

// GuruKelasInput adalah payload penugasan guru ke kelas.
type GuruKelasInput struct {
	GuruID        uint    `json:"guru_id" binding:"required"`
	KelasID       uint    `json:"kelas_id" binding:"required"`
	MataPelajaran *string `json:"mata_pelajaran"`
}

// MasterService menangani CRUD data master oleh admin, termasuk aturan
// integritas referensial: entity induk yang masih punya data turunan
// tidak boleh dihapus (kecuali jurusan, yang melepas kelasnya).
type MasterService interface {
	ListJurusan() ([]model.Jurusan, error)
	CreateJurusan(input JurusanInput) (*model.Jurusan, error)
	UpdateJurusan(id uint, input JurusanInput) (*model.Jurusan, error)
	// DeleteJurusan melepas semua kelas di bawahnya (jurusan_id jadi NULL)
	// lalu menghapus jurusan, dalam satu transaksi.
	DeleteJurusan(id uint) error

	ListGuru() ([]model.Guru, error)
	CreateGuru(input GuruInput) (*model.Guru, error)
	UpdateGuru(id uint, input GuruUpdateInput) (*model.Guru, error)
	// DeleteGuru ditolak (Conflict) kalau guru masih memiliki jurnal.
	DeleteGuru(id uint) error

	ListSiswa() ([]model.Siswa, error)
	CreateSiswa(input SiswaInput) (*model.Siswa, error)
	UpdateSiswa(id uint, input SiswaInput) (*model.Siswa, error)
	// DeleteSiswa ditolak (Conflict) kalau siswa masih punya data absensi.
	DeleteSiswa(id uint) error

	ListKelas() ([]model.Kelas, error)
	CreateKelas(input KelasInput) (*model.Kelas, error)
	UpdateKelas(id uint, input KelasInput) (*model.Kelas, error)
	// DeleteKelas ditolak (Conflict) kalau kelas masih punya siswa atau jurnal.
	DeleteKelas(id uint) error

	ListGuruKelas() ([]model.GuruKelas, error)
	CreateGuruKelas(input GuruKelasInput) (*model.GuruKelas, error)
	UpdateGuruKelas(id uint, input GuruKelasInput) (*model.GuruKelas, error)
	DeleteGuruKelas(id uint) error
}

type masterService struct {
	jurusanRepo   repository.JurusanRepository
	guruRepo      repository.GuruRepository
	siswaRepo     repository.SiswaRepository
	kelasRepo     repository.KelasRepository
	guruKelasRepo repository.GuruKelasRepository
}

// NewMasterService membuat instance baru masterService.
func NewMasterService(
	jurusanRepo repository.JurusanRepository,
	guruRepo repository.GuruRepository,
	siswaRepo repository.SiswaRepository,
	kelasRepo repository.KelasRepository,
	guruKelasRepo repository.GuruKelasRepository,
) MasterService {
	return &masterService{
		jurusanRepo:   jurusanRepo,
		guruRepo:      guruRepo,
		siswaRepo:     siswaRepo,
		kelasRepo:     kelasRepo,
		guruKelasRepo: guruKelasRepo,
	}
}

// ---------- Jurusan ----------

func (s *masterService) ListJurusan() ([]model.Jurusan, error) {
	jurusans, err := s.jurusanRepo.FindAll()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data jurusan", err)
	}
	return jurusans, nil
}

func (s *masterService) CreateJurusan(input JurusanInput) (*model.Jurusan, error) {
	exists, err := s.jurusanRepo.ExistsByNama(input.Nama, 0)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat jurusan", err)
	}
	if exists {
		return nil, utils.ConflictError("Nama jurusan sudah digunakan")
	}

	jurusan := model.Jurusan{
		Nama:      input.Nama,
		Singkatan: input.Singkatan,
		Deskripsi: input.Deskripsi,
	}
	if err := s.jurusanRepo.Create(&jurusan); err != nil {
		return nil, utils.StorageError("Gagal menyimpan jurusan", err)
	}
	return &jurusan, nil
}

func (s *masterService) UpdateJurusan(id uint, input JurusanInput) (*model.Jurusan, error) {
	jurusan, err := s.jurusanRepo.FindByID(id)
	if err != nil {
		return nil, utils.WrapDBError("Jurusan tidak ditemukan", err)
	}

	exists, err := s.jurusanRepo.ExistsByNama(input.Nama, id)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat jurusan", err)
	}
	if exists {
		return nil, utils.ConflictError("Nama jurusan sudah digunakan")
	}

	jurusan.Nama = input.Nama
	jurusan.Singkatan = input.Singkatan
	jurusan.Deskripsi = input.Deskripsi
	if err := s.jurusanRepo.Update(jurusan); err != nil {
		return nil, utils.StorageError("Gagal memperbarui jurusan", err)
	}
	return jurusan, nil
}

func (s *masterService) DeleteJurusan(id uint) error {
	if _, err := s.jurusanRepo.FindByID(id); err != nil {
		return utils.WrapDBError("Jurusan tidak ditemukan", err)
	}
	if err := s.jurusanRepo.DeleteWithNullifyKelas(id); err != nil {
		return utils.StorageError("Gagal menghapus jurusan", err)
	}
	return nil
}

// ---------- Guru ----------

func (s *masterService) ListGuru() ([]model.Guru, error) {
	gurus, err := s.guruRepo.FindAll()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data guru", err)
	}
	return gurus, nil
}

func (s *masterService) CreateGuru(input GuruInput) (*model.Guru, error) {
	exists, err := s.guruRepo.ExistsByUsernameOrNIP(input.Username, input.NIP, 0)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat guru", err)
	}
	if exists {
		return nil, utils.ConflictError("Username atau NIP sudah digunakan")
	}

	role := input.Role
	if role == "" {
		role = model.RoleGuru
	}
	if role != model.RoleGuru && role != model.RoleAdmin {
		return nil, utils.ValidationError("Role tidak valid: " + role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.StorageError("Gagal memproses password", err)
	}

	guru := model.Guru{
		Username: input.Username,
		Password: string(hashed),
		Nama:     input.Nama,
		NIP:      input.NIP,
		Mapel:    input.Mapel,
		JamMulai: input.JamMulai,
		Role:     role,
	}
	if err := s.guruRepo.Create(&guru); err != nil {
		return nil, utils.StorageError("Gagal menyimpan guru", err)
	}
	return &guru, nil
}

func (s *masterService) UpdateGuru(id uint, input GuruUpdateInput) (*model.Guru, error) {
	guru, err := s.guruRepo.FindByID(id)
	if err != nil {
		return nil, utils.WrapDBError("Guru tidak ditemukan", err)
	}

	exists, err := s.guruRepo.ExistsByUsernameOrNIP(input.Username, input.NIP, id)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat guru", err)
	}
	if exists {
		return nil, utils.ConflictError("Username atau NIP sudah digunakan")
	}

	guru.Username = input.Username
	guru.Nama = input.Nama
	guru.NIP = input.NIP
	guru.Mapel = input.Mapel
	guru.JamMulai = input.JamMulai
	if input.Role != "" {
		if input.Role != model.RoleGuru && input.Role != model.RoleAdmin {
			return nil, utils.ValidationError("Role tidak valid: " + input.Role)
		}
		guru.Role = input.Role
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, utils.StorageError("Gagal memproses password", err)
		}
		guru.Password = string(hashed)
	}

	if err := s.guruRepo.Update(guru); err != nil {
		return nil, utils.StorageError("Gagal memperbarui guru", err)
	}
	return guru, nil
}

func (s *masterService) DeleteGuru(id uint) error {
	if _, err := s.guruRepo.FindByID(id); err != nil {
		return utils.WrapDBError("Guru tidak ditemukan", err)
	}

	count, err := s.guruRepo.CountJurnal(id)
	if err != nil {
		return utils.StorageError("Gagal memeriksa jurnal guru", err)
	}
	if count > 0 {
		return utils.ConflictError("Guru tidak dapat dihapus karena masih memiliki data jurnal")
	}

	if err := s.guruRepo.Delete(id); err != nil {
		return utils.StorageError("Gagal menghapus guru", err)
	}
	return nil
}

// ---------- Siswa ----------

func (s *masterService) ListSiswa() ([]model.Siswa, error) {
	siswaList, err := s.siswaRepo.FindAllWithKelas()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data siswa", err)
	}
	return siswaList, nil
}

func (s *masterService) CreateSiswa(input SiswaInput) (*model.Siswa, error) {
	exists, err := s.siswaRepo.ExistsByNIS(input.NIS, 0)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat siswa", err)
	}
	if exists {
		return nil, utils.ConflictError("NIS sudah digunakan")
	}
	if _, err := s.kelasRepo.FindByID(input.KelasID); err != nil {
		return nil, utils.WrapDBError("Kelas tidak ditemukan", err)
	}

	siswa := model.Siswa{
		NIS:     input.NIS,
		Nama:    input.Nama,
		Email:   input.Email,
		Phone:   input.Phone,
		KelasID: input.KelasID,
	}
	if err := s.siswaRepo.Create(&siswa); err != nil {
		return nil, utils.StorageError("Gagal menyimpan siswa", err)
	}
	return &siswa, nil
}

func (s *masterService) UpdateSiswa(id uint, input SiswaInput) (*model.Siswa, error) {
	siswa, err := s.siswaRepo.FindByID(id)
	if err != nil {
		return nil, utils.WrapDBError("Siswa tidak ditemukan", err)
	}

	exists, err := s.siswaRepo.ExistsByNIS(input.NIS, id)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat siswa", err)
	}
	if exists {
		return nil, utils.ConflictError("NIS sudah digunakan")
	}
	if _, err := s.kelasRepo.FindByID(input.KelasID); err != nil {
		return nil, utils.WrapDBError("Kelas tidak ditemukan", err)
	}

	siswa.NIS = input.NIS
	siswa.Nama = input.Nama
	siswa.Email = input.Email
	siswa.Phone = input.Phone
	siswa.KelasID = input.KelasID
	if err := s.siswaRepo.Update(siswa); err != nil {
		return nil, utils.StorageError("Gagal memperbarui siswa", err)
	}
	return siswa, nil
}

func (s *masterService) DeleteSiswa(id uint) error {
	if _, err := s.siswaRepo.FindByID(id); err != nil {
		return utils.WrapDBError("Siswa tidak ditemukan", err)
	}

	count, err := s.siswaRepo.CountAbsensi(id)
	if err != nil {
		return utils.StorageError("Gagal memeriksa absensi siswa", err)
	}
	if count > 0 {
		return utils.ConflictError("Siswa tidak dapat dihapus karena masih memiliki data absensi")
	}

	if err := s.siswaRepo.Delete(id); err != nil {
		return utils.StorageError("Gagal menghapus siswa", err)
	}
	return nil
}

// ---------- Kelas ----------

func (s *masterService) ListKelas() ([]model.Kelas, error) {
	kelasList, err := s.kelasRepo.FindAllWithJurusan()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data kelas", err)
	}
	return kelasList, nil
}

func (s *masterService) CreateKelas(input KelasInput) (*model.Kelas, error) {
	exists, err := s.kelasRepo.ExistsByNama(input.Nama, 0)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat kelas", err)
	}
	if exists {
		return nil, utils.ConflictError("Nama kelas sudah digunakan")
	}
	if input.JurusanID != nil {
		if _, err := s.jurusanRepo.FindByID(*input.JurusanID); err != nil {
			return nil, utils.WrapDBError("Jurusan tidak ditemukan", err)
		}
	}

	kelas := model.Kelas{
		Nama:        input.Nama,
		Tingkat:     input.Tingkat,
		TahunAjaran: input.TahunAjaran,
		JurusanID:   input.JurusanID,
	}
	if err := s.kelasRepo.Create(&kelas); err != nil {
		return nil, utils.StorageError("Gagal menyimpan kelas", err)
	}
	return &kelas, nil
}

func (s *masterService) UpdateKelas(id uint, input KelasInput) (*model.Kelas, error) {
	kelas, err := s.kelasRepo.FindByID(id)
	if err != nil {
		return nil, utils.WrapDBError("Kelas tidak ditemukan", err)
	}

	exists, err := s.kelasRepo.ExistsByNama(input.Nama, id)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat kelas", err)
	}
	if exists {
		return nil, utils.ConflictError("Nama kelas sudah digunakan")
	}
	if input.JurusanID != nil {
		if _, err := s.jurusanRepo.FindByID(*input.JurusanID); err != nil {
			return nil, utils.WrapDBError("Jurusan tidak ditemukan", err)
		}
	}

	kelas.Nama = input.Nama
	kelas.Tingkat = input.Tingkat
	kelas.TahunAjaran = input.TahunAjaran
	kelas.JurusanID = input.JurusanID
	if err := s.kelasRepo.Update(kelas); err != nil {
		return nil, utils.StorageError("Gagal memperbarui kelas", err)
	}
	return kelas, nil
}

func (s *masterService) DeleteKelas(id uint) error {
	if _, err := s.kelasRepo.FindByID(id); err != nil {
		return utils.WrapDBError("Kelas tidak ditemukan", err)
	}

	siswaCount, err := s.kelasRepo.CountSiswa(id)
	if err != nil {
		return utils.StorageError("Gagal memeriksa siswa kelas", err)
	}
	if siswaCount > 0 {
		return utils.ConflictError("Kelas tidak dapat dihapus karena masih memiliki siswa")
	}

	jurnalCount, err := s.kelasRepo.CountJurnal(id)
	if err != nil {
		return utils.StorageError("Gagal memeriksa jurnal kelas", err)
	}
	if jurnalCount > 0 {
		return utils.ConflictError("Kelas tidak dapat dihapus karena masih memiliki data jurnal")
	}

	if err := s.kelasRepo.Delete(id); err != nil {
		return utils.StorageError("Gagal menghapus kelas", err)
	}
	return nil
}

// ---------- GuruKelas ----------

func (s *masterService) ListGuruKelas() ([]model.GuruKelas, error) {
	list, err := s.guruKelasRepo.FindAll()
	if err != nil {
		return nil, utils.StorageError("Gagal mengambil data guru-kelas", err)
	}
	return list, nil
}

func (s *masterService) CreateGuruKelas(input GuruKelasInput) (*model.GuruKelas, error) {
	if _, err := s.guruRepo.FindByID(input.GuruID); err != nil {
		return nil, utils.WrapDBError("Guru tidak ditemukan", err)
	}
	if _, err := s.kelasRepo.FindByID(input.KelasID); err != nil {
		return nil, utils.WrapDBError("Kelas tidak ditemukan", err)
	}

	exists, err := s.guruKelasRepo.Exists(input.GuruID, input.KelasID)
	if err != nil {
		return nil, utils.StorageError("Gagal memeriksa duplikat guru-kelas", err)
	}
	if exists {
		return nil, utils.ConflictError("Guru sudah terdaftar di kelas tersebut")
	}

	gk := model.GuruKelas{
		GuruID:        input.GuruID,
		KelasID:       input.KelasID,
		MataPelajaran: input.MataPelajaran,
	}
	if err := s.guruKelasRepo.Create(&gk); err != nil {
		return nil, utils.StorageError("Gagal menyimpan guru-kelas", err)
	}
	return &gk, nil
}

func (s *masterService) UpdateGuruKelas(id uint, input GuruKelasInput) (*model.GuruKelas, error) {
	gk, err := s.guruKelasRepo.FindByID(id)
	if err != nil {
		return nil, utils.WrapDBError("Data guru-kelas tidak ditemukan", err)
	}

	if _, err := s.guruRepo.FindByID(input.GuruID); err != nil {
		return nil, utils.WrapDBError("Guru tidak ditemukan", err)
	}
	if _, err := s.kelasRepo.FindByID(input.KelasID); err != nil {
		return nil, utils.WrapDBError("Kelas tidak ditemukan", err)
	}

	// Pindah pasangan (guru, kelas) tetap harus unik.
	if gk.GuruID != input.GuruID || gk.KelasID != input.KelasID {
		exists, err := s.guruKelasRepo.Exists(input.GuruID, input.KelasID)
		if err != nil {
			return nil, utils.StorageError("Gagal memeriksa duplikat guru-kelas", err)
		}
		if exists {
			return nil, utils.ConflictError("Guru sudah terdaftar di kelas tersebut")
		}
	}

	gk.GuruID = input.GuruID
	gk.KelasID = input.KelasID
	gk.MataPelajaran = input.MataPelajaran
	if err := s.guruKelasRepo.Update(gk); err != nil {
		return nil, utils.StorageError("Gagal memperbarui guru-kelas", err)
	}
	return gk, nil
}

func (s *masterService) DeleteGuruKelas(id uint) error {
	if _, err := s.guruKelasRepo.FindByID(id); err != nil {
		return utils.WrapDBError("Data guru-kelas tidak ditemukan", err)
	}
	if err := s.guruKelasRepo.Delete(id); err != nil {
		return utils.StorageError("Gagal menghapus guru-kelas", err)
	}
	return nil
}
