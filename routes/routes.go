package routes

import (
	"errors"
	"strconv"
	"time"

	"absensi-sekolah-backend/utils"

	"github.com/gin-gonic/gin"
)

// tanggalLayout adalah format tanggal yang diterima di query param.
const tanggalLayout = "2006-01-02"

// failJSON memetakan error service ke respon JSON + HTTP status.
// Pesan AppError aman ditampilkan; error lain disembunyikan di balik
// pesan generik supaya detail teknis tidak bocor ke client.
func failJSON(ctx *gin.Context, err error) {
	message := "Terjadi kesalahan pada server"
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	ctx.JSON(utils.HTTPStatus(err), utils.BuildResponseFailed(message, err.Error(), nil))
}

// paramUint membaca path param sebagai uint (0, false kalau bukan angka).
func paramUint(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

// queryUint membaca query param opsional sebagai uint; 0 berarti tidak diisi.
func queryUint(ctx *gin.Context, name string) uint {
	value, err := strconv.ParseUint(ctx.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// queryDate membaca query param tanggal opsional (YYYY-MM-DD).
// Mengembalikan nil kalau kosong, error kalau terisi tapi formatnya salah.
func queryDate(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(tanggalLayout, raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
