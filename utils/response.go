package utils

// APIResponse adalah format standar JSON yang diterima frontend.
// Contoh sukses : { "status": true,  "message": "Absen berhasil disubmit", "data": { ... } }
// Contoh gagal  : { "status": false, "message": "Data tidak lengkap", "errors": "..." }
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// BuildResponseSuccess dipakai saat request berhasil (HTTP 200/201).
func BuildResponseSuccess(message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

// BuildResponseFailed dipakai saat terjadi error (HTTP 400, 401, 409, 500, dll).
// err biasanya string detail teknis, bisa juga map kalau perlu lebih rinci.
func BuildResponseFailed(message string, err interface{}, data interface{}) APIResponse {
	return APIResponse{
		Status:  false,
		Message: message,
		Errors:  err,
		Data:    data,
	}
}
