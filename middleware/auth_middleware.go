package middleware

import (
	"net/http"
	"strings"

	"absensi-sekolah-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token)
// atau query param ?token= (dipakai frontend untuk download file),
// lalu menyimpan identitas pemanggil (userID, role, nama) ke context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "missing_token", nil))
			c.Abort()
			return
		}

		// Validasi token (signature + expired) lewat utils
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Invalid or expired token", err.Error(), nil))
			c.Abort()
			return
		}

		// Inject identitas ke context untuk dipakai handler/service
		c.Set("userID", claims.ID)
		c.Set("role", claims.Role)
		c.Set("nama", claims.Nama)

		c.Next()
	}
}

// AdminOnly membatasi akses hanya untuk guru dengan role admin.
// Dipasang setelah AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden,
				utils.BuildResponseFailed("Access denied. Admin only.", "forbidden_role", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
