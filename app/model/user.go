package model

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleMahasiswa          = "mahasiswa"
	RoleDosen              = "dosen"
	RoleKoordinator        = "koordinator_kp"
	RolePembimbingInstansi = "pembimbing_instansi"
)

// JWTClaims dibuat oleh layanan autentikasi kampus; backend ini hanya
// memverifikasi dan membaca email principal dari token.
type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}
