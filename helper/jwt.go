package helper

import (
	"fiber/kp/app/model"
	"fiber/kp/config"

	"github.com/golang-jwt/jwt/v5"
)

func ValidateToken(tokenString string) (*model.JWTClaims, error) {
	secret := config.GetJWTSecret()
	token, err := jwt.ParseWithClaims(tokenString, &model.JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*model.JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
