package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles admitidos en el panel.
const (
	RoleOwner = "owner" // dueño: importa reportes y confirma asignaciones
	RoleAdmin = "admin" // admin de turno: abre y cierra turnos
)

// Claims incluye los claims estándar JWT más el nombre del admin y su rol.
// El nombre viaja en el token para que el turno quede a nombre de quien lo inicia.
type Claims struct {
	jwt.RegisteredClaims
	AdminName string `json:"admin_name"`
	Role      string `json:"role"`
}

// Generate genera un token JWT firmado para el admin indicado.
func Generate(secret, adminName, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if adminName == "" {
		return "", fmt.Errorf("jwt: admin_name vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		AdminName: adminName,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve adminName y role.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (adminName, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	if claims.AdminName == "" {
		return "", "", fmt.Errorf("claims inválidos: admin_name vacío")
	}
	return claims.AdminName, claims.Role, nil
}
