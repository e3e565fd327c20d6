// token emite un JWT para el panel (no hay registro de usuarios: los admins
// los entrega el owner).
//
// Uso: go run ./cmd/token -admin Rina -role admin
// Lee JWT_SECRET, JWT_ISSUER y JWT_EXPIRATION_MINUTES de la configuración.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/mygameon-ops/pkg/config"
	"github.com/jhoicas/mygameon-ops/pkg/jwt"
)

func main() {
	var (
		adminName string
		role      string
		expMin    int
	)
	flag.StringVar(&adminName, "admin", "", "nombre del admin (obligatorio)")
	flag.StringVar(&role, "role", jwt.RoleAdmin, "rol: owner | admin")
	flag.IntVar(&expMin, "exp", 0, "minutos de validez (default: JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if role != jwt.RoleOwner && role != jwt.RoleAdmin {
		fmt.Fprintf(os.Stderr, "rol desconocido %q (owner | admin)\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if expMin <= 0 {
		expMin = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, adminName, role, cfg.JWT.Issuer, expMin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
