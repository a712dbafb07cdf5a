package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// SupabaseURL returns the base URL of the hosted data store, without a
// trailing slash. The gateway appends /rest/v1/<table> to it.
func SupabaseURL() string {
	return strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/")
}

func SupabaseKey() string {
	return os.Getenv("SUPABASE_KEY")
}

// AppHost is the origin the diner frontend is served from. QR codes encode
// menu URLs under this host.
func AppHost() string {
	host := os.Getenv("APP_HOST")
	if host == "" {
		host = "http://localhost:3000"
	}
	return strings.TrimRight(host, "/")
}

func MenuURL(codigoQR string) string {
	return fmt.Sprintf("%s/menu/%s", AppHost(), codigoQR)
}

// TimeLocation is the zone day boundaries are computed in for dashboard
// aggregates. APP_TIMEZONE takes an IANA name; unset or invalid falls back to
// the server's local zone.
func TimeLocation() *time.Location {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Error loading APP_TIMEZONE [%s]: %s\n", name, err.Error())
		return time.Local
	}
	return loc
}
