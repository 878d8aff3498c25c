package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// PortalUser is one statically provisioned portal account. Accounts are
// parsed from the PORTAL_USERS variable as
// "username:bcrypt-hash:role:namespace" entries separated by commas.
type PortalUser struct {
	Username     string // login name
	PasswordHash string // bcrypt hash of the password
	Role         string // SUPERADMIN or MANAGER
	Namespace    string // tenant namespace embedded in issued tokens
}

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations, bools for behavior switches.
type Config struct {
	Env                 string       // application environment (e.g. "dev", "prod")
	Port                string       // HTTP port to listen on
	DBUser              string       // snapshot archive database username (optional)
	DBPass              string       // snapshot archive database password (optional)
	DBHost              string       // snapshot archive database host (optional)
	DBPort              string       // snapshot archive database port (optional)
	DBName              string       // snapshot archive database name (optional)
	JWTSecret           string       // secret used to sign JWTs
	AccessTTLMin        int          // access token time-to-live in minutes
	OutOfServiceCascade bool         // cascade apartment out-of-service into its rooms
	PortalUsers         []PortalUser // provisioned portal accounts
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. The DB_* variables
// are optional: without them the snapshot archive is disabled and the
// service runs fully in memory.
func Load() Config {
	return Config{
		Env:                 must("APP_ENV"),
		Port:                must("APP_PORT"),
		DBUser:              os.Getenv("DB_USER"),
		DBPass:              os.Getenv("DB_PASS"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              os.Getenv("DB_PORT"),
		DBName:              os.Getenv("DB_NAME"),
		JWTSecret:           must("JWT_SECRET"),
		AccessTTLMin:        mustInt("ACCESS_TOKEN_TTL_MIN"),
		OutOfServiceCascade: envBool("OUT_OF_SERVICE_CASCADE", false),
		PortalUsers:         parsePortalUsers(os.Getenv("PORTAL_USERS")),
	}
}

// parsePortalUsers splits the PORTAL_USERS value into accounts. Entries
// missing any of the four fields are skipped with a warning so one bad
// entry does not take the whole service down.
func parsePortalUsers(raw string) []PortalUser {
	var users []PortalUser
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 4)
		if len(parts) != 4 {
			log.Printf("config: skipping malformed PORTAL_USERS entry %q", entry)
			continue
		}
		users = append(users, PortalUser{
			Username:     strings.TrimSpace(parts[0]),
			PasswordHash: strings.TrimSpace(parts[1]),
			Role:         strings.ToUpper(strings.TrimSpace(parts[2])),
			Namespace:    strings.TrimSpace(parts[3]),
		})
	}
	return users
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer. If conversion fails, the application logs a fatal error and
// exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
