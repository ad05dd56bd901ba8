package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits comma-separated lists
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
	Env            string          // application environment (e.g. "dev", "prod")
	Port           string          // HTTP port to listen on
	DBUser         string          // database username
	DBPass         string          // database password (optional)
	DBHost         string          // database host address
	DBPort         string          // database port number
	DBName         string          // database name
	JWTSecret      string          // secret used to sign JWTs
	AccessTTLMin   int             // access token time-to-live in minutes
	RefreshTTLDays int             // refresh token time-to-live in days
	ProtectedUsers map[string]bool // usernames that can never be deleted
	Countries      []string        // country codes offered by the generator form
	SeedAdminPass  string          // initial password of the seeded admin account
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The protected user
// set and the country list have defaults so a minimal .env still works.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		ProtectedUsers: csvSet(envDefault("PROTECTED_USERS", "admin")),
		Countries:      csvList(envDefault("COUNTRIES", "ES,PT,FR,IT,DE,UK")),
		SeedAdminPass:  envDefault("SEED_ADMIN_PASSWORD", "admin123"),
	}
}

// IsProtected reports whether a username belongs to the configured
// protected set.  Comparison is case-insensitive to match how usernames
// are stored.
func (c Config) IsProtected(username string) bool {
	return c.ProtectedUsers[strings.ToLower(strings.TrimSpace(username))]
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// csvSet parses a comma-separated list into a lower-cased lookup set.
func csvSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out[p] = true
		}
	}
	return out
}

// csvList parses a comma-separated list into an upper-cased slice,
// preserving order and dropping empty entries.
func csvList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
