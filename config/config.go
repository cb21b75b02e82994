package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Either a full DSN/URL or the discrete parts below.
	MySQLURL string `envconfig:"MYSQL_URL"`
	DBUser   string `envconfig:"DB_USER" default:"root"`
	DBPass   string `envconfig:"DB_PASS"`
	DBHost   string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort   string `envconfig:"DB_PORT" default:"3306"`
	DBName   string `envconfig:"DB_NAME" default:"hotel_db"`

	// Status newly created reservations start in.
	ReservationDefaultStatus string `envconfig:"RESERVATION_DEFAULT_STATUS" default:"CONFIRMED"`

	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// Empty disables the room-listing cache.
	RedisAddr        string `envconfig:"REDIS_ADDR"`
	RedisPassword    string `envconfig:"REDIS_PASSWORD"`
	RoomCacheSeconds int    `envconfig:"ROOM_CACHE_TTL_SECONDS" default:"30"`
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	return c, nil
}

// MySQLDSN resolves the driver DSN from either MYSQL_URL or the
// discrete DB_* parts.
func (c Config) MySQLDSN() (string, error) {
	raw := strings.TrimSpace(c.MySQLURL)
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	), nil
}

func (c Config) CORSOriginList() []string {
	raw := strings.TrimSpace(c.CORSOrigins)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}
