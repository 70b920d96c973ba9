package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Store backends.
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

type Config struct {
	HTTPAddr string

	Env     string // "dev" | "prod"
	DataDir string // parent of every data file

	// Ledger
	Store          string // StoreCSV | StoreSQLite
	AttendancePath string // CSV ledger file
	DBPath         string // SQLite database file

	// Catalogs
	EmployeesPath string
	OutletsPath   string
	ModelsPath    string
}

func FromEnv() Config {
	addr := getenvDefault("GOLDENHOUR_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("GOLDENHOUR_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dataDir := getenvDefault("GOLDENHOUR_DATA_DIR", "./data")

	storeBackend := strings.ToLower(getenvDefault("GOLDENHOUR_STORE", StoreCSV))
	if storeBackend != StoreCSV && storeBackend != StoreSQLite {
		storeBackend = StoreCSV
	}

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DataDir:  dataDir,

		Store:          storeBackend,
		AttendancePath: getenvDefault("GOLDENHOUR_ATTENDANCE_PATH", filepath.Join(dataDir, "attendance.csv")),
		DBPath:         getenvDefault("GOLDENHOUR_DB_PATH", filepath.Join(dataDir, "goldenhour.db")),

		EmployeesPath: getenvDefault("GOLDENHOUR_EMPLOYEES_PATH", filepath.Join(dataDir, "employees.csv")),
		OutletsPath:   getenvDefault("GOLDENHOUR_OUTLETS_PATH", filepath.Join(dataDir, "outlets.csv")),
		ModelsPath:    getenvDefault("GOLDENHOUR_MODELS_PATH", filepath.Join(dataDir, "models.csv")),
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
