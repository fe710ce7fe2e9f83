package cmd

import (
	"fmt"
)

// Storage backends selectable through STORAGE.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort                string
	Storage                 string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	MQTTBroker              string
	MQTTClientID            string
	MQTTTopic               string
	ErrorReportSchedule     string
	TelemetryReportSchedule string
	SampleWarehouseFile     string
	AuditUser               string
}

// PostgresDSN builds the libpq connection string for the configured database.
func (c Config) PostgresDSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// UsesMemoryStorage reports whether the process keeps its state in memory only.
func (c Config) UsesMemoryStorage() bool {
	return c.Storage == StorageMemory
}
