package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appconfig "github.com/chakrahealing/admin_api/internal/config"
)

func TestDSN_EscapesCredentials(t *testing.T) {
	dsn := DSN(&appconfig.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "admin@chakra",
		Password: "p@ss/word",
		Name:     "chakra",
		SSLMode:  "disable",
	})

	assert.Equal(t, "postgres://admin%40chakra:p%40ss%2Fword@db:5432/chakra?sslmode=disable", dsn)
}

func TestConnect_NilConfig(t *testing.T) {
	_, err := Connect(nil)
	assert.Error(t, err)
}
