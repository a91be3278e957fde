package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestSetupWriter(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	t.Run("json output at configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := SetupWriter(&buf, "warn", false)

		l.Info().Msg("hidden")
		l.Warn().Str("genre", "Fantasy").Msg("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"genre":"Fantasy"`)
		assert.Contains(t, buf.String(), `"level":"warn"`)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWriter(&buf, "loud", false)
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Info, GormLevel("info"))
	assert.Equal(t, gormlogger.Warn, GormLevel(""))
}
