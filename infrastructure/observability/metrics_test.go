package observability

import (
	"context"
	"testing"
	"time"

	"warden/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsProvider_NilIsSafe(t *testing.T) {
	var mp *MetricsProvider

	assert.NotPanics(t, func() {
		mp.RecordCommand("kick", OutcomeSuccess)
		mp.RecordAuditEntry("member")
		mp.RecordModerationAction("ban")
		mp.RecordGatewayEvent("GUILD_MEMBER_ADD")
		mp.RecordNATSMessagePublished("audit_entry")
		mp.MeasureDatabaseQuery("guild_config", "GetGuildConfig")()
	})
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_Disabled(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())

	assert.NotPanics(t, func() {
		mp.RecordDatabaseQuery("guild_config", "UpsertGuildConfig", time.Millisecond)
	})
}

func TestMetricsProvider_ConsoleExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "console"

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	assert.True(t, mp.isEnabled())
	assert.NotPanics(t, func() {
		mp.RecordCommand("purge", OutcomeRejected)
		mp.RecordAuditEntry("role")
	})

	// Second initialization is a no-op
	require.NoError(t, mp.Initialize(context.Background()))
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "zipkin"

	mp := NewMetricsProvider(cfg)
	assert.Error(t, mp.Initialize(context.Background()))
}
