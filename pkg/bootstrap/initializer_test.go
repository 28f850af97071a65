package bootstrap_test

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/askiada/go-bootstrap/internal/conntest"
	"github.com/askiada/go-bootstrap/pkg/bootstrap"
	"github.com/askiada/go-bootstrap/pkg/bootstrap/drawer"
	"github.com/askiada/go-bootstrap/pkg/bootstrap/measure"
	"github.com/askiada/go-bootstrap/pkg/conn"
)

func TestInitializerAppliesStepsInOrder(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))
	require.NoError(t, bootstrap.Update(tmpl, "b", recordConfigurer(t, "b", &applied)))
	require.NoError(t, bootstrap.Update(tmpl, "c", recordConfigurer(t, "c", &applied)))

	listener := conntest.NewListener()
	ini, err := bootstrap.Finalize(tmpl, listener)
	require.NoError(t, err)

	c := conntest.New()
	require.NoError(t, ini.HandleConn(c))

	assert.Equal(t, []string{"a", "b", "c"}, applied)
	// the bridge is installed last and the init stage removed itself
	assert.Equal(t, []string{conn.BridgeStage}, c.Pipeline().Names())
	assert.Equal(t, 1, listener.SetupCount())
}

func TestInitializerRunsOncePerConnection(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))

	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)

	first := conntest.New()
	second := conntest.New()
	require.NoError(t, ini.HandleConn(first))
	require.NoError(t, ini.HandleConn(second))

	// one application per connection, each with its own run
	assert.Equal(t, []string{"a", "a"}, applied)
}

func TestInitializerAbortsOnStepError(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))
	require.NoError(t, bootstrap.Update(tmpl, "broken", bootstrap.ConfigurerFunc(func(conn.Conn) error {
		return assert.AnError
	})))
	require.NoError(t, bootstrap.Update(tmpl, "c", recordConfigurer(t, "c", &applied)))

	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)

	c := conntest.New()
	err = ini.HandleConn(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	// steps after the failing one never ran
	assert.Equal(t, []string{"a"}, applied)
	// no bridge was installed
	assert.Nil(t, c.Pipeline().Get(conn.BridgeStage))
	assert.Nil(t, c.Pipeline().Get(conn.InitStage))

	// the failure crossed into the connection's error channel
	select {
	case fatal := <-c.Errors():
		assert.ErrorIs(t, fatal, assert.AnError)
	default:
		t.Fatal("expected a fatal error on the connection")
	}
}

func TestLogConfigurationObservesTLS(t *testing.T) {
	t.Parallel()

	core, _ := observer.New(zapcore.DebugLevel)
	handler := conn.NewLogHandler(zap.New(core))

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.UpdateTLSSupport(tmpl, &tls.Config{MinVersion: tls.VersionTLS13}))
	require.NoError(t, bootstrap.UpdateLogSupport(tmpl, handler))

	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)

	c := conntest.New()
	require.NoError(t, ini.HandleConn(c))

	// tls ran first, so the logging step saw it and added the trace logger
	assert.NotNil(t, c.Pipeline().Get(conn.TLSLoggingStage))
	assert.Equal(t,
		[]string{conn.TLSLoggingStage, conn.TLSStage, conn.LoggingStage, conn.BridgeStage},
		c.Pipeline().Names(),
	)
}

func TestLogConfigurationWithoutTLS(t *testing.T) {
	t.Parallel()

	core, _ := observer.New(zapcore.DebugLevel)
	handler := conn.NewLogHandler(zap.New(core))

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.UpdateLogSupport(tmpl, handler))
	require.NoError(t, bootstrap.UpdateTLSSupport(tmpl, &tls.Config{MinVersion: tls.VersionTLS13}))

	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)

	c := conntest.New()
	require.NoError(t, ini.HandleConn(c))

	// logging ran before tls existed: no trace logger
	assert.Nil(t, c.Pipeline().Get(conn.TLSLoggingStage))
	assert.Equal(t,
		[]string{conn.TLSStage, conn.LoggingStage, conn.BridgeStage},
		c.Pipeline().Names(),
	)
}

func TestLogConfigurationQuietLogger(t *testing.T) {
	t.Parallel()

	core, _ := observer.New(zapcore.InfoLevel)
	handler := conn.NewLogHandler(zap.New(core))

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.UpdateTLSSupport(tmpl, &tls.Config{MinVersion: tls.VersionTLS13}))
	require.NoError(t, bootstrap.UpdateLogSupport(tmpl, handler))

	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)

	c := conntest.New()
	require.NoError(t, ini.HandleConn(c))

	// trace disabled: tls present but no extra trace logger
	assert.Nil(t, c.Pipeline().Get(conn.TLSLoggingStage))
}

func TestFindConfigurationRecoversLogHandler(t *testing.T) {
	t.Parallel()

	handler := conn.NewLogHandler(zap.NewNop())

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.UpdateLogSupport(tmpl, handler))

	got, ok := bootstrap.FindConfiguration[*bootstrap.LogConfigurer](tmpl.Handler())
	require.True(t, ok)
	assert.Same(t, handler, got.Handler())
}

func TestInitializerMeasureAndDrawer(t *testing.T) {
	t.Parallel()

	var applied []string

	msr := measure.NewDefaultMeasure()
	file := filepath.Join(t.TempDir(), "pipeline.gv")

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))
	require.NoError(t, bootstrap.Update(tmpl, "b", recordConfigurer(t, "b", &applied)))

	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener(),
		measure.InitMeasure(msr),
		drawer.InitDrawer(drawer.NewSVGDrawer(file), msr),
	)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, ini.HandleConn(conntest.New()))
	}

	require.NoError(t, ini.Close())

	assert.EqualValues(t, 3, msr.GetMetric("a").Applications())
	assert.EqualValues(t, 3, msr.GetMetric("b").Applications())

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "digraph")
	assert.Contains(t, string(content), `"a" -> "b"`)
	assert.Contains(t, string(content), "bridge")
}
