package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-bootstrap/internal/conntest"
	"github.com/askiada/go-bootstrap/pkg/bootstrap"
	"github.com/askiada/go-bootstrap/pkg/conn"
)

func TestUpdateNilArgs(t *testing.T) {
	t.Parallel()

	tmpl := bootstrap.New()

	assert.ErrorIs(t, bootstrap.Update(nil, "a", noopConfigurer(t)), bootstrap.ErrTemplateMustBeSet)
	assert.ErrorIs(t, bootstrap.Update(tmpl, "", noopConfigurer(t)), bootstrap.ErrNameMustBeSet)
	assert.ErrorIs(t, bootstrap.Update(tmpl, "a", nil), bootstrap.ErrConfigurerMustBeSet)
	assert.ErrorIs(t, bootstrap.Remove(nil, "a"), bootstrap.ErrTemplateMustBeSet)
	assert.ErrorIs(t, bootstrap.Remove(tmpl, ""), bootstrap.ErrNameMustBeSet)
}

func TestUpdateBuildsOrderedList(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))
	require.NoError(t, bootstrap.Update(tmpl, "b", recordConfigurer(t, "b", &applied)))
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a2", &applied)))

	list, ok := tmpl.Handler().(*bootstrap.ConfigurationList)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list.Names())
}

func TestUpdateWrapsUserHandler(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	tmpl.SetHandler(bootstrap.UserHandler(recordConfigurer(t, "legacy", &applied)))

	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))

	list, ok := tmpl.Handler().(*bootstrap.ConfigurationList)
	require.True(t, ok)
	// the previously installed bare handler is preserved and runs first
	assert.Equal(t, []string{bootstrap.UserStepName, "a"}, list.Names())
}

func TestRemoveFromTemplate(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))
	require.NoError(t, bootstrap.Update(tmpl, "b", recordConfigurer(t, "b", &applied)))

	require.NoError(t, bootstrap.Remove(tmpl, "a"))
	require.NoError(t, bootstrap.Remove(tmpl, "missing"))

	list, ok := tmpl.Handler().(*bootstrap.ConfigurationList)
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, list.Names())
}

func TestUpdateChildIsIndependent(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.NewServer()
	require.NoError(t, bootstrap.UpdateChild(tmpl, "a", recordConfigurer(t, "a", &applied)))

	list, ok := tmpl.ChildHandler().(*bootstrap.ConfigurationList)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, list.Names())
}

func TestTakeOnceOperationsFactory(t *testing.T) {
	t.Parallel()

	tmpl := bootstrap.New()
	factory := bootstrap.OperationsFactory(func(conn.Conn, conn.EventListener) (conn.Operations, error) {
		return nil, nil
	})

	require.NoError(t, bootstrap.AttachOperationsFactory(tmpl, factory))

	got, ok := bootstrap.TakeOperationsFactory(tmpl)
	require.True(t, ok)
	require.NotNil(t, got)

	_, ok = bootstrap.TakeOperationsFactory(tmpl)
	assert.False(t, ok)

	// a fresh attach re-arms the slot
	require.NoError(t, bootstrap.AttachOperationsFactory(tmpl, factory))
	_, ok = bootstrap.TakeOperationsFactory(tmpl)
	assert.True(t, ok)
}

func TestAttachOperationsFactoryNilArgs(t *testing.T) {
	t.Parallel()

	tmpl := bootstrap.New()

	assert.ErrorIs(t, bootstrap.AttachOperationsFactory(nil, nil), bootstrap.ErrTemplateMustBeSet)
	assert.ErrorIs(t, bootstrap.AttachOperationsFactory(tmpl, nil), bootstrap.ErrFactoryMustBeSet)

	_, ok := bootstrap.TakeOperationsFactory(nil)
	assert.False(t, ok)
}

func TestFinalizeInstallsInitializer(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))

	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)
	require.NotNil(t, ini)
	assert.Same(t, ini, tmpl.Handler())
	assert.Equal(t, []string{"a"}, ini.Snapshot().Names())
}

func TestFinalizeNoOpWithoutConfiguration(t *testing.T) {
	t.Parallel()

	tmpl := bootstrap.New()
	ini, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)
	assert.Nil(t, ini)
	assert.Nil(t, tmpl.Handler())

	// an existing handler that is not a configuration list stays untouched
	user := bootstrap.UserHandler(noopConfigurer(t))
	tmpl.SetHandler(user)
	ini, err = bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)
	assert.Nil(t, ini)
	assert.Same(t, user, tmpl.Handler())
}

func TestFinalizeTwiceIsHarmless(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))

	first, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Same(t, first, tmpl.Handler())
}

func TestConfigurationResumesAfterFinalize(t *testing.T) {
	t.Parallel()

	var applied []string

	tmpl := bootstrap.New()
	require.NoError(t, bootstrap.Update(tmpl, "a", recordConfigurer(t, "a", &applied)))

	first, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)
	require.NotNil(t, first)

	// later configuration builds on the finalized snapshot without touching
	// the already produced initializer
	require.NoError(t, bootstrap.Update(tmpl, "b", recordConfigurer(t, "b", &applied)))

	list, ok := tmpl.Handler().(*bootstrap.ConfigurationList)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list.Names())
	assert.Equal(t, []string{"a"}, first.Snapshot().Names())

	second, err := bootstrap.Finalize(tmpl, conntest.NewListener())
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, []string{"a", "b"}, second.Snapshot().Names())
}

func TestFinalizeNilArgs(t *testing.T) {
	t.Parallel()

	tmpl := bootstrap.New()

	_, err := bootstrap.Finalize(nil, conntest.NewListener())
	assert.ErrorIs(t, err, bootstrap.ErrTemplateMustBeSet)

	_, err = bootstrap.Finalize(tmpl, nil)
	assert.ErrorIs(t, err, bootstrap.ErrListenerMustBeSet)
}

func TestFindConfiguration(t *testing.T) {
	t.Parallel()

	tmpl := bootstrap.New()
	tagged := &taggedConfigurer{tag: "x"}
	require.NoError(t, bootstrap.Update(tmpl, "x", tagged))
	require.NoError(t, bootstrap.Update(tmpl, "y", noopConfigurer(t)))

	got, ok := bootstrap.FindConfiguration[*taggedConfigurer](tmpl.Handler())
	require.True(t, ok)
	assert.Same(t, tagged, got)

	_, ok = bootstrap.FindConfiguration[*bootstrap.LogConfigurer](tmpl.Handler())
	assert.False(t, ok)

	_, ok = bootstrap.FindConfiguration[*taggedConfigurer](nil)
	assert.False(t, ok)
}
