package recognition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicescribe/internal/app/audio"
)

type stubProvider struct {
	info     ProviderInfo
	settings map[string]interface{}
}

func (p *stubProvider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	return "", ErrNoSpeech
}

func (p *stubProvider) Info() ProviderInfo {
	return p.info
}

func registerStub(t *testing.T, id string) {
	t.Helper()
	RegisterCreator(id, func(settings map[string]interface{}) (Provider, error) {
		return &stubProvider{
			info:     ProviderInfo{ID: id, DisplayName: id},
			settings: settings,
		}, nil
	})
}

func TestBuildRegistry(t *testing.T) {
	registerStub(t, "test_first")
	registerStub(t, "test_second")

	registry, err := BuildRegistry(map[string]map[string]interface{}{
		"test_second": {"endpoint": "http://localhost:1"},
	})
	require.NoError(t, err)

	first, err := registry.Resolve("test_first")
	require.NoError(t, err)
	assert.Equal(t, "test_first", first.Info().ID)
	assert.Nil(t, first.(*stubProvider).settings)

	second, err := registry.Resolve("test_second")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1", second.(*stubProvider).settings["endpoint"])
}

func TestResolveUnknownProvider(t *testing.T) {
	registry, err := BuildRegistry(nil)
	require.NoError(t, err)

	_, err = registry.Resolve("does_not_exist")
	assert.ErrorContains(t, err, "not found")
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	registerStub(t, "test_order_a")
	registerStub(t, "test_order_b")
	registerStub(t, "test_order_c")

	registry, err := BuildRegistry(nil)
	require.NoError(t, err)

	var ids []string
	for _, p := range registry.List() {
		ids = append(ids, p.Info().ID)
	}

	posA, posB, posC := -1, -1, -1
	for i, id := range ids {
		switch id {
		case "test_order_a":
			posA = i
		case "test_order_b":
			posB = i
		case "test_order_c":
			posC = i
		}
	}
	require.NotEqual(t, -1, posA)
	assert.Less(t, posA, posB)
	assert.Less(t, posB, posC)
}

func TestRegisterCreatorPanicsOnDuplicate(t *testing.T) {
	registerStub(t, "test_duplicate")
	assert.Panics(t, func() {
		registerStub(t, "test_duplicate")
	})
}
