package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balbesina228/films-api/internal/config"
)

func TestRenderPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			require.NoError(t, err)
			assert.Contains(t, html, data["Username"])
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestRenderEscapesInput(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{"Username": "<script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestNewClientWithoutKey(t *testing.T) {
	logger := zerolog.Nop()
	assert.Nil(t, NewClient(&config.Config{}, &logger))

	cfg := &config.Config{Integration: config.IntegrationConfig{ResendAPIKey: "re_test"}}
	assert.NotNil(t, NewClient(cfg, &logger))
}
