package config

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rjkroege/richui/asset"
	"github.com/rjkroege/richui/rich"
	"github.com/rjkroege/richui/richtext"
)

// FontSet returns the Go fonts at the configured size.
func (cfg *Config) FontSet() (*rich.FontSet, error) {
	return rich.NewGoFontSet(cfg.Fonts.Size)
}

// WidgetOptions returns the richtext options the configuration describes.
func (cfg *Config) WidgetOptions(log *zap.Logger) []richtext.Option {
	resolver := asset.NewFetchResolver(
		asset.WithHTTPClient(&http.Client{Timeout: cfg.Assets.Timeout}),
		asset.WithMaxFrameSize(cfg.Assets.MaxFrameWidth, cfg.Assets.MaxFrameHeight),
		asset.WithResolverLogger(log.Named("asset")),
	)
	return []richtext.Option{
		richtext.WithLogger(log),
		richtext.WithResolver(resolver),
		richtext.WithMaxWidth(cfg.Layout.MaxWidth),
		richtext.WithEngineOptions(
			rich.WithTabWidth(cfg.Layout.TabWidth),
			rich.WithListIndent(cfg.Layout.ListIndent),
		),
	}
}
