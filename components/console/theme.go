package console

import (
	"context"
	"strings"
)

// ThemeProvider matches the go-theme provider interface used by adapters. It
// is optional; without one the console renders with its built-in styles.
type ThemeProvider interface {
	SelectTheme(ctx context.Context, selector ThemeSelector) (*ThemeSelection, error)
}

// ThemeSelectorFunc chooses the theme name/variant for a given viewer.
type ThemeSelectorFunc func(ctx context.Context, viewer ViewerContext) ThemeSelector

// ThemeSelector describes the desired theme/variant.
type ThemeSelector struct {
	Name    string
	Variant string
}

// ThemeSelection carries resolved theme details (tokens, assets, chart theme).
type ThemeSelection struct {
	Name       string
	Variant    string
	Tokens     map[string]string
	Assets     ThemeAssets
	ChartTheme string
}

// ThemeAssets provides asset metadata plus an optional URL prefix.
type ThemeAssets struct {
	Values map[string]string
	Prefix string
}

// AssetURL resolves the final URL for a named asset (logo, favicon, etc.).
func (assets ThemeAssets) AssetURL(name string) string {
	path := assets.Values[name]
	if path == "" {
		return ""
	}
	if assets.Prefix != "" {
		return strings.TrimRight(assets.Prefix, "/") + "/" + strings.TrimLeft(path, "/")
	}
	return path
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	var builder strings.Builder
	for key, value := range vars {
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

// ChartThemeResolver adapts a theme provider into the per-viewer chart theme
// resolver the echarts providers accept.
func ChartThemeResolver(provider ThemeProvider, selector ThemeSelectorFunc) ThemeResolver {
	if provider == nil {
		return nil
	}
	return func(viewer ViewerContext) string {
		ctx := context.Background()
		sel := ThemeSelector{}
		if selector != nil {
			sel = selector(ctx, viewer)
		}
		selection, err := provider.SelectTheme(ctx, sel)
		if err != nil || selection == nil {
			return ""
		}
		return selection.ChartTheme
	}
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

func cloneThemeSelection(selection *ThemeSelection) *ThemeSelection {
	if selection == nil {
		return nil
	}
	cloned := *selection
	if len(selection.Tokens) > 0 {
		cloned.Tokens = make(map[string]string, len(selection.Tokens))
		for key, value := range selection.Tokens {
			cloned.Tokens[key] = value
		}
	}
	if len(selection.Assets.Values) > 0 {
		cloned.Assets.Values = make(map[string]string, len(selection.Assets.Values))
		for key, value := range selection.Assets.Values {
			cloned.Assets.Values[key] = value
		}
	}
	return &cloned
}
