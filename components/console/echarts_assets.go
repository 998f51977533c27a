package console

import (
	"os"
	"strings"
)

const (
	// DefaultEChartsAssetsHost is the CDN used when no override is configured.
	defaultEChartsCDN = "https://assets.apache.org/echarts/"
	// envEChartsCDN overrides the default assets host (e.g., to point at a
	// self-hosted bucket).
	envEChartsCDN = "CONSOLE_ECHARTS_CDN"
)

// EChartsAssetsHost returns the assets host for chart markup, respecting
// CONSOLE_ECHARTS_CDN if set.
func EChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return defaultEChartsCDN
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
