package format

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
)

// APIEndpoint represents an API endpoint
type APIEndpoint struct {
	Method      string
	Path        string
	Description string
}

// FormatHTTPMethod returns a colored and bold HTTP method string
func FormatHTTPMethod(method string) string {
	switch method {
	case "GET":
		return color.New(color.Bold, color.FgGreen).Sprint(method)
	case "POST":
		return color.New(color.Bold, color.FgYellow).Sprint(method)
	case "PUT", "PATCH":
		return color.New(color.Bold, color.FgBlue).Sprint(method)
	case "DELETE":
		return color.New(color.Bold, color.FgRed).Sprint(method)
	case "HEAD":
		return color.New(color.Bold, color.FgMagenta).Sprint(method)
	default:
		return color.New(color.Bold).Sprint(method)
	}
}

// FormatStorageBanner returns the startup line naming the storage backend
func FormatStorageBanner(backend, location string) string {
	green := color.New(color.FgGreen)
	return green.Sprint("Storing uploads on ") +
		color.New(color.Bold, color.FgCyan).Sprint(backend) +
		green.Sprintf(" at %s", location)
}

// FormatBytes renders a byte count with a binary unit, e.g. 5MB or 512KB
func FormatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit*unit && n%(unit*unit*unit) == 0:
		return fmt.Sprintf("%dGB", n/(unit*unit*unit))
	case n >= unit*unit && n%(unit*unit) == 0:
		return fmt.Sprintf("%dMB", n/(unit*unit))
	case n >= unit*unit:
		return fmt.Sprintf("%.1fMB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%dKB", n/unit)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// LogAPIEndpoint logs an API endpoint with consistent formatting
func LogAPIEndpoint(logger *logger.Logger, endpoint APIEndpoint) {
	// tabs keep alignment since ANSI color codes don't affect tab stops
	logger.Info("  %s\t\t%s\t\t%s",
		FormatHTTPMethod(endpoint.Method),
		endpoint.Path,
		endpoint.Description,
	)
}

// LogAPIEndpoints logs a header and a list of API endpoints
func LogAPIEndpoints(logger *logger.Logger, endpoints []APIEndpoint) {
	logger.Info("API endpoints:")
	for _, endpoint := range endpoints {
		LogAPIEndpoint(logger, endpoint)
	}
}
