// Package names provides name normalization for container identity matching.
package names

import (
	"regexp"
	"strings"
)

// instanceSuffix matches the trailing "-<number>" that Compose appends when
// scaling a service to multiple replicas (e.g. "plex-1", "plex-2"). Repeated
// groups are consumed in one pass so that BaseName stays idempotent.
var instanceSuffix = regexp.MustCompile(`(-\d+)+$`)

// BaseName derives the restart-stable match key from a raw container name.
// It strips one leading slash (the Docker API reports names as "/name"),
// strips a trailing instance suffix, and lowercases the result.
// Total over all inputs: an empty string yields an empty string.
//
// Example usage:
//
//	names.BaseName("/Portainer-2")  // "portainer"
//	names.BaseName("nginx-proxy-1") // "nginx-proxy"
func BaseName(raw string) string {
	if raw == "" {
		return ""
	}
	name := strings.TrimPrefix(raw, "/")
	name = instanceSuffix.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// ImageShortName extracts the bare application name from a full image
// reference: the version tag after the first colon is dropped, then any
// registry or namespace path segments before the last slash.
// Returns "" for an empty reference.
//
// Example usage:
//
//	names.ImageShortName("linuxserver/plex:latest")            // "plex"
//	names.ImageShortName("ghcr.io/home-assistant/core:stable") // "core"
func ImageShortName(ref string) string {
	if ref == "" {
		return ""
	}
	name := ref
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = name[:idx]
	}
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(name)
}

// StripInstanceSuffix removes a trailing "-<number>" replica suffix without
// touching case or path separators.
func StripInstanceSuffix(name string) string {
	return instanceSuffix.ReplaceAllString(name, "")
}
