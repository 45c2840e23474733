// Package assets embeds static data files shipped with the binary.
package assets

import "embed"

// DefaultSlotsPath lists the time slots seeded into an empty catalog.
const DefaultSlotsPath = "default_slots"

//go:embed default_slots
var DefaultSlotsFS embed.FS
