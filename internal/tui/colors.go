package tui

// Color constants for the liftlog TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (set values, exercise names)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorDisabledText  = "#6D7383" // Ghost sets, muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Active exercise border, selection
	ColorAccentBright = "#A78BFA" // Highlights, score line

	// State Colors
	ColorError   = "#EF4444" // Sync failures, validation errors
	ColorSuccess = "#22C55E" // Completed sets, saved state
	ColorWarning = "#F59E0B" // Pending sync
)
