package tui

// Color constants for the cosplans board theme
const (
	ColorBorder        = "#3A4254" // column borders
	ColorPrimaryText   = "#E8ECF4" // task titles
	ColorSecondaryText = "#A8B0C0" // metadata lines
	ColorDisabledText  = "#697084" // completed tasks
	ColorHelpText      = "240"     // help bar

	ColorAccent       = "#2D9D78" // selected column header
	ColorAccentBright = "#3FBF93" // selected task

	ColorError   = "#E5484D" // overdue markers
	ColorWarning = "#FFC53D" // urgent deadlines
	ColorSuccess = "#46A758" // completion stage header
)
