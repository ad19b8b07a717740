package tui

import "github.com/charmbracelet/lipgloss"

// CompactWidth is the terminal width below which hints drop descriptions.
const CompactWidth = 60

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold: picked well
	colorSuccess     = lipgloss.Color("#00E676") // Green: visible / moved
	colorDanger      = lipgloss.Color("#FF5252") // Red: errors
	colorMuted       = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white: emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim  = lipgloss.Color("#181825") // Darkest surface: footer bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Tree glyphs.
const (
	iconExpanded  = "▾"
	iconCollapsed = "▸"
	iconLeaf      = " "
	iconChecked   = "■"
	iconUnchecked = "□"
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleTabActive = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Underline(true)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorMutedLight)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorAccent)
)

// Row styles.
var (
	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowPicked = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleChecked = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleUnchecked = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// Notice line styles.
var (
	styleNoticeSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleNoticeWarning = lipgloss.NewStyle().Foreground(colorAccent)
	styleNoticeError   = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleNoticeInfo    = lipgloss.NewStyle().Foreground(colorMutedLight)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
