package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wonny/readytrade/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// every command prints through these helpers
// ═══════════════════════════════════════════════════════════

// PrintHeader prints a titled box
func PrintHeader(title string, lines ...string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	if len(lines) > 0 {
		PrintSeparator()
		for _, l := range lines {
			fmt.Printf("  %s\n", l)
		}
	}
	PrintSeparator()
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println()
	fmt.Printf("⚠️  %s\n", message)
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Println(strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Printf("   • %s\n", item)
	}
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %-*s : %s\n", keyWidth, key, value)
}

var playerColumns = []string{"ID", "NAME", "POS", "TEAM", "VALUE", "REDRAFT", "RANK"}
var playerWidths = []int{7, 26, 4, 5, 7, 7, 5}

// PrintPlayers prints players as a table
func PrintPlayers(players []contracts.Player) {
	PrintTableHeader(playerColumns, playerWidths)
	for _, p := range players {
		PrintTableRow([]string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Position,
			p.Team,
			strconv.Itoa(p.Value),
			strconv.Itoa(p.RedraftValue),
			strconv.Itoa(p.OverallRank),
		}, playerWidths)
	}
}

// describeSettings renders league settings for headers
func describeSettings(s contracts.LeagueSettings) string {
	format := "Redraft"
	if s.IsDynasty {
		format = "Dynasty"
	}
	qbs := "1QB"
	if s.NumQBs == 2 {
		qbs = "Superflex"
	}
	return fmt.Sprintf("%s · %s · %d teams · %s PPR", format, qbs, s.NumTeams, strconv.FormatFloat(s.PPR, 'f', -1, 64))
}
