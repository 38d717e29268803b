package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/build"
	"github.com/ariel-frischer/contentlint/internal/cli/shared"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for contentlint",
	Example: `  # Show version info
  contentlint version

  # Plain output (for scripts)
  contentlint version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout(), shared.GetTerminalWidth())
		}
	},
}

func init() {
	versionCmd.GroupID = shared.GroupInspection
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "contentlint %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints the banner and a boxed version table centered in termWidth.
func printPrettyVersion(out io.Writer, termWidth int) {
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	shared.PrintBanner(out)

	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4 // borders and padding

	boxPadding := (termWidth - boxWidth) / 2
	if boxPadding < 0 {
		boxPadding = 0
	}
	pad := strings.Repeat(" ", boxPadding)
	blank := pad + shared.BoxVertical + strings.Repeat(" ", boxWidth-2) + shared.BoxVertical

	fmt.Fprintln(out, pad+shared.BoxTopLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxTopRight)
	fmt.Fprintln(out, blank)
	for _, item := range info {
		label := yellow(fmt.Sprintf("%12s", item.label))
		line := fmt.Sprintf("  %s    %s", label, white(item.value))
		// label width + spacing + value + margin
		if lineLen := 12 + 4 + len(item.value) + 2; lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(out, pad+shared.BoxVertical+" "+line+" "+shared.BoxVertical)
	}
	fmt.Fprintln(out, blank)
	fmt.Fprintln(out, pad+shared.BoxBottomLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxBottomRight)
	if build.IsDevBuild() {
		fmt.Fprintln(out, shared.NewColors().Dim(shared.CenterText("development build", termWidth)))
	}
	fmt.Fprintln(out)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
