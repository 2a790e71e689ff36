// Command vexjson validates, formats and inspects JSON documents using the
// vexjson decoder.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/vexjson/vexjson"
)

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle = lipgloss.NewStyle().Faint(true)

	styled = isatty.IsTerminal(os.Stdout.Fd())
)

func paint(st lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return st.Render(s)
}

// readInput stages the named file (or stdin for "-" / no name) into an
// aligned buffer.
func readInput(name string) ([]byte, error) {
	var data []byte
	var err error
	if name == "" || name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	buf := vexjson.NewAlignedBuffer(len(data))
	return buf.Load(data), nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Parse documents and report the first error with its position",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			failed := 0
			for _, name := range args {
				data, err := readInput(name)
				if err != nil {
					return err
				}
				if _, perr := vexjson.Parse(data); perr != nil {
					failed++
					fmt.Printf("%s %s: %v\n", paint(errStyle, "FAIL"), name, perr)
					continue
				}
				fmt.Printf("%s %s\n", paint(okStyle, "OK"), name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d document(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newFmtCmd() *cobra.Command {
	var compact bool
	var indent string
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a document (validated first)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(name)
			if err != nil {
				return err
			}
			if _, perr := vexjson.Parse(data); perr != nil {
				return perr
			}
			var out []byte
			if compact {
				out = pretty.Ugly(data)
			} else {
				out = pretty.PrettyOptions(data, &pretty.Options{Indent: indent})
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "emit minified output")
	cmd.Flags().StringVar(&indent, "indent", "  ", "indent string for pretty output")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print a structural profile of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(name)
			if err != nil {
				return err
			}
			prof, err := vexjson.Profile(data)
			if err != nil {
				return err
			}
			fmt.Printf("objects:   %d\n", prof.Objects)
			fmt.Printf("arrays:    %d\n", prof.Arrays)
			fmt.Printf("strings:   %d\n", prof.Strings)
			fmt.Printf("commas:    %d\n", prof.Commas)
			fmt.Printf("colons:    %d\n", prof.Colons)
			fmt.Printf("max depth: %d\n", prof.MaxDepth)
			if !prof.Balanced {
				fmt.Println(paint(errStyle, "unbalanced braces/brackets"))
			}
			return nil
		},
	}
}

func newCapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "caps",
		Short: "Show the scanning kernel tier active on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := vexjson.CapabilityInfo()
			fmt.Printf("tier:  %s\n", info.Tier)
			fmt.Printf("label: %s\n", paint(dimStyle, info.Label))
			fmt.Printf("lanes: %d\n", info.LaneWidth)
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "vexjson",
		Short:         "Capability-dispatched JSON decoder tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd(), newFmtCmd(), newStatsCmd(), newCapsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", paint(errStyle, "error:"), err)
		os.Exit(1)
	}
}
