package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/sheet"
	"github.com/matt-g-everett/animseq/util"
)

var planCmd = &cobra.Command{
	Use:   "plan FILE",
	Short: "Print the timeline and styles of a sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reverse, _ := cmd.Flags().GetBool("reverse")
		samples, _ := cmd.Flags().GetInt("samples")

		f, err := sequence.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := writePlan(cmd.OutOrStdout(), f, !reverse); err != nil {
			return err
		}
		if samples > 0 {
			return writeCurves(cmd.OutOrStdout(), f, samples)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolP("reverse", "r", false, "Lay the sequence out in reverse")
	planCmd.Flags().IntP("samples", "s", 0, "Also print each step's easing curve sampled this many times")
}

// writePlan prints one row per step in playback order, the total span and
// the keyframe rules the sequence needs.
func writePlan(out io.Writer, f *sequence.File, play bool) error {
	registry := sheet.NewRegistry()
	seq := sequence.NewSequencer(registry, f.Steps...)
	seq.Mount()
	defer seq.Unmount()

	styles := seq.Play(play)
	entries, span := sequence.Plan(f.Steps, play)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tID\tDELAY\tSPAN\tSTYLE")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%ss\t%ss\t%s\n",
			e.Position,
			e.ID,
			sequence.FormatSeconds(e.Timing.Delay),
			sequence.FormatSeconds(e.Timing.Span),
			styles[e.Position],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nspan: %ss\n", sequence.FormatSeconds(span))

	if sh := registry.Sheet(); sh != nil && sh.Len() > 0 {
		fmt.Fprintf(out, "\n%s\n", sh)
	}
	return nil
}

// writeCurves prints the eased progress of every step at evenly spaced
// points of its duration.
func writeCurves(out io.Writer, f *sequence.File, samples int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tEASING\tCURVE")
	for i, step := range f.Steps {
		easing := util.LookupEasing(step.Easing)
		lut := util.GenerateLut(easing, samples)
		points := make([]string, len(lut))
		for j, v := range lut {
			points[j] = strconv.FormatFloat(v, 'f', 3, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", step.Identity(i), easing.Name, strings.Join(points, " "))
	}
	return w.Flush()
}
