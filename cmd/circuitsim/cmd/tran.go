package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/schemix/circuitsim/pkg/analysis"
	"github.com/schemix/circuitsim/pkg/plot"
	"github.com/schemix/circuitsim/pkg/schematic"
	"github.com/schemix/circuitsim/pkg/util"
)

var (
	tranStop  float64
	tranStep  float64
	tranEvery int
	tranPlot  string
)

var tranCmd = &cobra.Command{
	Use:   "tran <schematic.json>",
	Short: "Run a fixed-step transient analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := schematic.Load(args[0])
		if err != nil {
			return err
		}

		tr := analysis.NewTransient(tranStop, tranStep)
		if err := tr.Setup(snap); err != nil {
			return err
		}
		if err := tr.Execute(); err != nil {
			return err
		}

		traces := tr.ProbeTraces()
		if len(traces) == 0 {
			return fmt.Errorf("add VoltageProbes to the schematic to see transient output")
		}
		names := make([]string, 0, len(traces))
		for name := range traces {
			names = append(names, name)
		}
		sort.Strings(names)

		times := tr.Times()
		every := tranEvery
		if every < 1 {
			every = 1
		}
		fmt.Printf("Transient run, %d steps of %s:\n", len(times), util.FormatSeconds(tranStep))
		for i := 0; i < len(times); i += every {
			fmt.Printf("  t=%-12s", util.FormatSeconds(times[i]))
			for _, name := range names {
				fmt.Printf(" %s=%s", name, util.FormatValueFactor(traces[name][i], "V"))
			}
			fmt.Println()
		}

		if tranPlot != "" {
			p, err := plot.Transient(times, traces, "Transient analysis")
			if err != nil {
				return err
			}
			if err := plot.Save(p, tranPlot); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", tranPlot)
		}
		return nil
	},
}

func init() {
	tranCmd.Flags().Float64Var(&tranStop, "tstop", 1e-3, "stop time (s)")
	tranCmd.Flags().Float64Var(&tranStep, "tstep", 1e-6, "time step (s)")
	tranCmd.Flags().IntVar(&tranEvery, "every", 1, "print every Nth step")
	tranCmd.Flags().StringVar(&tranPlot, "plot", "", "write a trace PNG to this path")
	rootCmd.AddCommand(tranCmd)
}
