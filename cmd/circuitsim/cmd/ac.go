package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemix/circuitsim/pkg/analysis"
	"github.com/schemix/circuitsim/pkg/plot"
	"github.com/schemix/circuitsim/pkg/schematic"
	"github.com/schemix/circuitsim/pkg/util"
)

var (
	acStart  float64
	acStop   float64
	acPoints int
	acProbe  string
	acPlot   string
)

var acCmd = &cobra.Command{
	Use:   "ac <schematic.json>",
	Short: "Run a log-spaced AC frequency sweep",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := schematic.Load(args[0])
		if err != nil {
			return err
		}

		ac := analysis.NewAC(acStart, acStop, acPoints)
		if err := ac.Setup(snap); err != nil {
			return err
		}
		if err := ac.Execute(); err != nil {
			return err
		}

		probeID := acProbe
		if probeID == "" {
			probes := ac.Probes()
			if len(probes) == 0 {
				return fmt.Errorf("add a VoltageProbe to the schematic or pass --probe")
			}
			probeID = probes[0].ID
		}
		mags, err := ac.ProbeMagnitude(probeID)
		if err != nil {
			return err
		}

		freqs := ac.Frequencies()
		fmt.Printf("AC sweep, %d points, probe %s:\n", len(freqs), probeID)
		for i, f := range freqs {
			fmt.Printf("  %s  |V|=%s\n", util.FormatFrequency(f), util.FormatMagnitude(mags[i]))
		}

		if acPlot != "" {
			p, err := plot.Bode(freqs, mags, fmt.Sprintf("AC sweep %s", probeID))
			if err != nil {
				return err
			}
			if err := plot.Save(p, acPlot); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", acPlot)
		}
		return nil
	},
}

func init() {
	acCmd.Flags().Float64Var(&acStart, "start", 1, "start frequency (Hz)")
	acCmd.Flags().Float64Var(&acStop, "stop", 1e6, "stop frequency (Hz)")
	acCmd.Flags().IntVar(&acPoints, "points", 100, "number of frequency points")
	acCmd.Flags().StringVar(&acProbe, "probe", "", "voltage probe id (default: first probe)")
	acCmd.Flags().StringVar(&acPlot, "plot", "", "write a Bode magnitude PNG to this path")
	rootCmd.AddCommand(acCmd)
}
