package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/schemix/circuitsim/pkg/analysis"
	"github.com/schemix/circuitsim/pkg/schematic"
	"github.com/schemix/circuitsim/pkg/util"
)

var (
	dcTolerance float64
	dcMaxIter   int
)

var dcCmd = &cobra.Command{
	Use:   "dc <schematic.json>",
	Short: "Solve the DC operating point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := schematic.Load(args[0])
		if err != nil {
			return err
		}

		op := analysis.NewOP()
		if dcTolerance > 0 {
			op.Tolerance = dcTolerance
		}
		if dcMaxIter > 0 {
			op.MaxIter = dcMaxIter
		}
		if err := op.Setup(snap); err != nil {
			return err
		}
		if err := op.Execute(); err != nil {
			return err
		}

		fmt.Printf("DC operating point (%d iteration(s)):\n", op.Iterations())
		printTerminalVoltages(snap, op)
		return nil
	},
}

func printTerminalVoltages(snap *schematic.Snapshot, op *analysis.OperatingPoint) {
	type row struct {
		label string
		volts float64
	}
	var rows []row
	for ref, v := range op.TerminalVoltages() {
		comp := snap.Components[ref.Component]
		rows = append(rows, row{
			label: fmt.Sprintf("%s.%d", comp.ID, ref.Slot),
			volts: v,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].label < rows[j].label })
	for _, r := range rows {
		fmt.Printf("  %-12s %s\n", r.label, util.FormatValueFactor(r.volts, "V"))
	}
}

func init() {
	dcCmd.Flags().Float64Var(&dcTolerance, "tol", 0, "Newton-Raphson tolerance (default 1e-6)")
	dcCmd.Flags().IntVar(&dcMaxIter, "max-iter", 0, "Newton-Raphson iteration budget (default 100)")
	rootCmd.AddCommand(dcCmd)
}
