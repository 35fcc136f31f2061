package cmd

import (
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/exposim/exposim/study"
)

var (
	resolveConfig  string // Campaign configuration document
	resolveSummary bool   // Print the typed views instead of the document
	resolveCompact bool   // Canonical single-line output
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve configuration inheritance and print the result",
	Run: func(cmd *cobra.Command, args []string) {
		s := initRun()
		tree := mustResolve(s, resolveConfig)

		if resolveSummary {
			printSummary(tree)
			return
		}
		if resolveCompact {
			opts := ojg.Options{Sort: true}
			fmt.Println(oj.JSON(tree.Raw, &opts))
			return
		}
		fmt.Println(oj.JSON(tree.Raw, 2))
	},
}

func printSummary(tree *study.Tree) {
	sp := tree.SimulationParameters()
	sv := tree.SolverSettings()
	fmt.Printf("study_type:  %s\n", tree.StringAt("study_type", "(unset)"))
	fmt.Printf("excitation:  %s, %g periods, terminate at %g dB\n",
		sp.ExcitationType, sp.SimTimePeriods, sp.TerminationLevelDB)
	fmt.Printf("solver:      %s (manual isolve: %v, export materials: %v)\n",
		sv.Kind, sv.ManualIsolve, sv.ExportMaterials)
	campaign, err := tree.Campaign()
	if err != nil {
		fmt.Printf("campaign:    %v\n", err)
		return
	}
	fmt.Printf("campaign:    %d phantoms x %d frequencies\n",
		len(campaign.Phantoms), len(campaign.FrequenciesMHz))
	if ids, err := study.EnumerateIdentities(tree); err == nil {
		fmt.Printf("units:       %d\n", len(ids))
	}
}

func init() {
	resolveCmd.Flags().StringVar(&resolveConfig, "config", "", "Configuration document to resolve")
	resolveCmd.Flags().BoolVar(&resolveSummary, "summary", false, "Print the typed parameter views instead of the document")
	resolveCmd.Flags().BoolVar(&resolveCompact, "compact", false, "Print the canonical single-line form")
	rootCmd.AddCommand(resolveCmd)
}
