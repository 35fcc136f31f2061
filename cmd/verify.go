package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exposim/exposim/study"
	"github.com/exposim/exposim/study/results"
)

var (
	verifyConfig       string // Campaign configuration document
	verifyResults      string // Result store override; empty defers to settings
	verifyCatalog      string // Optional phantom catalog for preflight checks
	verifyAllowMissing bool   // Omit identity keys absent from the configuration
	verifyShowUnits    bool   // Print one line per unit
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report which campaign units are cached and which need computing",
	Run: func(cmd *cobra.Command, args []string) {
		s := initRun()
		tree := mustResolve(s, verifyConfig)

		if verifyCatalog != "" {
			preflightPhantoms(tree, verifyCatalog)
		}

		ids, err := study.EnumerateIdentities(tree)
		if err != nil {
			logrus.Fatalf("Enumerate campaign: %v", err)
		}
		ex := study.Extractor{}
		if verifyAllowMissing {
			ex.MissingKeys = study.MissingKeyOmit
		}
		resultsDir := verifyResults
		if resultsDir == "" {
			resultsDir = s.ResultsDir
		}
		plan, err := results.BuildPlan(results.Store{BaseDir: resultsDir}, tree, ex, ids)
		if err != nil {
			logrus.Fatalf("Build plan: %v", err)
		}

		fmt.Printf("%d units: %d cached, %d to compute\n", len(ids), len(plan.Cached), len(plan.Pending))
		if verifyShowUnits {
			for _, u := range plan.Cached {
				fmt.Printf("cached   %s  %s\n", u.Fingerprint.Short(), u.Identity)
			}
			for _, u := range plan.Pending {
				fmt.Printf("pending  %s  %s\n", u.Fingerprint.Short(), u.Identity)
			}
		}
	},
}

// preflightPhantoms warns for campaign phantoms the catalog does not know.
// Warnings only: the solver may still know a phantom the catalog file lags
// behind on.
func preflightPhantoms(tree *study.Tree, catalogPath string) {
	catalog, err := study.LoadPhantomCatalog(catalogPath)
	if err != nil {
		logrus.Fatalf("Load phantom catalog: %v", err)
	}
	campaign, err := tree.Campaign()
	if err != nil {
		logrus.Fatalf("Read campaign: %v", err)
	}
	for _, name := range study.MissingPhantoms(catalog, campaign.Phantoms) {
		logrus.Warnf("campaign phantom %q has no catalog entry", name)
	}
}

func init() {
	verifyCmd.Flags().StringVar(&verifyConfig, "config", "", "Configuration document to resolve")
	verifyCmd.Flags().StringVar(&verifyResults, "results", "", "Result store directory (defaults to settings results_dir)")
	verifyCmd.Flags().StringVar(&verifyCatalog, "phantom-catalog", "", "Phantom catalog to preflight the campaign against")
	verifyCmd.Flags().BoolVar(&verifyAllowMissing, "allow-missing", false, "Omit identity keys absent from the configuration instead of failing")
	verifyCmd.Flags().BoolVar(&verifyShowUnits, "units", false, "Print one line per unit")
	rootCmd.AddCommand(verifyCmd)
}
