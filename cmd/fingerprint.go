package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exposim/exposim/study"
)

var (
	fpConfig       string // Campaign configuration document
	fpAll          bool   // Fingerprint every enumerated unit
	fpAllowMissing bool   // Omit identity keys absent from the configuration
	fpShowSnapshot bool   // Print the snapshot alongside the fingerprint

	// Unit identity flags
	fpPhantom      string
	fpFrequency    int
	fpScenario     string
	fpPosition     string
	fpOrientation  string
	fpDirection    string
	fpPolarization string
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Derive cache fingerprints for simulation units",
	Run: func(cmd *cobra.Command, args []string) {
		s := initRun()
		tree := mustResolve(s, fpConfig)
		ex := study.Extractor{}
		if fpAllowMissing {
			ex.MissingKeys = study.MissingKeyOmit
		}

		if fpAll {
			ids, err := study.EnumerateIdentities(tree)
			if err != nil {
				logrus.Fatalf("Enumerate campaign: %v", err)
			}
			for _, id := range ids {
				snap, err := ex.Extract(tree, id)
				if err != nil {
					logrus.Fatalf("Extract %s: %v", id, err)
				}
				fmt.Printf("%s  %s\n", snap.Fingerprint(), id)
			}
			return
		}

		id, err := unitIdentity()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		snap, err := ex.Extract(tree, id)
		if err != nil {
			logrus.Fatalf("Extract %s: %v", id, err)
		}
		if fpShowSnapshot {
			fmt.Println(oj.JSON(snap.Raw, 2))
		}
		fmt.Println(snap.Fingerprint())
	},
}

// unitIdentity assembles the identity named by the unit flags.
func unitIdentity() (study.Identity, error) {
	id := study.Identity{Phantom: fpPhantom, FrequencyMHz: fpFrequency}
	nearGiven := fpScenario != "" || fpPosition != "" || fpOrientation != ""
	farGiven := fpDirection != "" || fpPolarization != ""
	switch {
	case nearGiven && farGiven:
		return study.Identity{}, fmt.Errorf("near-field and far-field unit flags are mutually exclusive")
	case nearGiven:
		id.Study = study.NearFieldUnit{Scenario: fpScenario, Position: fpPosition, Orientation: fpOrientation}
	case farGiven:
		id.Study = study.FarFieldUnit{Direction: fpDirection, Polarization: fpPolarization}
	default:
		return study.Identity{}, fmt.Errorf("no unit flags given; use --scenario/--position/--orientation or --direction/--polarization, or --all")
	}
	return id, id.Validate()
}

func init() {
	fingerprintCmd.Flags().StringVar(&fpConfig, "config", "", "Configuration document to resolve")
	fingerprintCmd.Flags().BoolVar(&fpAll, "all", false, "Fingerprint every unit the campaign enumerates")
	fingerprintCmd.Flags().BoolVar(&fpAllowMissing, "allow-missing", false, "Omit identity keys absent from the configuration instead of failing")
	fingerprintCmd.Flags().BoolVar(&fpShowSnapshot, "snapshot", false, "Print the unit snapshot before the fingerprint")

	fingerprintCmd.Flags().StringVar(&fpPhantom, "phantom", "", "Phantom name")
	fingerprintCmd.Flags().IntVar(&fpFrequency, "frequency", 0, "Frequency in MHz")
	fingerprintCmd.Flags().StringVar(&fpScenario, "scenario", "", "Placement scenario (near field)")
	fingerprintCmd.Flags().StringVar(&fpPosition, "position", "", "Position name (near field)")
	fingerprintCmd.Flags().StringVar(&fpOrientation, "orientation", "", "Orientation name (near field)")
	fingerprintCmd.Flags().StringVar(&fpDirection, "direction", "", "Incident direction (far field)")
	fingerprintCmd.Flags().StringVar(&fpPolarization, "polarization", "", "Polarization (far field)")

	rootCmd.AddCommand(fingerprintCmd)
}
