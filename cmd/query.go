package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var queryConfig string // Campaign configuration document

var queryCmd = &cobra.Command{
	Use:   "query <jsonpath>",
	Short: "Evaluate a JSONPath expression against the resolved configuration",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := initRun()
		tree := mustResolve(s, queryConfig)

		expr, err := jp.ParseString(args[0])
		if err != nil {
			logrus.Fatalf("Invalid jsonpath %q: %v", args[0], err)
		}
		for _, match := range expr.Get(tree.Raw) {
			fmt.Println(oj.JSON(match, 2))
		}
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryConfig, "config", "", "Configuration document to resolve")
	rootCmd.AddCommand(queryCmd)
}
