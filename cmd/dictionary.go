package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skillscreen/internal/dictionary"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Inspect skill dictionaries",
}

var dictionaryValidateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Load a dictionary and print a summary (default is the configured one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("dictionary")
		if len(args) == 1 {
			path = args[0]
		}

		d, err := dictionary.Load(path)
		if err != nil {
			return err
		}

		source := path
		if source == "" {
			source = "bundled"
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "source:\t%s\n", source)
		fmt.Fprintf(w, "version:\t%s\n", d.Version())
		fmt.Fprintf(w, "skills:\t%d\n", len(d.Skills()))
		fmt.Fprintf(w, "synonym groups:\t%d\n", len(d.SynonymGroups()))
		fmt.Fprintf(w, "roles:\t%d\n", len(d.Roles()))
		fmt.Fprintf(w, "jd fields:\t%d\n", len(d.Fields()))
		return w.Flush()
	},
}

func init() {
	dictionaryCmd.AddCommand(dictionaryValidateCmd)
	rootCmd.AddCommand(dictionaryCmd)
}
