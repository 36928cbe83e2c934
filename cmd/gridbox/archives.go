package gridbox

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/gridbox/pkg/boundary"
	"github.com/arthur-debert/gridbox/pkg/config"
	"github.com/arthur-debert/gridbox/pkg/ui/styles"
)

func newArchivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archives",
		Short: MsgArchivesShort,
		Long:  MsgArchivesLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Go through the boundary marshaller so the CLI exercises
			// the same enumeration path foreign frontends use.
			arr, err := boundary.RegisteredArchiveNames()
			if err != nil {
				return err
			}
			defer arr.Release()

			if arr.Len() == 0 {
				fmt.Println(styles.GetStyle("Dim").Render("no archive backends registered"))
				return nil
			}

			defaultArchive := config.Get().Serialization.DefaultArchive

			fmt.Println(styles.GetStyle("Header").Render("Registered archives:"))
			for _, name := range arr.Strings() {
				line := "  " + styles.GetStyle("Archive").Render(name)
				if name == defaultArchive {
					line += styles.GetStyle("Dim").Render(" (default)")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
