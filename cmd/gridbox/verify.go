package gridbox

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/gridbox/pkg/archive"
	"github.com/arthur-debert/gridbox/pkg/config"
	"github.com/arthur-debert/gridbox/pkg/ui/styles"
)

func newVerifyCmd() *cobra.Command {
	var archiveName string

	cmd := &cobra.Command{
		Use:   "verify <directory>",
		Short: MsgVerifyShort,
		Long:  MsgVerifyLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if archiveName == "" {
				archiveName = config.Get().Serialization.DefaultArchive
			}

			a, err := archive.Open(archiveName, args[0], archive.ModeRead)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			fields, err := a.Fields()
			if err != nil {
				return err
			}

			var failed int
			for _, field := range fields {
				// Read verifies size and checksum against the table.
				if _, err := a.Read(field); err != nil {
					failed++
					fmt.Printf("  %s %s: %v\n",
						styles.GetStyle("Error").Render("FAIL"), field, err)
					continue
				}
				fmt.Printf("  %s %s\n", styles.GetStyle("Success").Render("OK"), field)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d fields failed verification", failed, len(fields))
			}

			fmt.Println(styles.GetStyle("Success").Render(
				fmt.Sprintf("%d fields verified", len(fields))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&archiveName, "archive", "a", "", MsgFlagArchive)

	return cmd
}
