package gridbox

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/gridbox/pkg/archive"
	"github.com/arthur-debert/gridbox/pkg/config"
	"github.com/arthur-debert/gridbox/pkg/fieldstats"
	"github.com/arthur-debert/gridbox/pkg/ui/styles"
)

// fieldReport describes one field in the inspect output
type fieldReport struct {
	Name  string              `yaml:"name"`
	Bytes int                 `yaml:"bytes"`
	Stats *fieldstats.Summary `yaml:"stats,omitempty"`
}

// inspectReport is the full inspect output
type inspectReport struct {
	Archive   string                 `yaml:"archive"`
	Directory string                 `yaml:"directory"`
	MetaInfo  map[string]interface{} `yaml:"meta_info,omitempty"`
	Fields    []fieldReport          `yaml:"fields"`
}

func newInspectCmd() *cobra.Command {
	var (
		archiveName string
		format      string
		withStats   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <directory>",
		Short: MsgInspectShort,
		Long:  MsgInspectLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if archiveName == "" {
				archiveName = config.Get().Serialization.DefaultArchive
			}

			report, err := buildInspectReport(archiveName, args[0], withStats)
			if err != nil {
				return err
			}

			switch format {
			case "yaml":
				out, err := yaml.Marshal(report)
				if err != nil {
					return err
				}
				fmt.Print(string(out))
			case "text":
				printInspectReport(report)
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&archiveName, "archive", "a", "", MsgFlagArchive)
	cmd.Flags().StringVarP(&format, "format", "f", "text", MsgFlagFormat)
	cmd.Flags().BoolVar(&withStats, "stats", false, "Compute summary statistics for float64 fields")

	return cmd
}

func buildInspectReport(archiveName, dir string, withStats bool) (*inspectReport, error) {
	a, err := archive.Open(archiveName, dir, archive.ModeRead)
	if err != nil {
		return nil, err
	}
	defer func() { _ = a.Close() }()

	fields, err := a.Fields()
	if err != nil {
		return nil, err
	}

	report := &inspectReport{
		Archive:   archiveName,
		Directory: dir,
		Fields:    make([]fieldReport, 0, len(fields)),
	}
	if meta := a.MetaInfo(); meta != nil && !meta.Empty() {
		report.MetaInfo = meta.AsMap()
	}

	for _, field := range fields {
		data, err := a.Read(field)
		if err != nil {
			return nil, err
		}

		fr := fieldReport{Name: field, Bytes: len(data)}

		if withStats {
			// Only payloads that decode as float64 sequences get stats.
			if values, err := fieldstats.DecodeFloat64s(data); err == nil && len(values) > 0 {
				if summary, err := fieldstats.Compute(values); err == nil {
					fr.Stats = &summary
				}
			}
		}

		report.Fields = append(report.Fields, fr)
	}

	return report, nil
}

func printInspectReport(report *inspectReport) {
	header := fmt.Sprintf("%s archive at %s", report.Archive, report.Directory)
	fmt.Println(styles.GetStyle("Header").Render(header))

	if len(report.MetaInfo) > 0 {
		keys := make([]string, 0, len(report.MetaInfo))
		for key := range report.MetaInfo {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s: %v\n",
				styles.GetStyle("Dim").Render(key), report.MetaInfo[key])
		}
	}

	if len(report.Fields) == 0 {
		fmt.Println(styles.GetStyle("Dim").Render("  no fields"))
		return
	}

	for _, fr := range report.Fields {
		fmt.Printf("  %s %s\n",
			styles.GetStyle("Archive").Render(fr.Name),
			styles.GetStyle("Dim").Render(fmt.Sprintf("(%d bytes)", fr.Bytes)))
		if fr.Stats != nil {
			fmt.Printf("    min=%g max=%g mean=%g stddev=%g n=%d\n",
				fr.Stats.Min, fr.Stats.Max, fr.Stats.Mean, fr.Stats.StdDev, fr.Stats.Count)
		}
	}
}
