package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cmmoran/haxedts/pkg/action/snapshot"
)

func NewSnapshotCommand() *cobra.Command {
	var manifestPath string

	// snapshotCmd represents the haxedts snapshot command
	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "manage declaration snapshots",
		Long:  "Record, list and diff generated declaration snapshots",
	}
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "haxedts.manifest.yaml", "snapshot manifest file")

	var name, version string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "translate and record a snapshot",
		PreRunE: func(c *cobra.Command, args []string) error {
			return bindOptionFlags(c.Flags())
		},
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c.Flags())
			if err != nil {
				return err
			}
			file, err := snapshot.Generate(opts, manifestPath, name, version)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.OutOrStdout(), "recorded %s %s at %s\n", name, version, file)
			return nil
		},
	}
	addOptionFlags(createCmd.Flags())
	createCmd.Flags().StringVarP(&name, "name", "n", "declarations", "snapshot name")
	createCmd.Flags().StringVarP(&version, "version", "v", "", "snapshot version, ex: v1.0.0")
	_ = createCmd.MarkFlagRequired("version")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tVERSION\tCLASSES\tFILE")
			for _, s := range m.Snapshots {
				marker := ""
				if m.IsCurrent(s) {
					marker = " *"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s%s\t%d\t%s\n", s.Name, s.Version, marker, s.Classes, s.File)
			}
			return w.Flush()
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			if diff == "" {
				_, _ = fmt.Fprintln(c.OutOrStdout(), "no changes")
				return nil
			}
			_, _ = fmt.Fprint(c.OutOrStdout(), diff)
			return nil
		},
	}

	snapshotCmd.AddCommand(createCmd, listCmd, diffCmd)
	return snapshotCmd
}
