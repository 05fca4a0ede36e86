package cli

import (
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/hydrochem/pkg/io"
)

// defaultTemplateFile is where "hydrochem template" writes by default.
const defaultTemplateFile = "hydrochem-template.xlsx"

// templateCommand creates the template command.
func (c *CLI) templateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an example sample workbook",
		Long: `Write an example workbook with every recognized column and a few
complete samples. Fill it with your own data and pass it to render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loggerFromContext(cmd.Context()).Debug("writing template", "path", output)
			if err := pkgio.ExportXLSX(pkgio.Template(), output); err != nil {
				return err
			}
			printSuccess("Template written")
			printFile(output)
			printNextStep("Render it", "hydrochem render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultTemplateFile, "output file")
	return cmd
}
