package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// KindListModel - Interactive diagram selection
// =============================================================================

// KindChoice is one diagram kind with the rows it would keep.
type KindChoice struct {
	Kind     diagram.Kind
	Kept     int
	Total    int
	Required []string
}

// plottable reports whether the kind has at least one row to draw.
func (c KindChoice) plottable() bool { return c.Kept > 0 }

// KindListModel is the bubbletea model for choosing a diagram kind.
type KindListModel struct {
	Choices  []KindChoice
	Cursor   int
	Selected *KindChoice
}

// NewKindListModel creates a kind list from the selections of one upload.
func NewKindListModel(sels []*normalize.Selection) KindListModel {
	choices := make([]KindChoice, len(sels))
	for i, s := range sels {
		choices[i] = KindChoice{Kind: s.Kind, Kept: s.Kept, Total: s.Total, Required: s.Required}
	}
	return KindListModel{Choices: choices}
}

func (m KindListModel) Init() tea.Cmd {
	return nil
}

func (m KindListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			choice := m.Choices[m.Cursor]
			if !choice.plottable() {
				return m, nil
			}
			m.Selected = &choice
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m KindListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Diagram"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Choices))
	for i, c := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, c.Kind.Title(), strconv.Itoa(c.Kept) + "/" + strconv.Itoa(c.Total), strings.Join(c.Required, " ")}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Diagram", "Rows", "Needs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			c := m.Choices[row]
			switch {
			case !c.plottable():
				return listDimStyle
			case col == 3:
				return listDimStyle
			case row == m.Cursor:
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if c := m.Choices[m.Cursor]; !c.plottable() {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  %s has no rows with every value it needs", c.Kind.Title())))
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// pickCommand creates the pick command.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "pick [file.xlsx]",
		Short: "Choose a diagram interactively and render it",
		Long: `Read a workbook, list every diagram kind with how many rows it can
plot, and render the one you choose.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			c.renderDefaults(&opts)

			kind, err := c.pickKind(cmd, args[0], opts)
			if err != nil || kind == "" {
				return err
			}
			return c.runRender(cmd.Context(), args[0], []diagram.Kind{kind}, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path")
	cmd.Flags().StringVarP(&opts.Unit, "unit", "u", "", "unit of the input concentrations")
	cmd.Flags().StringVar(&opts.Title, "title", "", "diagram title")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "label color palette")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "sheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// pickKind loads the workbook and lets the user choose a kind. It returns ""
// when nothing was chosen.
func (c *CLI) pickKind(cmd *cobra.Command, input string, opts pipeline.Options) (diagram.Kind, error) {
	ctx := cmd.Context()
	data, err := readWorkbook(input)
	if err != nil {
		return "", err
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return "", err
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	up, err := runner.Load(ctx, data, opts)
	if err != nil {
		return "", err
	}

	sels := make([]*normalize.Selection, len(diagram.Kinds))
	for i, k := range diagram.Kinds {
		if sels[i], err = up.Prepared.Report(k); err != nil {
			return "", err
		}
	}

	p := tea.NewProgram(NewKindListModel(sels), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	fm, ok := finalModel.(KindListModel)
	if !ok || fm.Selected == nil {
		printDetail("No diagram selected")
		return "", nil
	}
	return fm.Selected.Kind, nil
}
