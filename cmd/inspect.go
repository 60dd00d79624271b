package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/modals/internal/logging"
	"github.com/marcus/modals/internal/output"
	"github.com/marcus/modals/internal/page"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the element tree of the demo page",
	Long: `Builds the demo page off-screen, optionally opens dialogs on it, and
prints the element tree with roles, aria attributes and the focused element.

Scenarios for --open:
  none     the bare page
  contact  the contact form
  about    the about dialog
  nested   the contact form stacked over the about dialog
  invalid  the contact form after an empty submit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		scenario, _ := cmd.Flags().GetString("open")
		depth, _ := cmd.Flags().GetInt("depth")
		showText, _ := cmd.Flags().GetBool("text")
		showHidden, _ := cmd.Flags().GetBool("hidden")
		frame, _ := cmd.Flags().GetBool("frame")

		m := page.New(page.Options{
			ReducedMotion: true,
			DialogWidth:   cfg.UI.DialogWidth,
			Logger:        logging.Discard(),
		})
		defer m.Close()

		if err := openScenario(m, scenario); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if frame {
			m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
			fmt.Fprintln(out, m.View())
			return nil
		}
		fmt.Fprintln(out, "body")
		fmt.Fprintln(out, m.Tree(output.TreeRenderOptions{
			MaxDepth:   depth,
			ShowText:   showText,
			ShowHidden: showHidden,
		}))
		return nil
	},
}

func openScenario(m *page.Model, scenario string) error {
	doc := m.Document()
	switch scenario {
	case "", "none":
	case "contact":
		m.OpenContact()
	case "about":
		m.OpenAbout()
	case "nested":
		m.OpenAbout()
		m.OpenContact()
	case "invalid":
		m.OpenContact()
		cur, _ := m.Store().Current()
		doc.Submit(doc.GetElementByID(cur.ID + "-form"))
	default:
		return fmt.Errorf("unknown scenario %q", scenario)
	}
	return nil
}

func init() {
	addDisplayFlags(inspectCmd.Flags())
	inspectCmd.Flags().String("open", "none", "dialogs to open first: none, contact, about, nested, invalid")
	inspectCmd.Flags().Int("depth", 0, "maximum tree depth (0 = unlimited)")
	inspectCmd.Flags().Bool("text", false, "show element text")
	inspectCmd.Flags().Bool("hidden", false, "include collapsed elements")
	inspectCmd.Flags().Bool("frame", false, "print the painted screen instead of the tree")
	rootCmd.AddCommand(inspectCmd)
}
