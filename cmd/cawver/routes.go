package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cawver-web/internal/content"
	"cawver-web/internal/handlers"
	"cawver-web/pkg/navigation"
	"cawver-web/pkg/validator"
)

func newRoutesCommand() *cobra.Command {
	var (
		currentPath string
		menuOpen    bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the page routes and the navigation state for a path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			if currentPath != "" && !validator.IsRoutePath(currentPath) {
				return fmt.Errorf("--path %q is not a site-relative route", currentPath)
			}

			store, err := content.Open(cfg.ContentFile, nil)
			if err != nil {
				return err
			}

			return printRoutes(cmd.OutOrStdout(), store.Site(), currentPath, menuOpen)
		},
	}

	cmd.Flags().StringVar(&currentPath, "path", "", "resolve the navigation bar against this path")
	cmd.Flags().BoolVar(&menuOpen, "menu-open", false, "resolve with the menu toggled open")
	return cmd
}

func printRoutes(out io.Writer, site *content.Site, currentPath string, menuOpen bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "PATH\tPAGE\tTEMPLATE")
	for _, page := range handlers.Pages() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", page.Path, page.Name, page.Template)
	}

	if currentPath != "" {
		bar := navigation.NewBar(site.NavigationItems())
		if menuOpen {
			bar.Toggle()
		}
		view := bar.View(currentPath)

		fmt.Fprintf(w, "\nNAV\tLINK\tACTIVE\n")
		for _, item := range bar.Items() {
			fmt.Fprintf(w, "%s\t%s\t%t\n", item.Path, item.Label, navigation.IsActive(currentPath, item.Path))
		}
		fmt.Fprintf(w, "\nmenu\t%s\t\n", bar.Menu())
		fmt.Fprintf(w, "toggle\t%s\t\n", view.ToggleHref)
	}

	return w.Flush()
}
