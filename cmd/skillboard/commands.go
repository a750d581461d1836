package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/skillboard/internal/backup"
	"github.com/jask/skillboard/internal/database/repository"
)

func newCompetenciesCmd(setup setupFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "competencies",
		Aliases: []string{"c"},
		Short:   "List, add or remove competencies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every competency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.competencies.LoadCompetencies(cmd.Context())
			if err != nil {
				return err
			}
			printCompetencies(cmd.OutOrStdout(), list, e.cfg.UI.DateFormat)
			return nil
		},
	})

	var description string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a competency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.competencies.CreateCompetency(cmd.Context(), repository.Competency{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				e.log.Error("create competency failed", zap.String("name", args[0]), zap.Error(err))
				return err
			}
			printCompetencies(cmd.OutOrStdout(), list, e.cfg.UI.DateFormat)
			return nil
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "competency description")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <name|id>",
		Aliases: []string{"remove"},
		Short:   "Delete a competency and its subcompetencies",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.competencies.LoadCompetencies(cmd.Context())
			if err != nil {
				return err
			}
			target, err := findCompetency(list, args[0])
			if err != nil {
				return err
			}
			list, err = e.competencies.DeleteCompetency(cmd.Context(), target.ID)
			if err != nil {
				e.log.Error("delete competency failed", zap.String("id", target.ID), zap.Error(err))
				return err
			}
			e.log.Info("competency deleted", zap.String("id", target.ID), zap.String("name", target.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", target.Name)
			printCompetencies(cmd.OutOrStdout(), list, e.cfg.UI.DateFormat)
			return nil
		},
	})
	return cmd
}

// findCompetency looks key up as an id first and then as an exact name,
// searching subcompetencies too. A name shared by several records is an error.
func findCompetency(list []repository.Competency, key string) (repository.Competency, error) {
	var byName []repository.Competency
	var walk func(cs []repository.Competency) (repository.Competency, bool)
	walk = func(cs []repository.Competency) (repository.Competency, bool) {
		for _, c := range cs {
			if c.ID == key {
				return c, true
			}
			if c.Name == key {
				byName = append(byName, c)
			}
			if found, ok := walk(c.Subcompetencies); ok {
				return found, true
			}
		}
		return repository.Competency{}, false
	}
	if c, ok := walk(list); ok {
		return c, nil
	}
	switch len(byName) {
	case 0:
		return repository.Competency{}, fmt.Errorf("competency %q: %w", key, repository.ErrNotFound)
	case 1:
		return byName[0], nil
	default:
		return repository.Competency{}, fmt.Errorf("competency name %q is ambiguous (%d matches), pass an id", key, len(byName))
	}
}

func newProfileCmd(setup setupFunc, saveIdentity func(string) error) *cobra.Command {
	var (
		identity string
		save     bool
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the assessments available to an identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			if !cmd.Flags().Changed("identity") {
				if save {
					return fmt.Errorf("--save needs --identity")
				}
				identity = e.cfg.Profile.Identity
			}
			list, err := e.assessments.LoadAssessments(cmd.Context(), identity)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if save {
				if err := saveIdentity(identity); err != nil {
					e.log.Error("save identity failed", zap.String("identity", identity), zap.Error(err))
					return fmt.Errorf("save identity: %w", err)
				}
				e.log.Info("identity saved", zap.String("identity", identity))
				fmt.Fprintf(out, "saved identity %q\n", identity)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No assessments available.")
				return nil
			}
			for _, a := range list {
				fmt.Fprintf(out, "%s\t%s\t/assessments/%s\t%s\n", a.FullName, a.Date.UTC().Format(e.cfg.UI.DateFormat), a.Username, a.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&identity, "identity", "", "identity whose assessments to list (default from config)")
	cmd.Flags().BoolVar(&save, "save", false, "store --identity in the config file as the default")
	return cmd
}

func newExportCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write all competencies to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.competencies.LoadCompetencies(cmd.Context())
			if err != nil {
				return err
			}
			if err := backup.SaveCompetencies(args[0], list); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d competencies to %s\n", len(list), args[0])
			return nil
		},
	}
}

func newImportCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load competencies from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := backup.LoadCompetencies(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			n, err := e.competencies.Import(cmd.Context(), list)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d competencies\n", n)
			return nil
		},
	}
}

func newResetCmd(setup setupFunc) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all competencies and assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.maintenance.Reset(cmd.Context()); err != nil {
				return err
			}
			e.log.Warn("database reset", zap.String("path", e.cfg.Database.Path))
			fmt.Fprintln(cmd.OutOrStdout(), "database reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func printCompetencies(w io.Writer, list []repository.Competency, layout string) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No competencies yet.")
		return
	}
	for _, c := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Date.UTC().Format(layout), c.Description)
		for _, sub := range c.Subcompetencies {
			fmt.Fprintf(w, "  - %s\n", strings.TrimSpace(sub.Name))
		}
	}
}
