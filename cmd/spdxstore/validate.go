package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/spdxstore/store"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [flags] <file|glob>...",
		Short: "Check SPDX RDF documents against the ontology",
		Long: `Validate loads each document and checks every resource in the document
namespace: each property must respect its declared cardinality, and
every value must decode under the ontology's range for the property.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(args)
		},
	}
	return cmd
}

func (a *app) runValidate(patterns []string) error {
	files, err := expandGlobs(patterns)
	if err != nil {
		return err
	}

	opts, err := a.storeOptions()
	if err != nil {
		return err
	}
	st := store.New(opts...)
	defer st.Close()

	findings := 0
	for _, path := range files {
		g, err := loadGraph(path)
		if err != nil {
			return err
		}
		ns := documentNamespace(g, a.cfg.Document.DefaultNamespace)

		m, err := st.AttachGraph(ns, g)
		if err != nil {
			return fmt.Errorf("attach %s: %w", path, err)
		}

		for _, item := range m.AllItems("") {
			id, ok := spdx.IDFromElementURI(ns, item.URI)
			if !ok {
				continue
			}
			findings += a.validateResource(m, path, id)
		}
	}

	if findings > 0 {
		return fmt.Errorf("%d validation finding(s)", findings)
	}
	fmt.Println("OK")
	return nil
}

// validateResource checks one resource's properties, printing a line
// per finding and returning the finding count.
func (a *app) validateResource(m *store.Manager, path, id string) int {
	report := func(prop, msg string) {
		fmt.Printf("%s: %s %s: %s\n", path, id, prop, msg)
	}

	names, err := m.PropertyValueNames(id)
	if err != nil {
		report("", err.Error())
		return 1
	}

	findings := 0
	for _, prop := range names {
		collection, err := m.IsCollectionProperty(id, prop)
		if err != nil {
			report(prop, err.Error())
			findings++
			continue
		}
		if collection {
			if _, err := m.ValueList(id, prop); err != nil {
				report(prop, err.Error())
				findings++
			}
			continue
		}
		if _, _, err := m.GetPropertyValue(id, prop); err != nil {
			if errors.Is(err, store.ErrMultipleValues) {
				report(prop, "multiple values for single-valued property")
			} else {
				report(prop, err.Error())
			}
			findings++
		}
	}
	return findings
}
