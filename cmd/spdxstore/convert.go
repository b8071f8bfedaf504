package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/c360studio/semstreams/natsclient"
	"github.com/spf13/cobra"

	"github.com/c360studio/spdxstore/graph"
	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/rdf/codec"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		to      string
		output  string
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "convert [flags] <file|glob>...",
		Short: "Convert SPDX RDF documents between Turtle and N-Triples",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd.Context(), args, to, output, publish)
		},
	}

	cmd.Flags().StringVar(&to, "to", "turtle", "Output format (turtle, ntriples)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish loaded entities to the configured NATS change feed")

	return cmd
}

func (a *app) runConvert(ctx context.Context, patterns []string, to, output string, publish bool) error {
	if to != "turtle" && to != "ntriples" {
		return fmt.Errorf("unknown output format %q", to)
	}

	files, err := expandGlobs(patterns)
	if err != nil {
		return err
	}

	// All inputs merge into one graph so identical statements collapse.
	merged := rdf.NewGraph()
	for _, path := range files {
		g, err := loadGraph(path)
		if err != nil {
			return err
		}
		g.RLock()
		triples := g.Triples()
		g.RUnlock()
		merged.Lock()
		for _, t := range triples {
			merged.Add(t)
		}
		merged.Unlock()
		a.logger.Debug("Loaded document", slog.String("path", path), slog.Int("triples", len(triples)))
	}

	if ns := documentNamespace(merged, ""); ns != "" {
		merged.SetDefaultPrefix(ns)
	}

	if publish {
		if err := a.publishGraph(ctx, merged); err != nil {
			return err
		}
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if to == "ntriples" {
		return codec.EncodeNTriples(merged, w)
	}
	return codec.EncodeTurtle(merged, w)
}

// publishGraph replays every statement of g through the change feed
// publisher and flushes the buffered entities to NATS.
func (a *app) publishGraph(ctx context.Context, g *rdf.Graph) error {
	if a.cfg.NATS.URL == "" {
		return fmt.Errorf("--publish requires nats.url in the configuration")
	}

	client, err := natsclient.NewClient(a.cfg.NATS.URL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(3),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return fmt.Errorf("create NATS client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", a.cfg.NATS.URL, err)
	}
	defer client.Close(ctx)

	p := graph.NewPublisher(client, a.logger)
	g.RLock()
	for _, t := range g.Triples() {
		p.TripleAdded(t, false)
	}
	g.RUnlock()

	if err := p.Flush(ctx); err != nil {
		return fmt.Errorf("publish entities: %w", err)
	}
	a.logger.Info("Published graph to change feed", slog.String("url", a.cfg.NATS.URL))
	return nil
}
