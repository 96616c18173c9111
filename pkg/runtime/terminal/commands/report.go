package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/promo-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/promo-atlas/pkg/services/session"
	"github.com/de-tools/promo-atlas/pkg/services/views"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	view    string
	filters []string
	asCSV   bool

	sessions *session.Manager
	builder  views.Builder
	reporter *export.Reporter
}

func NewReportCmd(sessions *session.Manager, builder views.Builder, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{sessions: sessions, builder: builder, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a filtered view and print it",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.view, "view", "", "View to build (see the views command)")
	cmd.Flags().StringArrayVar(&rc.filters, "filter", nil,
		"Filter as dimension=value[,value...]; repeatable")
	cmd.Flags().BoolVar(&rc.asCSV, "csv", false, "Emit CSV instead of a table")

	_ = cmd.MarkFlagRequired("view")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	s := rc.sessions.Create()
	for _, f := range rc.filters {
		dimension, raw, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("bad --filter %q, expected dimension=value", f)
		}
		if _, err := s.Update(ctx, dimension, strings.Split(raw, ",")); err != nil {
			return err
		}
	}

	view, err := rc.builder.Build(ctx, rc.view, s.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to build view %q: %w", rc.view, err)
	}

	if rc.asCSV {
		return rc.reporter.HandleCSV(view)
	}
	return rc.reporter.Handle(view)
}

// NewViewsCmd lists the registered view names.
func NewViewsCmd(builder views.Builder) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List available views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range builder.Views() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
