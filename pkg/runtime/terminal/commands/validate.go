package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	registry registry.Registry
}

// NewValidateCmd normalizes every dataset kind and reports schema errors,
// exclusion counts and unmapped columns without starting a server.
func NewValidateCmd(reg registry.Registry) *cobra.Command {
	vc := &ValidateCmd{registry: reg}
	return &cobra.Command{
		Use:   "validate",
		Short: "Normalize all datasets and report data quality",
		RunE:  vc.run,
	}
}

func (vc *ValidateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	failures := 0

	for _, kind := range domain.AllKinds() {
		ds, err := vc.registry.Get(ctx, kind)
		if err != nil {
			failures++
			var se *domain.SchemaError
			if errors.As(err, &se) {
				fmt.Fprintf(out, "%-12s FAIL  %s\n", kind, se.Reason)
			} else {
				fmt.Fprintf(out, "%-12s FAIL  %v\n", kind, err)
			}
			continue
		}

		fmt.Fprintf(out, "%-12s OK    %d records", kind, len(ds.Records))
		if ds.Excluded > 0 {
			fmt.Fprintf(out, ", %d excluded", ds.Excluded)
		}
		if len(ds.UnmappedColumns) > 0 {
			fmt.Fprintf(out, ", unmapped columns: %v", ds.UnmappedColumns)
		}
		fmt.Fprintln(out)
	}

	if failures > 0 {
		return fmt.Errorf("%d dataset(s) failed validation", failures)
	}
	return nil
}
