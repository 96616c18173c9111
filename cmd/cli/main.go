package main

import (
	"fmt"
	"os"

	"github.com/de-tools/promo-atlas/pkg/runtime/terminal"
	"github.com/de-tools/promo-atlas/pkg/services/aliases"
	"github.com/de-tools/promo-atlas/pkg/services/normalizer"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/de-tools/promo-atlas/pkg/services/session"
	"github.com/de-tools/promo-atlas/pkg/services/views"
	"github.com/de-tools/promo-atlas/pkg/store/csvstore"
)

func main() {
	dataDir := os.Getenv("PROMO_ATLAS_DATA")
	if dataDir == "" {
		dataDir = "data"
	}

	aliasMap := aliases.Default()
	if path := os.Getenv("PROMO_ATLAS_ALIASES"); path != "" {
		var err error
		aliasMap, err = aliases.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load alias map: %v\n", err)
			os.Exit(1)
		}
	}

	source := csvstore.New(dataDir, nil)
	reg := registry.New(source, normalizer.New(aliasMap))
	sessions := session.NewManager(reg, session.DefaultDimensions())
	builder := views.NewBuilder(reg)

	cli := terminal.NewCLI(terminal.Options{
		Registry: reg,
		Sessions: sessions,
		Builder:  builder,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
