// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// DendroBites is a tool set for phylogenetic data preparation.
package main

import (
	"github.com/js-arias/command"
	"github.com/mtholder/dendrobites/cmd/dendrobites/compo"
	"github.com/mtholder/dendrobites/cmd/dendrobites/cull"
	"github.com/mtholder/dendrobites/cmd/dendrobites/distcmd"
	"github.com/mtholder/dendrobites/cmd/dendrobites/prune"
	"github.com/mtholder/dendrobites/cmd/dendrobites/synapcmd"
	"github.com/mtholder/dendrobites/cmd/dendrobites/taxa"
	"github.com/mtholder/dendrobites/cmd/dendrobites/tipcheck"
)

var app = &command.Command{
	Usage: "dendrobites <command> [<argument>...]",
	Short: "a tool set for phylogenetic data preparation",
}

func init() {
	app.Add(compo.Command)
	app.Add(cull.Command)
	app.Add(distcmd.Command)
	app.Add(prune.Command)
	app.Add(synapcmd.Command)
	app.Add(taxa.Command)
	app.Add(tipcheck.Command)
}

func main() {
	app.Main()
}
