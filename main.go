// Package main is the hoopreel entry point.
package main

import (
	"github.com/hoopreel/hoopreel/cmd"
	"github.com/hoopreel/hoopreel/config"
	"github.com/hoopreel/hoopreel/internal/cache"
	"github.com/hoopreel/hoopreel/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
