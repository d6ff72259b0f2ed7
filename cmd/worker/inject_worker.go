package main

import (
	"github.com/google/wire"
	"github.com/mintdao/issuer/worker/auditor"
)

var workerSet = wire.NewSet(
	auditor.New,
)
