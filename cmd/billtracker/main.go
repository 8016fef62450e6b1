package main

import (
	"BillTracker/internal/bootstrap"
	pkg "BillTracker/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()
	app := fx.New(
		pkg.EchoModules,
	)
	app.Run()
}
