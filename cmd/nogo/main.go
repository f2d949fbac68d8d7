// Command nogo is a vet analyzer that keeps goroutine creation inside
// core/concurrency, where every unit gets a handle and a recovered panic.
//
//	go run ./cmd/nogo ./...
package main

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/singlechecker"
)

const allowedPackage = "core/concurrency"

var Analyzer = &analysis.Analyzer{
	Name: "nogo",
	Doc:  "forbids raw go statements outside of core/concurrency",
	Run:  run,
}

func main() {
	singlechecker.Main(Analyzer)
}

func run(pass *analysis.Pass) (interface{}, error) {
	if strings.HasSuffix(pass.Pkg.Path(), allowedPackage) {
		return nil, nil
	}

	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			if goStmt, ok := n.(*ast.GoStmt); ok {
				pass.Reportf(goStmt.Pos(),
					"raw 'go' statement forbidden - use concurrency.Spawn() from core/concurrency")
			}
			return true
		})
	}
	return nil, nil
}
