package concurrency_test

import (
	"github.com/adalundhe/spawnjoin/core/concurrency"
)

func ExampleRun() {
	concurrency.Run(3)
	// Unordered output:
	// this is thread number 0
	// this is thread number 1
	// this is thread number 2
}
