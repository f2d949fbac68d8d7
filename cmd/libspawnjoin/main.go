// Command libspawnjoin builds the fan-out runner as a C library:
//
//	go build -buildmode=c-archive -o libspawnjoin.a ./cmd/libspawnjoin
//
// The generated libspawnjoin.h declares spawnjoin_main, which takes no
// arguments, returns nothing, and returns only after all workers finished.
package main

import "C"

import (
	"github.com/adalundhe/spawnjoin/core/concurrency"
)

//export spawnjoin_main
func spawnjoin_main() {
	concurrency.RunDefault()
}

func main() {}
