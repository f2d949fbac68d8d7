package forbidden

func PrintInline() {
	go func() { // want "raw 'go' statement forbidden - use concurrency.Spawn\\(\\) from core/concurrency"
		println("this is thread number 0")
	}()
}

func PrintNamed(i int) {
	go printThread(i) // want "raw 'go' statement forbidden - use concurrency.Spawn\\(\\) from core/concurrency"
}

func printThread(i int) {
	println("this is thread number", i)
}

func RunLoop() {
	for i := 0; i < 10; i++ {
		go printThread(i) // want "raw 'go' statement forbidden - use concurrency.Spawn\\(\\) from core/concurrency"
	}
}
