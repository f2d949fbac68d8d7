package concurrency

func Spawn(index int, action func(int)) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		action(index)
	}()
	return done
}

func SpawnNamed(index int) {
	go printThread(index)
}

func printThread(i int) {
	println("this is thread number", i)
}
