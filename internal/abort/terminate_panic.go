//go:build !unix || arcstr_panicabort

package abort

func terminate() {
	// A panic on a goroutine with no recover in its frames is fatal to the whole process,
	// and no caller of Now can intercept it.
	go func() {
		panic("arcstr: fatal error, aborting")
	}()
	select {}
}
