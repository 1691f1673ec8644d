package appdelegate

// once wraps a completion handler the OS expects to be called exactly once.
// Only the first call is forwarded; later calls are usage faults. A nil
// handler is accepted and treated as a no-op.
func once[T any](d *Delegate, name string, fn func(T)) func(T) {
	called := false
	return func(v T) {
		if called {
			d.fault(name + " called more than once")
			return
		}
		called = true
		if fn != nil {
			fn(v)
		}
	}
}

// onceFunc is once for handlers without arguments.
func onceFunc(d *Delegate, name string, fn func()) func() {
	wrapped := once(d, name, func(struct{}) {
		if fn != nil {
			fn()
		}
	})
	return func() { wrapped(struct{}{}) }
}
