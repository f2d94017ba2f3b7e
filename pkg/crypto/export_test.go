package crypto

import "github.com/idelchi/minicrypt/pkg/secure"

// ResetDefaultForTesting clears the process-wide facade and returns a restore func.
func ResetDefaultForTesting() func() {
	defaultMu.Lock()
	saved := defaultFacade
	defaultFacade = nil
	defaultMu.Unlock()

	return func() {
		defaultMu.Lock()
		defaultFacade = saved
		defaultMu.Unlock()
	}
}

// DefaultKind exposes the compiled-in backend kind.
const DefaultKind = defaultKind

// MakeSaltWith runs MakeSalt with a custom allocator.
func (f *Facade) MakeSaltWith(alloc func(size int) (*secure.Buffer, error)) *secure.Buffer {
	return f.makeSalt(alloc)
}
