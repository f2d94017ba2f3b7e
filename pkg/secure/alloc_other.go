//go:build !linux

package secure

// region is the storage behind a Buffer. Without anonymous mappings the bytes
// live on the heap; the slice is never resliced or grown, so the runtime holds
// a single copy.
type region struct {
	data   []byte
	locked bool
}

func allocate(size int) (region, error) {
	return region{data: make([]byte, size)}, nil
}

func (r *region) release() error {
	r.data = nil

	return nil
}
