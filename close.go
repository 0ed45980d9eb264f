package seqdex

// Close releases the sequence store, including its memory mapping. Further
// enumerations return ErrClosed. Close is idempotent.
func (ix *Index) Close() error {
	if ix == nil {
		return nil
	}
	ix.closeOnce.Do(func() {
		ix.closed.Store(true)
		if err := ix.seq.Close(); err != nil {
			ix.logger.Error("close failed", "error", err)
			ix.closeErr = err
		}
	})
	return ix.closeErr
}
