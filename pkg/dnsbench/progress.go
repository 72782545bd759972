package dnsbench

// Progress receives one advance per probed provider. Implementations must be safe for concurrent use,
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
}

// NoProgress discards all progress.
type NoProgress struct{}

// Add implements Progress.
func (NoProgress) Add(int) error {
	return nil
}
