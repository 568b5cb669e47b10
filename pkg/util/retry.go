package util

// Retry invokes op up to maxAttempts times, stopping at the first success.
// The error from the last attempt is returned if every attempt fails.
func Retry(maxAttempts int, op func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
	}
	return err
}
