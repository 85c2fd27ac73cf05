package store

// UseFastKDF lowers the scrypt cost for the duration of a test.
func UseFastKDF(cleanup func(func())) {
	saved := scryptParams
	scryptParams.N = 1 << 10
	cleanup(func() { scryptParams = saved })
}
