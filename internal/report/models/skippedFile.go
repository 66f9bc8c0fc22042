package reportmodels

type SkippedFile struct {
	Path   string
	Reason error
}
