package api

// Preview is the handle returned for a parked preview artifact.
type Preview struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
}
