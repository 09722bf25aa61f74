package metrics

const (
	namespace = "alert_srv"

	StatusSuccess = "success"
	StatusError   = "error"

	// maxLabelLength bounds label values taken from identifiers.
	maxLabelLength = 128
)
