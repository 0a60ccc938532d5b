package events

const (
	StreamName   = "CANDYBOARD_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectSelectionAnalyzed(analysisID string) string {
	return "candy.selection." + analysisID + ".analyzed"
}
