// pkg/ai/client.go

package ai

// SweepDigest is the numeric material handed to the model for a battle
// sweep write-up.
type SweepDigest struct {
	EngagementsFired int
	Infections       int
	Mutations        int
	Extinctions      int
	CropFailures     int
}

type Client interface {
	// SummarizeSweep turns a sweep digest plus optional advisory context
	// into a short Markdown outbreak report.
	SummarizeSweep(d SweepDigest, advisoryCtx string) string
}
