package cluster

// minContentItems is the threshold below which a cluster counts as
// under-developed in gap analysis.
const minContentItems = 3

// expectedTopics are cluster topics the content plan calls for. Any of
// these without a matching cluster name is reported as missing.
var expectedTopics = []string{
	"Instagram Marketing",
	"TikTok Marketing",
	"YouTube Marketing",
	"SNS Advertising",
	"Content Strategy",
	"SNS Analytics",
	"Influencer Marketing",
}

// Gap describes one under-developed cluster.
type Gap struct {
	ClusterID    string `json:"cluster_id"`
	Name         string `json:"name"`
	ContentCount int    `json:"content_count"`
}

// GapReport summarizes under-developed and missing cluster topics.
type GapReport struct {
	UnderDeveloped []Gap    `json:"under_developed"`
	MissingTopics  []string `json:"missing_topics"`
}

// GapAnalysis reports clusters with fewer than three content items as
// under-developed and expected topics without a cluster as missing.
func (idx *Index) GapAnalysis() GapReport {
	report := GapReport{
		UnderDeveloped: []Gap{},
		MissingTopics:  []string{},
	}

	names := make(map[string]bool, len(idx.order))
	for _, id := range idx.order {
		c := idx.clusters[id]
		names[c.Name] = true
		if len(c.Content) < minContentItems {
			report.UnderDeveloped = append(report.UnderDeveloped, Gap{
				ClusterID:    c.ID,
				Name:         c.Name,
				ContentCount: len(c.Content),
			})
		}
	}

	for _, topic := range expectedTopics {
		if !names[topic] {
			report.MissingTopics = append(report.MissingTopics, topic)
		}
	}
	return report
}
