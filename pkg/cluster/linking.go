package cluster

// LinkStrategy is the internal-link plan for one cluster: which slugs it
// should link up to, down to, across to, and within itself.
type LinkStrategy struct {
	Upward     []string `json:"upward"`
	Downward   []string `json:"downward"`
	Lateral    []string `json:"lateral"`
	Contextual []string `json:"contextual"`
}

// InternalLinkStrategy computes the four link sets for a cluster: the
// parent's pillar slug (upward), the children's pillar slugs (downward),
// the siblings' pillar slugs (lateral), and the cluster's own content
// slugs (contextual).
func (idx *Index) InternalLinkStrategy(id string) LinkStrategy {
	strategy := LinkStrategy{
		Upward:     []string{},
		Downward:   []string{},
		Lateral:    []string{},
		Contextual: []string{},
	}

	c, ok := idx.clusters[id]
	if !ok {
		return strategy
	}

	rel := idx.Relationships(id)
	if rel.Parent != nil {
		strategy.Upward = append(strategy.Upward, rel.Parent.Pillar.Slug)
	}
	for _, child := range rel.Children {
		strategy.Downward = append(strategy.Downward, child.Pillar.Slug)
	}
	for _, sib := range rel.Siblings {
		strategy.Lateral = append(strategy.Lateral, sib.Pillar.Slug)
	}
	for _, content := range c.Content {
		strategy.Contextual = append(strategy.Contextual, content.Slug)
	}
	return strategy
}

// SEO score weights. Content depth saturates at 3 levels and the keyword
// signal at 10 combined keywords, so every input is clipped to [0,1]
// before weighting.
const (
	seoWeightDepth     = 0.2
	seoWeightLinking   = 0.3
	seoWeightEntities  = 0.3
	seoWeightKeywords  = 0.2
	seoDepthSaturation = 3.0
	seoKeywordSat      = 10.0
)

// SEOScore combines content depth, internal-linking score, average entity
// relevance, and keyword coverage into one score in [0,1]. Unknown ids
// score 0.
func (idx *Index) SEOScore(id string) float64 {
	c, ok := idx.clusters[id]
	if !ok {
		return 0
	}

	depth := clip01(float64(c.ContentDepth) / seoDepthSaturation)
	linking := clip01(c.InternalLinkingScore)

	entityAvg := 0.0
	if len(c.EntityRelevance) > 0 {
		sum := 0.0
		for _, v := range c.EntityRelevance {
			sum += v
		}
		entityAvg = clip01(sum / float64(len(c.EntityRelevance)))
	}

	totalKeywords := len(c.Pillar.TargetKeywords) + len(c.SemanticKeywords)
	keywords := clip01(float64(totalKeywords) / seoKeywordSat)

	return seoWeightDepth*depth +
		seoWeightLinking*linking +
		seoWeightEntities*entityAvg +
		seoWeightKeywords*keywords
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
