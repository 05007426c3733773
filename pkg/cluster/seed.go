package cluster

// SeedClusters returns the static topic-cluster hierarchy for the BuzzLab
// site. The tree has one primary pillar with platform-specific secondary
// clusters beneath it.
func SeedClusters() []TopicCluster {
	return []TopicCluster{
		{
			ID:   "sns-marketing",
			Name: "SNS Marketing",
			Type: ClusterPrimary,
			Pillar: PillarPage{
				Title:          "SNS Marketing Services",
				Slug:           "/services/sns-marketing",
				TargetKeywords: []string{"sns marketing", "social media agency", "sns operation"},
				TargetAudience: "brand managers evaluating an SNS agency",
				Outline:        []string{"What we do", "Platforms", "Process", "Pricing", "Case studies"},
			},
			Content: []ClusterContent{
				{Title: "How BuzzLab Runs Brand Accounts", Slug: "/blog/how-we-run-brand-accounts", Keywords: []string{"account management", "workflow"}},
				{Title: "Choosing the Right Platform", Slug: "/blog/choosing-the-right-platform", Keywords: []string{"platform selection"}},
				{Title: "SNS Marketing Pricing Guide", Slug: "/blog/sns-pricing-guide", Keywords: []string{"pricing", "retainer"}},
			},
			ChildIDs: []string{"instagram-marketing", "tiktok-marketing", "youtube-marketing", "sns-advertising"},
			EntityRelevance: map[string]float64{
				"buzzlab":                1.0,
				"sns-account-management": 0.95,
			},
			ContentDepth:         3,
			InternalLinkingScore: 0.9,
			SemanticKeywords:     []string{"social media strategy", "account growth", "engagement", "kpi reporting"},
		},
		{
			ID:   "instagram-marketing",
			Name: "Instagram Marketing",
			Type: ClusterSecondary,
			Pillar: PillarPage{
				Title:          "Instagram Marketing",
				Slug:           "/services/instagram",
				TargetKeywords: []string{"instagram marketing", "instagram operation", "reels strategy"},
				TargetAudience: "brands growing on Instagram",
				Outline:        []string{"Feed strategy", "Reels", "Stories", "Hashtags", "Reporting"},
			},
			Content: []ClusterContent{
				{Title: "Reels That Reach", Slug: "/blog/reels-that-reach", Keywords: []string{"reels", "reach"}},
				{Title: "Hashtag Research in 2025", Slug: "/blog/hashtag-research", Keywords: []string{"hashtags"}},
			},
			ParentID: "sns-marketing",
			EntityRelevance: map[string]float64{
				"instagram":              1.0,
				"sns-account-management": 0.8,
			},
			ContentDepth:         2,
			InternalLinkingScore: 0.7,
			SemanticKeywords:     []string{"reels", "stories", "feed design", "hashtag strategy", "discovery algorithm"},
		},
		{
			ID:   "tiktok-marketing",
			Name: "TikTok Marketing",
			Type: ClusterSecondary,
			Pillar: PillarPage{
				Title:          "TikTok Marketing",
				Slug:           "/services/tiktok",
				TargetKeywords: []string{"tiktok marketing", "tiktok operation", "short video strategy"},
				TargetAudience: "brands targeting short-form video audiences",
				Outline:        []string{"For You feed", "Trends", "Sound", "Posting cadence"},
			},
			Content: []ClusterContent{
				{Title: "Riding Trends Without Losing the Brand", Slug: "/blog/trends-without-losing-brand", Keywords: []string{"trends"}},
				{Title: "TikTok Posting Cadence", Slug: "/blog/tiktok-cadence", Keywords: []string{"cadence"}},
				{Title: "Hook Writing for Short Video", Slug: "/blog/hook-writing", Keywords: []string{"hooks", "scripts"}},
			},
			ParentID: "sns-marketing",
			EntityRelevance: map[string]float64{
				"tiktok":             1.0,
				"short-form-video":   0.9,
				"content-production": 0.7,
			},
			ContentDepth:         2,
			InternalLinkingScore: 0.75,
			SemanticKeywords:     []string{"for you feed", "trend research", "vertical video", "sound selection"},
		},
		{
			ID:   "youtube-marketing",
			Name: "YouTube Marketing",
			Type: ClusterSecondary,
			Pillar: PillarPage{
				Title:          "YouTube Marketing",
				Slug:           "/services/youtube",
				TargetKeywords: []string{"youtube marketing", "youtube shorts", "channel growth"},
				TargetAudience: "brands building video channels",
				Outline:        []string{"Channel strategy", "Shorts", "Search intent", "Retention"},
			},
			Content: []ClusterContent{
				{Title: "Shorts vs Long-Form", Slug: "/blog/shorts-vs-longform", Keywords: []string{"shorts"}},
			},
			ParentID: "sns-marketing",
			EntityRelevance: map[string]float64{
				"youtube":            1.0,
				"content-production": 0.6,
			},
			ContentDepth:         1,
			InternalLinkingScore: 0.5,
			SemanticKeywords:     []string{"shorts", "watch time", "thumbnails", "search intent"},
		},
		{
			ID:   "sns-advertising",
			Name: "SNS Advertising",
			Type: ClusterSupporting,
			Pillar: PillarPage{
				Title:          "SNS Ad Operation",
				Slug:           "/services/advertising",
				TargetKeywords: []string{"sns advertising", "social ads", "ad operation"},
				TargetAudience: "marketers running paid social",
				Outline:        []string{"Creative testing", "Audiences", "Budgets", "Measurement"},
			},
			Content: []ClusterContent{
				{Title: "Creative Testing Frameworks", Slug: "/blog/creative-testing", Keywords: []string{"creative testing"}},
				{Title: "Reading Your Ad Reports", Slug: "/blog/reading-ad-reports", Keywords: []string{"reporting", "cpa"}},
			},
			ParentID: "sns-marketing",
			EntityRelevance: map[string]float64{
				"sns-ad-operation": 1.0,
				"buzzlab":          0.6,
			},
			ContentDepth:         2,
			InternalLinkingScore: 0.65,
			SemanticKeywords:     []string{"paid social", "creative testing", "audience design", "roas"},
		},
		{
			ID:   "content-strategy",
			Name: "Content Strategy",
			Type: ClusterInformational,
			Pillar: PillarPage{
				Title:          "Content Strategy Basics",
				Slug:           "/guides/content-strategy",
				TargetKeywords: []string{"content strategy", "content planning"},
				TargetAudience: "in-house marketers",
				Outline:        []string{"Pillars", "Calendars", "Repurposing"},
			},
			Content: []ClusterContent{
				{Title: "Building a Content Calendar", Slug: "/blog/content-calendar", Keywords: []string{"calendar"}},
			},
			ParentID: "",
			EntityRelevance: map[string]float64{
				"content-production": 0.9,
				"short-form-video":   0.7,
			},
			ContentDepth:         1,
			InternalLinkingScore: 0.4,
			SemanticKeywords:     []string{"content pillars", "editorial calendar", "repurposing"},
		},
	}
}
