package knowledge

// SeedEntities returns the static entity graph for the BuzzLab site. The
// graph is configuration, not runtime data: content ingestion and query
// expansion both resolve against these ids.
func SeedEntities() []Entity {
	return []Entity{
		{
			ID:          "buzzlab",
			Name:        "BuzzLab",
			Type:        EntityOrganization,
			Description: "BuzzLab is a social media marketing agency that plans, produces, and operates SNS accounts for brands, covering strategy, content production, ad operation, and analytics.",
			Importance:  1.0,
			Related:     []string{"keita-mori", "sns-account-management", "sns-ad-operation", "content-production", "influencer-marketing", "tokyo"},
			TopicRelevance: map[string]float64{
				"sns-marketing":    1.0,
				"content-strategy": 0.9,
				"ad-operation":     0.9,
				"analytics":        0.8,
			},
		},
		{
			ID:          "keita-mori",
			Name:        "Keita Mori",
			Type:        EntityPerson,
			Description: "Keita Mori is the founder and representative director of BuzzLab, with a background in growing brand accounts on Instagram and TikTok to six-figure followings.",
			Importance:  0.9,
			Related:     []string{"buzzlab"},
			TopicRelevance: map[string]float64{
				"sns-marketing":    0.9,
				"content-strategy": 0.8,
			},
		},
		{
			ID:          "sns-account-management",
			Name:        "SNS Account Management",
			Type:        EntityService,
			Description: "Full-service SNS account management: monthly content planning, posting, community management, and reporting for brand accounts.",
			Importance:  0.9,
			Related:     []string{"buzzlab", "instagram", "tiktok"},
			TopicRelevance: map[string]float64{
				"sns-marketing":    1.0,
				"content-strategy": 0.7,
			},
		},
		{
			ID:          "sns-ad-operation",
			Name:        "SNS Ad Operation",
			Type:        EntityService,
			Description: "Paid social advertising operation across Instagram, TikTok, and YouTube, including creative testing, audience design, and budget optimization.",
			Importance:  0.85,
			Related:     []string{"buzzlab", "instagram", "tiktok", "youtube"},
			TopicRelevance: map[string]float64{
				"ad-operation":  1.0,
				"sns-marketing": 0.8,
				"analytics":     0.6,
			},
		},
		{
			ID:          "content-production",
			Name:        "Content Production",
			Type:        EntityService,
			Description: "Short-form video and static creative production, from planning and scripting through shooting and editing, optimized per platform.",
			Importance:  0.8,
			Related:     []string{"buzzlab", "short-form-video"},
			TopicRelevance: map[string]float64{
				"content-strategy": 1.0,
				"sns-marketing":    0.7,
			},
		},
		{
			ID:          "influencer-marketing",
			Name:        "Influencer Marketing",
			Type:        EntityService,
			Description: "Influencer casting, campaign design, and measurement connecting brands with creators that match their audience.",
			Importance:  0.75,
			Related:     []string{"buzzlab", "instagram", "tiktok"},
			TopicRelevance: map[string]float64{
				"sns-marketing":    0.8,
				"content-strategy": 0.6,
			},
		},
		{
			ID:          "instagram",
			Name:        "Instagram",
			Type:        EntityPlatform,
			Description: "Instagram is a visual-first social platform where BuzzLab runs feed, Reels, and Stories strategies built around the discovery algorithm and hashtag reach.",
			Importance:  0.85,
			Related:     []string{"sns-account-management", "sns-ad-operation"},
			TopicRelevance: map[string]float64{
				"sns-marketing":    0.9,
				"content-strategy": 0.8,
				"ad-operation":     0.7,
			},
		},
		{
			ID:          "tiktok",
			Name:        "TikTok",
			Type:        EntityPlatform,
			Description: "TikTok is a short-form video platform where BuzzLab focuses on trend-driven content, sound selection, and the For You feed recommendation loop.",
			Importance:  0.85,
			Related:     []string{"sns-account-management", "content-production"},
			TopicRelevance: map[string]float64{
				"sns-marketing":    0.9,
				"content-strategy": 0.9,
			},
		},
		{
			ID:          "youtube",
			Name:        "YouTube",
			Type:        EntityPlatform,
			Description: "YouTube is a long- and short-form video platform where BuzzLab builds channel strategies around Shorts, search intent, and watch-time retention.",
			Importance:  0.8,
			Related:     []string{"sns-ad-operation", "content-production"},
			TopicRelevance: map[string]float64{
				"sns-marketing":    0.8,
				"content-strategy": 0.8,
				"analytics":        0.5,
			},
		},
		{
			ID:          "x-twitter",
			Name:        "X",
			Type:        EntityPlatform,
			Description: "X (formerly Twitter) is a text-first platform BuzzLab uses for real-time brand communication and campaign amplification.",
			Importance:  0.6,
			Related:     []string{"sns-account-management"},
			TopicRelevance: map[string]float64{
				"sns-marketing": 0.7,
			},
		},
		{
			ID:          "short-form-video",
			Name:        "Short-Form Video",
			Type:        EntityTechnique,
			Description: "Short-form video is the production technique behind Reels, TikTok, and Shorts: vertical, hook-led clips under a minute designed for algorithmic distribution.",
			Importance:  0.7,
			Related:     []string{"content-production", "tiktok"},
			TopicRelevance: map[string]float64{
				"content-strategy": 0.9,
				"sns-marketing":    0.6,
			},
		},
		{
			ID:          "engagement-rate",
			Name:        "Engagement Rate",
			Type:        EntityConcept,
			Description: "Engagement rate measures interactions relative to reach or followers and is the primary KPI BuzzLab reports for organic SNS work.",
			Importance:  0.65,
			Related:     []string{"sns-account-management"},
			TopicRelevance: map[string]float64{
				"analytics":     0.9,
				"sns-marketing": 0.5,
			},
		},
		{
			ID:          "tokyo",
			Name:        "Tokyo",
			Type:        EntityLocation,
			Description: "Tokyo is where BuzzLab's studio and production team are based.",
			Importance:  0.4,
			Related:     []string{"buzzlab"},
			TopicRelevance: map[string]float64{
				"sns-marketing": 0.2,
			},
		},
	}
}

// SeedTriples returns the semantic facts linking the seed entities.
func SeedTriples() []Triple {
	return []Triple{
		{Subject: "buzzlab", Predicate: PredicateFoundedBy, Object: "keita-mori", Confidence: 1.0},
		{Subject: "keita-mori", Predicate: PredicateLeads, Object: "buzzlab", Confidence: 1.0},
		{Subject: "buzzlab", Predicate: PredicateOffers, Object: "sns-account-management", Confidence: 1.0},
		{Subject: "buzzlab", Predicate: PredicateOffers, Object: "sns-ad-operation", Confidence: 1.0},
		{Subject: "buzzlab", Predicate: PredicateOffers, Object: "content-production", Confidence: 0.95},
		{Subject: "buzzlab", Predicate: PredicateOffers, Object: "influencer-marketing", Confidence: 0.9},
		{Subject: "buzzlab", Predicate: PredicateLocatedIn, Object: "tokyo", Confidence: 1.0},
		{Subject: "sns-account-management", Predicate: PredicateOperatesOn, Object: "instagram", Confidence: 0.95},
		{Subject: "sns-account-management", Predicate: PredicateOperatesOn, Object: "tiktok", Confidence: 0.9},
		{Subject: "sns-account-management", Predicate: PredicateOperatesOn, Object: "x-twitter", Confidence: 0.7},
		{Subject: "sns-ad-operation", Predicate: PredicateOperatesOn, Object: "instagram", Confidence: 0.9},
		{Subject: "sns-ad-operation", Predicate: PredicateOperatesOn, Object: "youtube", Confidence: 0.8},
		{Subject: "content-production", Predicate: PredicateUses, Object: "short-form-video", Confidence: 0.95},
		{Subject: "content-production", Predicate: PredicateProduces, Object: "tiktok", Confidence: 0.8, Context: "platform-native creative"},
		{Subject: "influencer-marketing", Predicate: PredicateOperatesOn, Object: "instagram", Confidence: 0.85},
		{Subject: "sns-account-management", Predicate: PredicateAnalyzes, Object: "engagement-rate", Confidence: 0.9},
		{Subject: "keita-mori", Predicate: PredicateSpecializesIn, Object: "short-form-video", Confidence: 0.8},
	}
}
