package knowledge

// EntityType classifies a node in the entity graph.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityService      EntityType = "service"
	EntityPlatform     EntityType = "platform"
	EntityConcept      EntityType = "concept"
	EntityLocation     EntityType = "location"
	EntityProduct      EntityType = "product"
	EntityTechnique    EntityType = "technique"
)

// Entity represents a named real-world thing tracked by the graph: a
// person, organization, service, platform, or concept. Entities are
// assembled once at graph-build time and are read-only afterwards.
//
// Importance is a global weight in [0,1]. TopicRelevance maps topic slugs
// to a per-topic relevance in [0,1] and drives indirect similarity between
// entities that share no direct relation.
type Entity struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Type           EntityType         `json:"type"`
	Description    string             `json:"description"`
	Importance     float64            `json:"importance"`
	Related        []string           `json:"related"`
	TopicRelevance map[string]float64 `json:"topic_relevance"`
}

// Predicate is the closed set of relation verbs a semantic triple may use.
type Predicate string

const (
	PredicateOffers        Predicate = "offers"
	PredicateFoundedBy     Predicate = "founded_by"
	PredicateLeads         Predicate = "leads"
	PredicateSpecializesIn Predicate = "specializes_in"
	PredicateOperatesOn    Predicate = "operates_on"
	PredicateTargets       Predicate = "targets"
	PredicateProduces      Predicate = "produces"
	PredicateAnalyzes      Predicate = "analyzes"
	PredicatePartnersWith  Predicate = "partners_with"
	PredicateLocatedIn     Predicate = "located_in"
	PredicateUses          Predicate = "uses"
)

// Triple is a subject/predicate/object fact. Subject always references an
// entity id; Object may reference an entity id or hold a literal value.
// Confidence is in [0,1].
type Triple struct {
	Subject    string    `json:"subject"`
	Predicate  Predicate `json:"predicate"`
	Object     string    `json:"object"`
	Confidence float64   `json:"confidence"`
	Context    string    `json:"context,omitempty"`
}
