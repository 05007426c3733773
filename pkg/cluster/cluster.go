package cluster

import (
	"fmt"
)

// ClusterType classifies a topic cluster's role in the content hierarchy.
type ClusterType string

const (
	ClusterPrimary       ClusterType = "primary"
	ClusterSecondary     ClusterType = "secondary"
	ClusterSupporting    ClusterType = "supporting"
	ClusterInformational ClusterType = "informational"
)

// PillarPage describes the hub page anchoring a topic cluster.
type PillarPage struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	TargetKeywords []string `json:"target_keywords"`
	TargetAudience string   `json:"target_audience"`
	Outline        []string `json:"outline"`
}

// ClusterContent describes one piece of content belonging to a cluster.
type ClusterContent struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Keywords []string `json:"keywords"`
}

// TopicCluster groups related content around one pillar topic. Clusters
// form a tree through ParentID/ChildIDs; the EntityRelevance map links the
// cluster to entities in the knowledge graph.
type TopicCluster struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	Type                 ClusterType        `json:"type"`
	Pillar               PillarPage         `json:"pillar"`
	Content              []ClusterContent   `json:"content"`
	ParentID             string             `json:"parent_id,omitempty"`
	ChildIDs             []string           `json:"child_ids,omitempty"`
	EntityRelevance      map[string]float64 `json:"entity_relevance"`
	ContentDepth         int                `json:"content_depth"`
	InternalLinkingScore float64            `json:"internal_linking_score"`
	SemanticKeywords     []string           `json:"semantic_keywords"`
}

// Index is a read-only lookup over the cluster hierarchy, built once at
// startup and safe for concurrent reads.
type Index struct {
	clusters map[string]TopicCluster
	order    []string
}

// NewIndex validates the cluster hierarchy and builds the index. The
// parent/child edges must form a tree: a cluster's parent must exist and
// list the cluster among its children, and following parent links must
// never revisit a cluster.
func NewIndex(clusters []TopicCluster) (*Index, error) {
	idx := &Index{
		clusters: make(map[string]TopicCluster, len(clusters)),
		order:    make([]string, 0, len(clusters)),
	}
	for _, c := range clusters {
		if _, dup := idx.clusters[c.ID]; dup {
			return nil, fmt.Errorf("duplicate cluster id %q", c.ID)
		}
		idx.clusters[c.ID] = c
		idx.order = append(idx.order, c.ID)
	}

	for _, c := range idx.clusters {
		if c.ParentID == "" {
			continue
		}
		parent, ok := idx.clusters[c.ParentID]
		if !ok {
			return nil, fmt.Errorf("cluster %q references unknown parent %q", c.ID, c.ParentID)
		}
		if !containsID(parent.ChildIDs, c.ID) {
			return nil, fmt.Errorf("cluster %q has parent %q that does not list it as a child", c.ID, c.ParentID)
		}
	}

	// Cycle check by walking parent links from every cluster.
	for id := range idx.clusters {
		seen := map[string]bool{}
		cur := id
		for cur != "" {
			if seen[cur] {
				return nil, fmt.Errorf("cluster hierarchy contains a cycle through %q", cur)
			}
			seen[cur] = true
			cur = idx.clusters[cur].ParentID
		}
	}

	return idx, nil
}

// Get returns the cluster with the given id. Unknown ids return the zero
// cluster and false.
func (idx *Index) Get(id string) (TopicCluster, bool) {
	c, ok := idx.clusters[id]
	return c, ok
}

// All returns every cluster in insertion order.
func (idx *Index) All() []TopicCluster {
	out := make([]TopicCluster, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.clusters[id])
	}
	return out
}

// Relationships describes a cluster's position in the hierarchy.
type Relationships struct {
	Parent   *TopicCluster  `json:"parent,omitempty"`
	Children []TopicCluster `json:"children"`
	Siblings []TopicCluster `json:"siblings"`
}

// Relationships resolves the parent, children, and siblings of a cluster.
// Siblings are the other children of the same parent. Unknown ids return
// an empty result.
func (idx *Index) Relationships(id string) Relationships {
	c, ok := idx.clusters[id]
	if !ok {
		return Relationships{Children: []TopicCluster{}, Siblings: []TopicCluster{}}
	}

	rel := Relationships{Children: []TopicCluster{}, Siblings: []TopicCluster{}}
	for _, childID := range c.ChildIDs {
		if child, ok := idx.clusters[childID]; ok {
			rel.Children = append(rel.Children, child)
		}
	}
	if c.ParentID != "" {
		if parent, ok := idx.clusters[c.ParentID]; ok {
			p := parent
			rel.Parent = &p
			for _, sibID := range parent.ChildIDs {
				if sibID == id {
					continue
				}
				if sib, ok := idx.clusters[sibID]; ok {
					rel.Siblings = append(rel.Siblings, sib)
				}
			}
		}
	}
	return rel
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
