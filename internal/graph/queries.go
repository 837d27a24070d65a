package graph

const (
	getNodeQuery = `
		MATCH (n {id: $id})
		RETURN n.id AS id, labels(n)[0] AS label, properties(n) AS props
	`

	neighborsOutQuery = `
		MATCH (n {id: $id})-[r]->(m)
		WHERE $rel = "" OR type(r) = $rel
		RETURN type(r) AS relationship, m.id AS id, labels(m)[0] AS label,
		       properties(m) AS props, properties(r) AS edge_props
		ORDER BY relationship, id
	`

	neighborsInQuery = `
		MATCH (m)-[r]->(n {id: $id})
		WHERE $rel = "" OR type(r) = $rel
		RETURN type(r) AS relationship, m.id AS id, labels(m)[0] AS label,
		       properties(m) AS props, properties(r) AS edge_props
		ORDER BY relationship, id
	`

	// Label and relationship names cannot be parameterized in Cypher; the
	// callers interpolate them after validating against the closed sets.
	nodesByLabelQuery = `
		MATCH (n:%s)
		RETURN n.id AS id, labels(n)[0] AS label, properties(n) AS props
		ORDER BY n.id
	`

	saveNodeQuery = `
		MERGE (n:%s {id: $id})
		SET n += $props
		RETURN n.id AS id
	`

	saveEdgeQuery = `
		MATCH (a {id: $source})
		MATCH (b {id: $target})
		MERGE (a)-[r:%s]->(b)
		SET r += $props
		RETURN a.id AS id
	`

	nodeStatsQuery = `
		MATCH (n)
		RETURN labels(n)[0] AS label, count(*) AS count
	`

	edgeStatsQuery = `
		MATCH ()-[r]->()
		RETURN type(r) AS relationship, count(*) AS count
	`
)
