package model

// CanonicalID is a deterministic string identity that survives
// UUID/line/whitespace changes across revisions.
type CanonicalID string
