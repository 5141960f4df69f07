package models

// Reputation labels attached to lookup results.
const (
	ReputationKnownThreat = "Known Threat"
	ReputationClean       = "Clean"
	ReputationUnknown     = "Unknown"
)

// ReputationResult is the upstream geolocation document with a locally
// computed reputation label added. Upstream fields pass through untouched.
type ReputationResult map[string]interface{}
