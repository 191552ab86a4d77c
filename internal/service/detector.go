package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"arbiterhq.io/arbiter/internal/model"
)

// SimilarityThreshold is the Jaccard score at or above which two
// recommendations are considered materially the same position.
const SimilarityThreshold = 0.8

// FingerprintLength is the hex prefix length a conflict fingerprint is
// truncated to.
const FingerprintLength = 16

// conflictTypePriority is scanned in order against both recommendations'
// categories; first match wins.
var conflictTypePriority = []model.ConflictType{
	model.ConflictTypeArchitecture,
	model.ConflictTypeSecurity,
	model.ConflictTypePerformance,
	model.ConflictTypeScope,
	model.ConflictTypePriority,
	model.ConflictTypeTechnicalChoice,
}

// ConflictDetector decides whether two recommendations constitute a material
// conflict. Pure and synchronous: identical inputs always yield identical
// conflicts, including the fingerprint.
type ConflictDetector interface {
	Detect(a, b model.Recommendation) *model.Conflict
}

type conflictDetector struct{}

func NewConflictDetector() ConflictDetector {
	return &conflictDetector{}
}

func (d *conflictDetector) Detect(a, b model.Recommendation) *model.Conflict {
	// Different subjects cannot conflict.
	if a.ArtifactID != b.ArtifactID {
		return nil
	}

	similarity := TokenSimilarity(a.Text, b.Text)
	if similarity >= SimilarityThreshold {
		return nil
	}

	conflictType := classifyConflict(a.Category, b.Category)

	return &model.Conflict{
		Fingerprint:     ConflictFingerprint(a.ActorID, b.ActorID, a.ArtifactID, conflictType),
		ActorIDs:        [2]string{a.ActorID, b.ActorID},
		ArtifactID:      a.ArtifactID,
		Type:            conflictType,
		SimilarityScore: similarity,
		Recommendations: [2]model.Recommendation{a, b},
	}
}

func classifyConflict(categoryA, categoryB string) model.ConflictType {
	a := strings.ToLower(strings.TrimSpace(categoryA))
	b := strings.ToLower(strings.TrimSpace(categoryB))

	for _, candidate := range conflictTypePriority {
		if a == string(candidate) || b == string(candidate) {
			return candidate
		}
	}
	return model.ConflictTypeApproach
}

// ConflictFingerprint derives the stable identity for a conflict from the
// sorted actor pair, artifact and conflict type. Swapping actor order yields
// the same fingerprint.
func ConflictFingerprint(actorA, actorB, artifactID string, conflictType model.ConflictType) string {
	first, second := actorA, actorB
	if second < first {
		first, second = second, first
	}

	sum := sha256.Sum256([]byte(first + "|" + second + "|" + artifactID + "|" + string(conflictType)))
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}
