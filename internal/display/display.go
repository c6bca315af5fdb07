// Package display provides human-readable names for machine codes.
//
// Code is for machines, words are for humans: use these in CLI output and
// reports, keep the raw codes for JSON fields, map keys and comparisons.
package display

// --- Learners ---

var learners = map[string]string{
	"xsit":             "Cross-situational",
	"pursuit":          "Pursuit",
	"pursuit-sampling": "Pursuit (sampling)",
	"pbv":              "Propose-but-Verify",
}

// Learner returns the human-readable name for a learner kind.
// Unknown kinds are returned as-is.
func Learner(kind string) string {
	if name, ok := learners[kind]; ok {
		return name
	}
	return kind
}

// LearnerWithCode returns "Propose-but-Verify (pbv)" format.
func LearnerWithCode(kind string) string {
	if name, ok := learners[kind]; ok {
		return name + " (" + kind + ")"
	}
	return kind
}

// --- Parameters ---

var params = map[string]string{
	"smoothing":     "Smoothing (lambda)",
	"beta":          "Meaning space size (beta)",
	"threshold":     "Threshold (tau)",
	"learning_rate": "Learning rate (gamma)",
	"policy":        "Update policy",
	"alpha":         "Recall, verified (alpha)",
	"alpha_naught":  "Recall, unverified (alpha0)",
}

// Param returns the human-readable name for a parameter key.
// "learning_rate" -> "Learning rate (gamma)".
func Param(key string) string {
	if name, ok := params[key]; ok {
		return name
	}
	return key
}

// --- Curriculum order ---

// Order names the observation order of a run.
func Order(shuffled bool) string {
	if shuffled {
		return "shuffled"
	}
	return "given"
}
