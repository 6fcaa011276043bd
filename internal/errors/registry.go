package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration errors (B001-B049)
	// ============================================

	"B001": {
		Category: CategoryConfig,
		Message:  "derivation is not callable",
		Detail:   "A derivation entry has no function. The derivation degrades to a one-time-computed value that is never invalidated.",
	},
	"B002": {
		Category: CategoryConfig,
		Message:  "dependency analysis incomplete",
		Detail:   "The dependency analyzer could not determine the full dependency set for a derivation. Conditionally-read properties may be missing; declare dependencies explicitly if invalidation looks incomplete.",
	},
	"B003": {
		Category: CategoryConfig,
		Message:  "derivation dependency cycle",
		Detail:   "Derivations must form a DAG. A cycle between derivations would recurse indefinitely during invalidation, so assembly fails fast instead.",
	},
	"B004": {
		Category: CategoryConfig,
		Message:  "derivation name collides with a data property",
		Detail:   "A derivation and a plain data property share a name. The derivation shadows the property, which is almost never intended.",
	},

	// ============================================
	// Derivation execution errors (B050-B099)
	// ============================================

	"B050": {
		Category: CategoryDerivation,
		Message:  "derivation computation failed",
		Detail:   "The derivation function panicked or returned an error while computing. The accessor yields an absent value for this read; sibling derivations are unaffected.",
	},

	// ============================================
	// Shape errors (B100-B149)
	// ============================================

	"B100": {
		Category: CategoryShape,
		Message:  "collection-bound value is not a collection",
		Detail:   "A consumer bound to a derivation as a collection received a non-collection value. The consumer should clear its presentation and record an empty state.",
	},

	// ============================================
	// Structural errors (B150-B199)
	// ============================================

	"B150": {
		Category: CategoryStructural,
		Message:  "consumer callback panicked",
		Detail:   "An external collaborator's callback panicked during notification. Engine state remains consistent; the particular notification was lost.",
	},
}
