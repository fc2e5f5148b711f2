// Package sulcigo extracts folds from a triangulated cortical surface
// mesh and identifies named sulci within them.
//
// The pipeline operates on parallel per-vertex arrays over one mesh:
//
//	depth + adjacency          → ExtractFolds     → fold IDs
//	depth + points + fold IDs  → ExtractSubfolds  → basin IDs
//	labels + fold IDs + protocol → IdentifySulci  → sulcus IDs
//
// Folds are the connected regions of vertices deeper than a threshold
// derived from the depth histogram. Sulci are folds (or parts of folds)
// matched against an anatomical labeling protocol by the label pairs
// that meet at their boundaries; see the protocol package for the DKT
// protocol definitions.
//
// All operations are pure compute over in-memory arrays. Inputs are
// treated as read-only and every call returns freshly allocated result
// arrays.
package sulcigo
