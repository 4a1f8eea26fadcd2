// Package affinity builds the feature-space matrices that drive hash learning.
//
// Build turns training features X (n×d) and an anchor mapping Z (n×m) into
// the d×d affinity A = (XᵀẐ)(XᵀẐ)ᵀ, where Ẑ is Z after NormalizeAnchors.
// Covariance produces the regularized feature covariance used as the metric
// of the generalized solver.
package affinity
