// Package anchor builds the anchor mapping Z consumed by affinity.Build.
//
// Train picks m anchor points with Lloyd's k-means; Map links every sample
// to its s nearest anchors with Gaussian weights, producing a sparse,
// row-stochastic n×m matrix.
package anchor
