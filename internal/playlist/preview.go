package playlist

// Sample pairs a path entry with its rewritten form, for the pre-batch
// preview shown to the operator.
type Sample struct {
	Before string
	After  string
}

// PreviewSamples returns up to max before/after pairs for the path entries
// in content, using rw's prefix mapping. Directives and blank lines are not
// sampled.
func PreviewSamples(content string, rw *Rewriter, max int) []Sample {
	var samples []Sample
	for _, line := range SplitLines(content) {
		if len(samples) >= max {
			break
		}
		if Classify(line) != LinePathEntry {
			continue
		}
		samples = append(samples, Sample{Before: line, After: rw.RewritePath(line)})
	}
	return samples
}
