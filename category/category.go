// Package category names the training/inference contract a learned
// bag-of-tokens category classifier would implement. Per spec.md §1,
// the classifier is out of the core's scope — only its interface is
// stated, grounded on original_source/learn_categories.py's Naive
// Bayes sketch. No training loop or inference body is implemented
// here.
package category

// TrainingExample is one labeled observation a Classifier's training
// procedure would consume.
type TrainingExample struct {
	Tokens []string
	Label  string
}

// Classifier assigns one of a fixed set of labels to a token sequence,
// with a confidence score. No implementation is provided; callers
// needing this functionality must supply their own Classifier.
type Classifier interface {
	Classify(tokens []string) (label string, score float64, err error)
}
