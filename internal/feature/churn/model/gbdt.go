package model

import (
	"fmt"
	"math"
	"sort"

	"churn_backend/internal/feature/churn/domain"
)

// GBDTParams holds the boosting configuration. The defaults are fixed; there
// is no hyperparameter search.
type GBDTParams struct {
	Trees          int     `json:"trees"`
	MaxDepth       int     `json:"max_depth"`
	LearningRate   float64 `json:"learning_rate"`
	Lambda         float64 `json:"lambda"`
	MinChildWeight float64 `json:"min_child_weight"`
}

// DefaultGBDTParams returns the default boosting configuration.
func DefaultGBDTParams() GBDTParams {
	return GBDTParams{
		Trees:          100,
		MaxDepth:       6,
		LearningRate:   0.3,
		Lambda:         1.0,
		MinChildWeight: 0.1,
	}
}

// treeNode is one node of a regression tree. Internal nodes route on
// Feature < Threshold; leaves carry the weight added to the raw score.
type treeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Leaf      bool      `json:"leaf,omitempty"`
	Value     float64   `json:"value,omitempty"`
}

// GBDT is a gradient-boosted binary classifier trained with Newton steps on
// logistic loss. Splits are found by exact greedy search over all feature
// thresholds; there is no row or column subsampling, so training is
// deterministic for a given input.
type GBDT struct {
	Params GBDTParams  `json:"params"`
	Trees  []*treeNode `json:"trees"`
}

// NewGBDT creates an unfitted classifier with the given parameters.
func NewGBDT(params GBDTParams) *GBDT {
	return &GBDT{Params: params}
}

// Fit trains the ensemble on an encoded feature matrix and binary labels.
// It returns ErrTraining when the matrix is empty or ragged, the label vector
// length disagrees, or a label is outside {0,1}.
func (m *GBDT) Fit(matrix [][]float64, labels []int) error {
	if len(matrix) == 0 {
		return fmt.Errorf("%w: empty feature matrix", domain.ErrTraining)
	}
	if len(matrix) != len(labels) {
		return fmt.Errorf("%w: %d feature rows but %d labels", domain.ErrTraining, len(matrix), len(labels))
	}
	width := len(matrix[0])
	for i, row := range matrix {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", domain.ErrTraining, i, len(row), width)
		}
	}
	for i, y := range labels {
		if y != 0 && y != 1 {
			return fmt.Errorf("%w: label %d at row %d is not binary", domain.ErrTraining, y, i)
		}
	}

	n := len(matrix)
	// Raw scores start at logit(0.5) = 0.
	raw := make([]float64, n)
	grad := make([]float64, n)
	hess := make([]float64, n)

	m.Trees = m.Trees[:0]
	for round := 0; round < m.Params.Trees; round++ {
		for i := range raw {
			p := sigmoid(raw[i])
			grad[i] = p - float64(labels[i])
			hess[i] = p * (1 - p)
		}

		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		tree := m.buildNode(matrix, grad, hess, indices, 0)
		m.Trees = append(m.Trees, tree)

		for i, row := range matrix {
			raw[i] += tree.score(row)
		}
	}

	return nil
}

// buildNode grows one tree node over the given row subset.
func (m *GBDT) buildNode(matrix [][]float64, grad, hess []float64, indices []int, depth int) *treeNode {
	var sumG, sumH float64
	for _, i := range indices {
		sumG += grad[i]
		sumH += hess[i]
	}

	leaf := &treeNode{
		Leaf: true,
		// Newton step, scaled by the learning rate.
		Value: -sumG / (sumH + m.Params.Lambda) * m.Params.LearningRate,
	}
	if depth >= m.Params.MaxDepth || len(indices) < 2 {
		return leaf
	}

	feature, threshold, gain := m.bestSplit(matrix, grad, hess, indices, sumG, sumH)
	if gain <= 0 {
		return leaf
	}

	var left, right []int
	for _, i := range indices {
		if matrix[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      m.buildNode(matrix, grad, hess, left, depth+1),
		Right:     m.buildNode(matrix, grad, hess, right, depth+1),
	}
}

// bestSplit scans every feature and threshold for the split with the highest
// gain. Returns a non-positive gain when no admissible split exists.
func (m *GBDT) bestSplit(matrix [][]float64, grad, hess []float64, indices []int, sumG, sumH float64) (int, float64, float64) {
	const eps = 1e-12

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	parentScore := sumG * sumG / (sumH + m.Params.Lambda)
	width := len(matrix[indices[0]])

	sorted := make([]int, len(indices))
	for f := 0; f < width; f++ {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return matrix[sorted[a]][f] < matrix[sorted[b]][f]
		})

		var leftG, leftH float64
		for k := 0; k < len(sorted)-1; k++ {
			i := sorted[k]
			leftG += grad[i]
			leftH += hess[i]

			cur, next := matrix[i][f], matrix[sorted[k+1]][f]
			if cur == next {
				continue
			}
			rightG, rightH := sumG-leftG, sumH-leftH
			if leftH < m.Params.MinChildWeight || rightH < m.Params.MinChildWeight {
				continue
			}

			gain := 0.5 * (leftG*leftG/(leftH+m.Params.Lambda) +
				rightG*rightG/(rightH+m.Params.Lambda) -
				parentScore)
			if gain > bestGain+eps {
				bestFeature = f
				bestThreshold = (cur + next) / 2
				bestGain = gain
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

// score routes a row through the tree and returns the leaf weight.
func (t *treeNode) score(row []float64) float64 {
	node := t
	for !node.Leaf {
		if row[node.Feature] < node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// PredictProb returns the churn probability for an encoded row.
func (m *GBDT) PredictProb(row []float64) float64 {
	var raw float64
	for _, tree := range m.Trees {
		raw += tree.score(row)
	}
	return sigmoid(raw)
}

// Predict returns the binary churn decision for an encoded row, using the
// standard 0.5 probability threshold.
func (m *GBDT) Predict(row []float64) int {
	if m.PredictProb(row) >= 0.5 {
		return 1
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
