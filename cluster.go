package signalscan

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const (
	// maxClusters bounds the topic partition per run.
	maxClusters = 6
	// clusterSeed fixes the k-means RNG so identical input vectors produce
	// identical assignments across runs.
	clusterSeed = 42

	kmeansMaxIterations = 100
	kmeansTolerance     = 1e-4
)

// AssignClusters partitions item vectors into k = min(6, n) topic clusters.
// With one or zero vectors the engine is skipped entirely and every item is
// assigned cluster 0.
func AssignClusters(vectors [][]float64) []int {
	n := len(vectors)
	if n <= 1 {
		return make([]int, n)
	}
	k := maxClusters
	if n < k {
		k = n
	}
	return kmeans(vectors, k, clusterSeed)
}

// kmeans clusters vectors with k-means++ initialization and cosine distance.
func kmeans(vectors [][]float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))

	dim := len(vectors[0])
	data := mat.NewDense(len(vectors), dim, nil)
	for i, v := range vectors {
		data.SetRow(i, v)
	}

	centroids := initializeCentroids(data, k, rng)

	assignments := make([]int, len(vectors))
	for iteration := 0; iteration < kmeansMaxIterations; iteration++ {
		newAssignments := assignPoints(data, centroids)

		converged := true
		for i := range assignments {
			if assignments[i] != newAssignments[i] {
				converged = false
				break
			}
		}
		assignments = newAssignments
		if converged {
			break
		}

		newCentroids := updateCentroids(data, assignments, k)
		change := centroidChange(centroids, newCentroids)
		centroids = newCentroids
		if change < kmeansTolerance {
			break
		}
	}

	return assignments
}

// initializeCentroids picks k starting centroids with k-means++ weighting.
func initializeCentroids(data *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := data.Dims()
	centroids := mat.NewDense(k, d, nil)

	centroids.SetRow(0, data.RawRowView(rng.Intn(n)))

	for i := 1; i < k; i++ {
		distances := make([]float64, n)
		totalWeight := 0.0

		for j := 0; j < n; j++ {
			point := data.RawRowView(j)
			minDist := math.Inf(1)
			for c := 0; c < i; c++ {
				dist := 1.0 - cosineSimilarity(point, centroids.RawRowView(c))
				if dist < minDist {
					minDist = dist
				}
			}
			distances[j] = minDist * minDist
			totalWeight += distances[j]
		}

		if totalWeight == 0 {
			// All points identical; any choice works.
			centroids.SetRow(i, data.RawRowView(rng.Intn(n)))
			continue
		}

		target := rng.Float64() * totalWeight
		cumWeight := 0.0
		for j, dist := range distances {
			cumWeight += dist
			if cumWeight >= target {
				centroids.SetRow(i, data.RawRowView(j))
				break
			}
		}
	}

	return centroids
}

// assignPoints assigns each vector to its nearest centroid by cosine distance.
func assignPoints(data *mat.Dense, centroids *mat.Dense) []int {
	n, _ := data.Dims()
	k, _ := centroids.Dims()
	assignments := make([]int, n)

	for i := 0; i < n; i++ {
		point := data.RawRowView(i)
		minDist := math.Inf(1)
		best := 0
		for j := 0; j < k; j++ {
			dist := 1.0 - cosineSimilarity(point, centroids.RawRowView(j))
			if dist < minDist {
				minDist = dist
				best = j
			}
		}
		assignments[i] = best
	}

	return assignments
}

// updateCentroids recomputes each centroid as the mean of its members.
func updateCentroids(data *mat.Dense, assignments []int, k int) *mat.Dense {
	n, d := data.Dims()
	centroids := mat.NewDense(k, d, nil)
	counts := make([]int, k)

	for i := 0; i < n; i++ {
		cid := assignments[i]
		point := data.RawRowView(i)
		for j := 0; j < d; j++ {
			centroids.Set(cid, j, centroids.At(cid, j)+point[j])
		}
		counts[cid]++
	}

	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			for j := 0; j < d; j++ {
				centroids.Set(i, j, centroids.At(i, j)/float64(counts[i]))
			}
		}
	}

	return centroids
}

// centroidChange measures the mean cosine distance between old and new centroids.
func centroidChange(oldCentroids, newCentroids *mat.Dense) float64 {
	k, _ := oldCentroids.Dims()
	total := 0.0
	for i := 0; i < k; i++ {
		total += 1.0 - cosineSimilarity(oldCentroids.RawRowView(i), newCentroids.RawRowView(i))
	}
	return total / float64(k)
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	dotProduct := 0.0
	normA := 0.0
	normB := 0.0
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
