// Command histboost_demo is a smoke-test harness: it loads a CSV of
// numeric feature columns plus a target column, bins every feature, fits
// one regression tree by gradient boosting's first-stage gradient/hessian
// (gradient -y, constant hessian), and logs whether the root is a leaf.
// It does not print per-row leaves or predictions.
// It exists to exercise bitset, histo, binning, splitter and grower end
// to end with a real (if small) dataset, the way extra_boost_main's
// "train"/"predict" modes exercise ebl end to end with npy files.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"log"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/histboost/golang/histboost/binning"
	"github.com/tarstars/histboost/golang/histboost/grower"
	"github.com/tarstars/histboost/golang/histboost/pool"
	"github.com/tarstars/histboost/golang/histboost/splitter"
)

// Config mirrors extra_boost_main's decodeConfig pattern: a flat JSON
// struct decoded with encoding/json, no config library.
type Config struct {
	FileNameCSV  string  `json:"filename_csv"`
	TargetColumn string  `json:"target_column"`
	MaxBins      int     `json:"max_bins"`
	MaxDepth     int     `json:"max_depth"`
	MinSamplesLeaf int   `json:"min_samples_leaf"`
	L2Regularization float64 `json:"l2_regularization"`
	ThreadsNum   int     `json:"threads_num"`
}

func decodeConfig(srcConfig string, out interface{}) error {
	file, err := os.Open(srcConfig)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	return decoder.Decode(out)
}

// loadCSV reads a header row plus data rows into a raw row-major
// (nSamples, nFeatures) *mat.Dense, echoing ebl's mat.Dense feature-matrix
// convention (component_dataset_test.go loads the same way), then
// flattens it to the row-major []float64 binning.MapToBins expects.
func loadCSV(path, targetColumn string) (raw *mat.Dense, data []float64, nSamples, nFeatures int, featureNames []string, target []float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, 0, nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, 0, 0, nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, 0, 0, nil, nil, os.ErrInvalid
	}

	header := rows[0]
	targetIdx := -1
	featureIdx := make([]int, 0, len(header))
	for idx, name := range header {
		if name == targetColumn {
			targetIdx = idx
		} else {
			featureNames = append(featureNames, name)
			featureIdx = append(featureIdx, idx)
		}
	}
	if targetIdx == -1 {
		return nil, nil, 0, 0, nil, nil, os.ErrInvalid
	}

	nSamples = len(rows) - 1
	nFeatures = len(featureIdx)
	raw = mat.NewDense(nSamples, nFeatures, nil)
	target = make([]float64, nSamples)

	for row := 0; row < nSamples; row++ {
		record := rows[row+1]
		v, err := strconv.ParseFloat(record[targetIdx], 64)
		if err != nil {
			return nil, nil, 0, 0, nil, nil, err
		}
		target[row] = v

		for col, idx := range featureIdx {
			v, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				v = math.NaN()
			}
			raw.Set(row, col, v)
		}
	}

	data = make([]float64, nSamples*nFeatures)
	for row := 0; row < nSamples; row++ {
		for col := 0; col < nFeatures; col++ {
			data[row*nFeatures+col] = raw.At(row, col)
		}
	}
	return raw, data, nSamples, nFeatures, featureNames, target, nil
}

func run(cfg Config) error {
	raw, data, nSamples, nFeatures, featureNames, target, err := loadCSV(cfg.FileNameCSV, cfg.TargetColumn)
	if err != nil {
		return err
	}
	log.Printf("loaded %d samples, %d features (%v)", nSamples, nFeatures, featureNames)

	const missingBin = 255
	maxBins := cfg.MaxBins
	if maxBins == 0 {
		maxBins = 32
	}

	thresholds := make([][]float64, nFeatures)
	nBinsNonMissing := make([]int, nFeatures)
	isCategorical := make([]bool, nFeatures)
	hasMissingValues := make([]bool, nFeatures)

	p := pool.New(pool.NumThreads(cfg.ThreadsNum))

	column := make([]float64, nSamples)
	for f := 0; f < nFeatures; f++ {
		for row := 0; row < nSamples; row++ {
			v := raw.At(row, f)
			column[row] = v
			if math.IsNaN(v) {
				hasMissingValues[f] = true
			}
		}
		thresholds[f] = binning.FindThresholds(column, maxBins, false)
		nBinsNonMissing[f] = len(thresholds[f]) + 1
	}

	binned := make([]uint8, nSamples*nFeatures)
	binning.MapToBins(data, nSamples, nFeatures, thresholds, isCategorical, missingBin, binned, p)

	gradients := make([]float64, nSamples)
	hessians := make([]float64, nSamples)
	for i, y := range target {
		gradients[i] = -y
		hessians[i] = 1
	}

	params := grower.Params{
		Params:     splitter.DefaultParams(),
		MaxDepth:   cfg.MaxDepth,
		ThreadsNum: cfg.ThreadsNum,
	}
	if cfg.MinSamplesLeaf > 0 {
		params.MinSamplesLeaf = uint32(cfg.MinSamplesLeaf)
	}
	if cfg.L2Regularization > 0 {
		params.L2Regularization = cfg.L2Regularization
	}
	params.HessiansAreConstant = true

	tree, err := grower.Train(params, binned, nSamples, nFeatures, nBinsNonMissing, missingBin, hasMissingValues, isCategorical, gradients, hessians)
	if err != nil {
		return err
	}

	log.Printf("grew tree, root is leaf: %v", tree.Root.IsLeaf)
	return nil
}

func main() {
	configPath := flag.String("config", "histboost_demo.json", "path to a JSON config file")
	flag.Parse()

	var cfg Config
	if err := decodeConfig(*configPath, &cfg); err != nil {
		log.Fatalf("decode config: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("run: %v", err)
	}
}
