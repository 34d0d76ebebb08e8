// Package assemble materializes sampled blocks from correlated data and
// orchestrates the full recovery → correlation → assembly pipeline.
package assemble

import (
	"github.com/scigrid/dpclient/pkg/model"
)

// BuildSampledBlock materializes the dense per-source table of one
// correlated block. The resulting block shares the correlated block's
// descriptor and ordering sequence.
func BuildSampledBlock(raw model.RawCorrelatedData) (*model.UniformSamplingBlock, error) {
	block := model.NewUniformSamplingBlock(raw.Timestamps(), raw.Sequence())
	for _, bucket := range raw.Buckets() {
		if err := block.AddSeries(bucket.SourceName, bucket.DataType, bucket.Values); err != nil {
			return nil, err
		}
	}
	return block, nil
}
