package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/model"
	"github.com/scigrid/dpclient/pkg/query"
)

// Suite is the YAML test-suite file consumed by dpbench.
type Suite struct {
	Requests []SuiteRequest `yaml:"requests"`
}

// SuiteRequest is one request entry in a suite file. Begin and End use
// RFC 3339. An absent id gets a generated one.
type SuiteRequest struct {
	ID              string    `yaml:"id"`
	Sources         []string  `yaml:"sources"`
	Begin           time.Time `yaml:"begin"`
	End             time.Time `yaml:"end"`
	Stream          string    `yaml:"stream"`
	Decomposition   string    `yaml:"decomposition"`
	StreamCount     int       `yaml:"stream_count"`
	ToleratePartial bool      `yaml:"tolerate_partial"`
	StrictDomains   bool      `yaml:"strict_domains"`
}

func loadSuite(path string) (*Suite, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, dperror.Wrap(dperror.KindConfig, err, fmt.Sprintf("failed to read suite file %s", path))
	}

	suite := &Suite{}
	if err := yaml.UnmarshalStrict(buff, suite); err != nil {
		return nil, dperror.Wrap(dperror.KindConfig, err, fmt.Sprintf("failed to parse suite file %s", path))
	}
	if len(suite.Requests) == 0 {
		return nil, dperror.Newf(dperror.KindConfig, "suite file %s names no requests", path)
	}
	return suite, nil
}

// toRequest converts a suite entry into a validated pipeline request.
func (sr SuiteRequest) toRequest() (query.Request, error) {
	req := query.Request{
		ID:          sr.ID,
		Sources:     sr.Sources,
		Range:       model.TimeInterval{Begin: sr.Begin, End: sr.End},
		StreamCount: sr.StreamCount,
		Options: query.Options{
			ToleratePartial: sr.ToleratePartial,
			StrictDomains:   sr.StrictDomains,
		},
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.StreamCount == 0 {
		req.StreamCount = 1
	}

	switch sr.Stream {
	case "", "server-stream":
		req.Stream = query.StreamServer
	case "unary":
		req.Stream = query.StreamUnary
	case "bidirectional":
		req.Stream = query.StreamBidi
	default:
		return query.Request{}, dperror.Newf(dperror.KindConfig, "request %s: unknown stream type %q", req.ID, sr.Stream)
	}

	switch sr.Decomposition {
	case "", "none":
		req.Decomp = query.DecompNone
	case "horizontal":
		req.Decomp = query.DecompHorizontal
	case "vertical":
		req.Decomp = query.DecompVertical
	case "grid":
		req.Decomp = query.DecompGrid
	default:
		return query.Request{}, dperror.Newf(dperror.KindConfig, "request %s: unknown decomposition %q", req.ID, sr.Decomposition)
	}

	return req, req.Validate()
}

// configName labels the request's pipeline configuration for the score board.
func (sr SuiteRequest) configName() string {
	req, err := sr.toRequest()
	if err != nil {
		return "invalid"
	}
	return fmt.Sprintf("%s/%s/%d", req.Stream, req.Decomp, req.StreamCount)
}
