package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"weatherseed/internal/search"
	"weatherseed/internal/weather"
	"weatherseed/internal/xxhash32"
)

//go:embed schemas/search_request.schema.json
var schemaFS embed.FS

var (
	requestSchemaOnce sync.Once
	requestSchema     *jsonschema.Schema
	requestSchemaErr  error
)

func compiledRequestSchema() (*jsonschema.Schema, error) {
	requestSchemaOnce.Do(func() {
		raw, err := schemaFS.ReadFile("schemas/search_request.schema.json")
		if err != nil {
			requestSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("search_request.schema.json", bytes.NewReader(raw)); err != nil {
			requestSchemaErr = err
			return
		}
		requestSchema, requestSchemaErr = c.Compile("search_request.schema.json")
	})
	return requestSchema, requestSchemaErr
}

// SearchRequest is the JSON wire shape of a search request, per the
// external interface contract.
type SearchRequest struct {
	StartSeed         int32               `json:"startSeed"`
	EndSeed           int32               `json:"endSeed"`
	UseLegacyRandom   bool                `json:"useLegacyRandom"`
	WeatherConditions []weather.Condition `json:"weatherConditions"`
	OutputLimit       int                 `json:"outputLimit"`
}

// DecodeSearchRequest schema-validates raw JSON, unmarshals it, and
// re-validates the cross-field invariants the schema can't express:
// startSeed < endSeed, endSeed <= MaxSeed, and output limit >= 1.
// The external contract is strict about equality (startSeed <
// endSeed), stricter than the core's own Request.Validate, which
// permits a single-seed scan.
func DecodeSearchRequest(data []byte) (SearchRequest, error) {
	var req SearchRequest

	schema, err := compiledRequestSchema()
	if err != nil {
		return req, Internal(fmt.Sprintf("compile request schema: %v", err))
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return req, Invalid(fmt.Sprintf("invalid JSON: %v", err))
	}
	if err := schema.Validate(doc); err != nil {
		return req, Invalid(fmt.Sprintf("schema validation failed: %v", err))
	}

	if err := json.Unmarshal(data, &req); err != nil {
		return req, Invalid(fmt.Sprintf("invalid JSON: %v", err))
	}

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// Validate checks the invariants from spec.md section 6 that a JSON
// Schema cannot express cleanly.
func (r SearchRequest) Validate() error {
	if r.StartSeed >= r.EndSeed {
		return Invalid("startSeed must be less than endSeed")
	}
	if r.EndSeed > search.MaxSeed {
		return Invalid(fmt.Sprintf("endSeed %d exceeds max seed %d", r.EndSeed, search.MaxSeed))
	}
	if r.StartSeed < 0 {
		return Invalid("startSeed must be >= 0")
	}
	if r.OutputLimit < 1 {
		return Invalid("outputLimit must be >= 1")
	}
	for i, c := range r.WeatherConditions {
		if err := c.Validate(); err != nil {
			return Invalid(fmt.Sprintf("weatherConditions[%d]: %v", i, err))
		}
	}
	return nil
}

// Hash returns a short, stable fingerprint of r's fields, used as the
// checkpoint store's key for finding an earlier run with the same
// parameters. It is
// not a security-sensitive hash, only a cheap way to recognize "this
// is the same request" across process restarts.
func (r SearchRequest) Hash() string {
	data, _ := json.Marshal(r)
	return fmt.Sprintf("%08x", uint32(xxhash32.Bytes(data)))
}

// ToSearchRequest converts the wire shape to the core driver's
// Request. workers overrides the automatic worker-count policy; pass
// 0 to let the driver choose. policy overrides the default
// worker/progress thresholds; pass nil to use search.DefaultPolicy.
func (r SearchRequest) ToSearchRequest(workers int, policy *search.Policy) search.Request {
	return search.Request{
		Start:       r.StartSeed,
		End:         r.EndSeed,
		Legacy:      r.UseLegacyRandom,
		Conditions:  r.WeatherConditions,
		OutputLimit: r.OutputLimit,
		Workers:     workers,
		Policy:      policy,
	}
}
