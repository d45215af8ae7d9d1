package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
)

// ParamsFormatVersion is the JSON parameter exchange version this package
// reads and writes.
const ParamsFormatVersion = "1.0"

// ParamsSpec is the metadata block of an exported parameter file.
type ParamsSpec struct {
	Name          string `json:"name"`
	FormatVersion string `json:"format_version"`
	Library       string `json:"library,omitempty"`
}

// LinearModelParams holds the learned parameters of a linear model. The JSON
// field names match what scikit-learn exporters produce, so models trained in
// Python can be loaded directly.
type LinearModelParams struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NFeatures    int       `json:"n_features"`
}

// ParamsEnvelope is an exported parameter file: a spec block plus the
// model-specific parameters, kept raw until the caller knows the model type.
type ParamsEnvelope struct {
	ModelSpec ParamsSpec      `json:"model_spec"`
	Params    json.RawMessage `json:"params"`
}

// LoadParamsFromFile reads a parameter envelope from a JSON file.
//
// Example:
//
//	env, err := model.LoadParamsFromFile("model_params.json")
func LoadParamsFromFile(filename string) (*ParamsEnvelope, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return LoadParamsFromReader(file)
}

// LoadParamsFromReader reads and validates a parameter envelope from r.
func LoadParamsFromReader(r io.Reader) (*ParamsEnvelope, error) {
	var env ParamsEnvelope
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if env.ModelSpec.FormatVersion == "" {
		return nil, lsqErrors.NewInvalidInputError("LoadParams", "format_version is required")
	}
	if env.ModelSpec.FormatVersion != ParamsFormatVersion {
		return nil, lsqErrors.NewInvalidInputErrorf("LoadParams",
			"unsupported format version: %s", env.ModelSpec.FormatVersion)
	}
	if env.ModelSpec.Name == "" {
		return nil, lsqErrors.NewInvalidInputError("LoadParams", "model name is required")
	}

	return &env, nil
}

// DecodeLinearModelParams extracts and validates linear model parameters from
// an envelope whose spec names the expected model.
func DecodeLinearModelParams(env *ParamsEnvelope, wantName string) (*LinearModelParams, error) {
	if env.ModelSpec.Name != wantName {
		return nil, lsqErrors.NewInvalidInputErrorf("DecodeLinearModelParams",
			"expected %s, got %s", wantName, env.ModelSpec.Name)
	}

	var params LinearModelParams
	if err := json.Unmarshal(env.Params, &params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}

	if len(params.Coefficients) == 0 {
		return nil, lsqErrors.NewInvalidInputError("DecodeLinearModelParams",
			"coefficients cannot be empty")
	}
	if params.NFeatures != len(params.Coefficients) {
		return nil, lsqErrors.NewInvalidInputErrorf("DecodeLinearModelParams",
			"n_features (%d) does not match coefficients length (%d)",
			params.NFeatures, len(params.Coefficients))
	}

	return &params, nil
}

// ExportParams writes a parameter envelope for the named model to w.
func ExportParams(modelName string, params interface{}, w io.Writer) error {
	env := ParamsEnvelope{
		ModelSpec: ParamsSpec{
			Name:          modelName,
			FormatVersion: ParamsFormatVersion,
		},
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	env.Params = paramsJSON

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&env); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	return nil
}
