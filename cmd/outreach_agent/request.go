package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/outreach-composer/internal/config"
	"github.com/jonathan/outreach-composer/internal/schemas"
	"github.com/jonathan/outreach-composer/internal/types"
)

// resolveConfig layers flag values over an optional config file, then
// built-in defaults.
func resolveConfig(configPath string, flags config.Config) (config.Config, error) {
	result := flags
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return result, err
		}
		if err := fileCfg.Validate(); err != nil {
			return result, err
		}
		result = result.MergeWithDefaults(*fileCfg)
	}
	return result.MergeWithDefaults(config.Config{
		LogPath: "logs/requests.ndjson",
		Port:    8080,
	}), nil
}

// loadGenerateRequest builds a request either from a single request file
// or from separate sender and target profile files. Request files are
// checked against the JSON Schema before decoding.
func loadGenerateRequest(requestPath, myProfilePath, targetProfilePath string, hooks []string) (types.GenerateRequest, error) {
	var req types.GenerateRequest

	switch {
	case requestPath != "":
		if schemaPath := schemas.ResolveSchemaPath(schemas.GenerateRequestSchema); schemaPath != "" {
			if err := schemas.ValidateFile(schemaPath, requestPath); err != nil {
				return req, fmt.Errorf("request file failed schema validation: %w", err)
			}
		}
		if err := decodeJSONFile(requestPath, &req); err != nil {
			return req, err
		}
	case myProfilePath != "" && targetProfilePath != "":
		if err := decodeJSONFile(myProfilePath, &req.MyProfile); err != nil {
			return req, err
		}
		if err := decodeJSONFile(targetProfilePath, &req.TargetProfile); err != nil {
			return req, err
		}
	default:
		return req, fmt.Errorf("either --request or both --my-profile and --target-profile are required")
	}

	req.Hooks = append(req.Hooks, hooks...)

	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

func decodeJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
