package main

import (
	"encoding/json"
	"fmt"
	"os"

	pelapi "pelagos/pkg/pelagos"
)

func loadRunRequestFromConfig(path string) (pelapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pelapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return pelapi.RunRequest{}, err
	}

	var req pelapi.RunRequest
	if v, ok := asString(raw["scenario"]); ok {
		req.Scenario = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asFloat64(raw["dt"]); ok {
		req.Dt = v
	}
	if v, ok := asFloat64(raw["t_save"]); ok {
		req.TSave = v
	}
	if v, ok := asFloat64(raw["warmup_years"]); ok {
		req.WarmupYears = v
	}
	if v, ok := asFloat64(raw["recovery_years"]); ok {
		req.RecoveryYears = v
	}
	if v, ok := asFloat64(raw["collapse_factor"]); ok {
		req.CollapseFactor = v
	}
	return req, nil
}

func loadOrDefaultRunRequest(configPath string) (pelapi.RunRequest, error) {
	if configPath == "" {
		return pelapi.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return pelapi.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func overrideFromFlags(req *pelapi.RunRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "scenario":
			req.Scenario = v.(string)
		case "seed":
			req.Seed = v.(int64)
		case "dt":
			req.Dt = v.(float64)
		case "t-save":
			req.TSave = v.(float64)
		case "warmup-years":
			req.WarmupYears = v.(float64)
		case "recovery-years":
			req.RecoveryYears = v.(float64)
		case "collapse-factor":
			req.CollapseFactor = v.(float64)
		}
	}
	if req.Scenario == "" {
		req.Scenario = "baseline"
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
