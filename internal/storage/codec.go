package storage

import (
	"encoding/json"
	"errors"

	"pelagos/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeTrajectory(points []model.TrajectoryPoint) ([]byte, error) {
	return json.Marshal(points)
}

func DecodeTrajectory(data []byte) ([]model.TrajectoryPoint, error) {
	var points []model.TrajectoryPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func EncodeScenarioSummary(s model.ScenarioSummary) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeScenarioSummary(data []byte) (model.ScenarioSummary, error) {
	var summary model.ScenarioSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.ScenarioSummary{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.ScenarioSummary{}, err
	}
	return summary, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
