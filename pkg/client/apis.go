package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/battscan/battscan/pkg/analyzer"
	"github.com/battscan/battscan/pkg/config"
	"github.com/battscan/battscan/pkg/types"
)

// Analyze sends one diagnostic snapshot to the daemon and returns its report.
func (c *Client) Analyze(data *types.VehicleDiagnosticData) (*types.BatteryHealthReport, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to marshal diagnostic data")
	}

	ret, err := c.Post("/analyze", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to analyze battery health")
	}

	report := &types.BatteryHealthReport{}
	if err := json.Unmarshal([]byte(ret), report); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal health report")
	}
	return report, nil
}

// GetThresholds returns the daemon's current analysis thresholds.
func (c *Client) GetThresholds() (analyzer.Thresholds, error) {
	var th analyzer.Thresholds

	ret, err := c.Get("/thresholds")
	if err != nil {
		return th, pkgerrors.Wrap(err, "failed to get thresholds")
	}

	if err := json.Unmarshal([]byte(ret), &th); err != nil {
		return th, pkgerrors.Wrap(err, "failed to unmarshal thresholds")
	}
	return th, nil
}

// SetThresholds updates the daemon's analysis thresholds. Only the non-nil
// fields change.
func (c *Client) SetThresholds(raw config.RawFileConfig) (string, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to marshal thresholds")
	}
	return c.Put("/thresholds", string(payload))
}

// GetVersion returns the daemon's version.
func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to get daemon version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrap(err, "failed to unmarshal version")
	}
	return v, nil
}
