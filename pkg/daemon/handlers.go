package daemon

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battscan/battscan/pkg/analyzer"
	"github.com/battscan/battscan/pkg/config"
	"github.com/battscan/battscan/pkg/types"
	"github.com/battscan/battscan/pkg/version"
)

func postAnalyze(c *gin.Context) {
	var data types.VehicleDiagnosticData
	if err := c.BindJSON(&data); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// Each analysis is an independent unit of work; thresholds are read
	// fresh so runtime updates and SIGHUP reloads apply immediately.
	anl := analyzer.New()
	anl.Thresholds = conf.Thresholds()

	report, err := anl.Analyze(&data)
	if err != nil {
		// Structurally incomplete snapshots are a caller problem.
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"vehicle":    report.VehicleID,
		"soh":        report.StateOfHealthPercent,
		"cycles":     report.ChargeCycleCount,
		"anomalies":  len(report.Anomalies),
		"confidence": report.ConfidenceScore,
	}).Info("analysis complete")

	c.IndentedJSON(http.StatusOK, report)
}

func getThresholds(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, conf.Thresholds())
}

func setThresholds(c *gin.Context) {
	var raw config.RawFileConfig
	if err := c.BindJSON(&raw); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// Only the keys present in the request change.
	if raw.VoltageImbalanceVolts != nil {
		conf.SetVoltageImbalanceVolts(*raw.VoltageImbalanceVolts)
	}
	if raw.CellOverheatCelsius != nil {
		conf.SetCellOverheatCelsius(*raw.CellOverheatCelsius)
	}
	if raw.HighResistanceMilliohms != nil {
		conf.SetHighResistanceMilliohms(*raw.HighResistanceMilliohms)
	}
	if raw.AcceleratedDegradationPerYear != nil {
		conf.SetAcceleratedDegradationPerYear(*raw.AcceleratedDegradationPerYear)
	}
	if raw.MinCyclesForAnalysis != nil {
		conf.SetMinCyclesForAnalysis(*raw.MinCyclesForAnalysis)
	}

	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.WithFields(conf.LogrusFields()).Info("thresholds updated")

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
