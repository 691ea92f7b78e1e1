package network

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Warning codes. None of them stop a run; each marks a place where a
// documented default or fallback was used instead of configured data.
const (
	WarnMissingOrderProfile    = "missing_order_profile"
	WarnMalformedDistribution  = "malformed_distribution"
	WarnMissingPolicyValues    = "missing_policy_values"
	WarnMissingWarehousing     = "missing_warehousing"
	WarnMissingTransportation  = "missing_transportation"
	WarnMissingVehicleCapacity = "missing_vehicle_capacity"
	WarnUnknownTimeUnit        = "unknown_time_unit"
	WarnUnknownPolicy          = "unknown_production_policy"
	WarnMissingBOM             = "missing_bom"
	WarnMalformedBOM           = "malformed_bom"
	WarnUntrackedKey           = "untracked_key"
	WarnMalformedInputFactor   = "malformed_input_factor"
	WarnLegacyScenario         = "legacy_scenario"
	WarnTooManyScenarios       = "too_many_scenarios"
)

// Warning is a structured, non-fatal diagnostic.
type Warning struct {
	Code    string `json:"code"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Code, w.Subject, w.Message)
}

// Diagnostics collects warnings, dropping repeats of the same code and subject.
// Not safe for concurrent use.
type Diagnostics struct {
	list []Warning
	seen map[string]bool
}

// Add records a warning unless an identical code/subject pair was already recorded.
func (d *Diagnostics) Add(code, subject, format string, args ...any) {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	id := code + "\x00" + subject
	if d.seen[id] {
		return
	}
	d.seen[id] = true
	w := Warning{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
	logrus.Debugf("network: %s", w)
	d.list = append(d.list, w)
}

// Warnings returns the recorded warnings in insertion order.
func (d *Diagnostics) Warnings() []Warning {
	out := make([]Warning, len(d.list))
	copy(out, d.list)
	return out
}
