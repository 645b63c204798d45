package triage

import "fmt"

// Supported point-of-care device types.
const (
	DeviceStethoscope     = "digital_stethoscope"
	DeviceHemoglobinMeter = "hemoglobin_meter"
	DeviceBPMonitor       = "bp_monitor"
)

// StethoscopeReading carries cardiac and pulmonary auscultation output.
type StethoscopeReading struct {
	HeartRate  int    `json:"heart_rate"`
	Rhythm     string `json:"rhythm"`
	LungSounds string `json:"lung_sounds"`
}

// HemoglobinReading carries a point-of-care blood test result in g/dL.
type HemoglobinReading struct {
	Hemoglobin float64 `json:"hemoglobin"`
	Hematocrit float64 `json:"hematocrit"`
}

// BPReading carries a cuff measurement in mmHg.
type BPReading struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
	Pulse     int `json:"pulse"`
}

// DeviceReading is a tagged union: DeviceType names which payload must be
// set, and exactly that payload must be present.
type DeviceReading struct {
	DeviceType      string              `json:"device_type"`
	Stethoscope     *StethoscopeReading `json:"stethoscope,omitempty"`
	HemoglobinMeter *HemoglobinReading  `json:"hemoglobin_meter,omitempty"`
	BPMonitor       *BPReading          `json:"bp_monitor,omitempty"`
}

// Validate checks the tag against the payload.
func (r *DeviceReading) Validate() error {
	switch r.DeviceType {
	case DeviceStethoscope:
		if r.Stethoscope == nil {
			return fmt.Errorf("stethoscope payload is required for device_type %s", r.DeviceType)
		}
		if r.Stethoscope.HeartRate <= 0 {
			return fmt.Errorf("heart_rate must be positive")
		}
	case DeviceHemoglobinMeter:
		if r.HemoglobinMeter == nil {
			return fmt.Errorf("hemoglobin_meter payload is required for device_type %s", r.DeviceType)
		}
		if r.HemoglobinMeter.Hemoglobin <= 0 {
			return fmt.Errorf("hemoglobin must be positive")
		}
	case DeviceBPMonitor:
		if r.BPMonitor == nil {
			return fmt.Errorf("bp_monitor payload is required for device_type %s", r.DeviceType)
		}
		if r.BPMonitor.Systolic <= 0 || r.BPMonitor.Diastolic <= 0 {
			return fmt.Errorf("systolic and diastolic must be positive")
		}
	case "":
		return fmt.Errorf("device_type is required")
	default:
		return fmt.Errorf("unsupported device_type %q", r.DeviceType)
	}
	return nil
}

// Vitals folds the reading into the sparse vital-sign form used by the
// assessor. Only the fields the device actually measures are populated.
func (r *DeviceReading) Vitals() VitalSigns {
	var v VitalSigns
	switch r.DeviceType {
	case DeviceStethoscope:
		hr := r.Stethoscope.HeartRate
		v.HeartRate = &hr
	case DeviceHemoglobinMeter:
		hb := r.HemoglobinMeter.Hemoglobin
		v.Hemoglobin = &hb
	case DeviceBPMonitor:
		sys, dia := r.BPMonitor.Systolic, r.BPMonitor.Diastolic
		v.Systolic = &sys
		v.Diastolic = &dia
		if r.BPMonitor.Pulse > 0 {
			pulse := r.BPMonitor.Pulse
			v.HeartRate = &pulse
		}
	}
	return v
}

// Summary renders the measured values for the health record description.
func (r *DeviceReading) Summary() string {
	switch r.DeviceType {
	case DeviceStethoscope:
		return fmt.Sprintf("HR %d bpm, rhythm %s, lung sounds %s",
			r.Stethoscope.HeartRate, r.Stethoscope.Rhythm, r.Stethoscope.LungSounds)
	case DeviceHemoglobinMeter:
		return fmt.Sprintf("Hb %.1f g/dL, hematocrit %.1f%%",
			r.HemoglobinMeter.Hemoglobin, r.HemoglobinMeter.Hematocrit)
	case DeviceBPMonitor:
		return fmt.Sprintf("BP %d/%d mmHg, pulse %d bpm",
			r.BPMonitor.Systolic, r.BPMonitor.Diastolic, r.BPMonitor.Pulse)
	}
	return ""
}
