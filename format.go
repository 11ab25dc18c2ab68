// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import "fmt"

// Format renders the field's scaled value together with its unit tag, in
// the same human-readable shapes as original_source/src/utils.cpp's
// format_value/format_time_of_day/format_flight_level: seconds as
// HH:MM:SS.sss, flight level as FLnnn, degrees with six decimal places, and
// the remaining numeric units (NM, ft, kts, m/s, none) in Go's %g form plus
// suffix, so their precision is not fixed. It is presentation-only and never
// changes the field's stored raw value (§4.4's LSB-scaling rule).
func (f Field) Format() string {
	switch f.Value.Kind {
	case KindBool:
		return fmt.Sprintf("%t", f.Value.Bool)
	case KindString:
		return f.Value.Str
	case KindBytes:
		return fmt.Sprintf("% X", f.Value.Bytes)
	}

	scaled, ok := f.Scaled()
	if !ok {
		return f.Value.String()
	}

	switch f.Unit {
	case UnitSeconds:
		return formatTimeOfDay(scaled)
	case UnitFlightLevel:
		return fmt.Sprintf("FL%03d", int(scaled))
	case UnitNauticalMiles:
		return fmt.Sprintf("%g NM", scaled)
	case UnitDegrees:
		return fmt.Sprintf("%.6f°", scaled)
	case UnitFeet:
		return fmt.Sprintf("%g ft", scaled)
	case UnitKnots:
		return fmt.Sprintf("%g kts", scaled)
	case UnitMetresPerSecond:
		return fmt.Sprintf("%g m/s", scaled)
	default:
		return fmt.Sprintf("%g", scaled)
	}
}

// formatTimeOfDay renders a seconds-since-midnight quantity as
// HH:MM:SS.sss, matching format_time_of_day's fixed(3) seconds field.
func formatTimeOfDay(seconds float64) string {
	hours := int(seconds/3600) % 24
	minutes := int((seconds - float64(hours)*3600) / 60)
	sec := seconds - float64(hours)*3600 - float64(minutes)*60
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, sec)
}
