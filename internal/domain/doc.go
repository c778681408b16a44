// Package domain models road hazard reports and driver profile settings.
//
// # Hazard Types
//
// Drivers report one of a fixed set of hazard types:
//
//	pothole, broken_streetlight, waterlogging, traffic_congestion, accident, road_debris
//
// Anything else is rejected at the request boundary. [Classify] still accepts
// unknown types and treats them as medium so that stored rows written by older
// clients never break classification.
//
// # Confidence
//
// A confidence score is a real number in [0, 1] describing how certain the
// detector is that the hazard exists. Scores come from a [ConfidenceScorer].
// The only implementation today is [MockScorer], which draws a uniform value
// from a configured range and rounds it to four decimal places. A real
// detector receives the raw sensor frame and must stay within [0, 1].
//
// # Severity Classification
//
// Severity is an ordinal label (low < medium < high < critical) derived from
// the hazard type and the confidence score:
//
//	accident            critical
//	pothole             high
//	waterlogging        high
//	traffic_congestion  medium
//	broken_streetlight  medium
//	road_debris         medium
//	(unknown)           medium
//
// A confidence of 0.92 or more moves the base one step towards critical; a
// confidence below 0.80 moves it one step towards low. The scale saturates at
// both ends.
//
// # Driver Settings
//
// Settings are created implicitly on the first write. Reads for drivers
// without a row return [DefaultSettings] instead of signalling "not found".
// Updates are partial: only the fields present in a [SettingsPatch] change.
package domain
