package domain

import (
	"slices"
	"time"
)

// HazardType is the kind of road hazard a driver reports.
type HazardType string

const (
	HazardPothole           HazardType = "pothole"
	HazardBrokenStreetlight HazardType = "broken_streetlight"
	HazardWaterlogging      HazardType = "waterlogging"
	HazardTrafficCongestion HazardType = "traffic_congestion"
	HazardAccident          HazardType = "accident"
	HazardRoadDebris        HazardType = "road_debris"
)

var hazardTypes = []HazardType{
	HazardAccident,
	HazardBrokenStreetlight,
	HazardPothole,
	HazardRoadDebris,
	HazardTrafficCongestion,
	HazardWaterlogging,
}

// HazardTypes returns the accepted hazard types in sorted order.
func HazardTypes() []HazardType {
	return slices.Clone(hazardTypes)
}

// Valid reports whether t is one of the accepted hazard types.
func (t HazardType) Valid() bool {
	return slices.Contains(hazardTypes, t)
}

// Hazard is a persisted hazard report. Rows are never updated or deleted.
type Hazard struct {
	ID              string     `json:"id"`
	DriverID        string     `json:"driver_id"`
	HazardType      HazardType `json:"hazard_type"`
	SeverityLevel   Severity   `json:"severity_level"`
	ConfidenceScore float64    `json:"confidence_score"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	PlaceName       string     `json:"place_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewHazard carries the fields written when a report is persisted.
type NewHazard struct {
	DriverID        string
	HazardType      HazardType
	SeverityLevel   Severity
	ConfidenceScore float64
	Latitude        float64
	Longitude       float64
	PlaceName       string
}

// ReportHazardRequest is the body of POST /api/report-hazard.
type ReportHazardRequest struct {
	DriverID   string     `json:"driver_id" validate:"required"`
	Latitude   *float64   `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude  *float64   `json:"longitude" validate:"required,gte=-180,lte=180"`
	HazardType HazardType `json:"hazard_type" validate:"required,hazard_type"`
}

// DefaultRadiusKm is the search radius used when a nearby query omits one.
const DefaultRadiusKm = 2.0

// NearbyHazardsRequest is the body of POST /api/nearby-hazards.
type NearbyHazardsRequest struct {
	DriverID  string   `json:"driver_id" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	RadiusKm  *float64 `json:"radius_km" validate:"omitempty,gte=0.1,lte=50"`
}

// Radius returns the requested radius or DefaultRadiusKm.
func (r NearbyHazardsRequest) Radius() float64 {
	if r.RadiusKm == nil {
		return DefaultRadiusKm
	}
	return *r.RadiusKm
}

// NearbyHazards is the response envelope for a radius search.
type NearbyHazards struct {
	TotalCount int      `json:"total_count"`
	RadiusKm   float64  `json:"radius_km"`
	Hazards    []Hazard `json:"hazards"`
}

// DriverHistory is one page of a driver's reports plus the total row count.
type DriverHistory struct {
	TotalCount int      `json:"total_count"`
	Hazards    []Hazard `json:"hazards"`
}
