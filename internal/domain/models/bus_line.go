package models

// BusLine binds one bus to a trip request. DriverMobile, LicensePlate and
// Seats are read-only projections from the driver/vehicle records and are
// refreshed on every write.
type BusLine struct {
	ID           int64  `json:"id"`
	TripID       int64  `json:"tripId"`
	VehicleID    int64  `json:"vehicleId"`
	DriverID     *int64 `json:"driverId,omitempty"`
	DriverName   string `json:"driverName,omitempty"`
	DriverMobile string `json:"driverMobile,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
	Seats        int    `json:"seats,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// BusLinePayload is the create/update body for a bus line. DriverID left
// nil defaults to the vehicle's registered driver.
type BusLinePayload struct {
	VehicleID int64  `json:"vehicleId" binding:"required"`
	DriverID  *int64 `json:"driverId"`
	Notes     string `json:"notes"`
}

// Vehicle is a bus from the fleet reference data.
type Vehicle struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LicensePlate string `json:"licensePlate"`
	Seats        int    `json:"seats"`
	DriverID     *int64 `json:"driverId,omitempty"`
	DriverName   string `json:"driverName,omitempty"`
	DriverMobile string `json:"driverMobile,omitempty"`
}

// School is a school reference record a trip may cover.
type School struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
