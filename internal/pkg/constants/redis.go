package constants

// Redis key formats
const (
	// Simulator
	KeySimulationState   = "sim:state:%s" // Format: sim:state:{trip_id}
	KeySimulationPattern = "sim:state:*"

	// Penalty
	KeyTripPosition = "penalty:position:%s" // Format: penalty:position:{trip_id}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
	FieldEventID   = "event_id"
	FieldDriverID  = "driver_id"
	FieldCarID     = "car_id"
	FieldSpeed     = "speed"
	FieldGeohash   = "geohash"
)
