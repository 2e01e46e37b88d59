package constants

// NATS subjects. Every subject ends in the key token used for ordering and filtering.
const (
	// Trip notifications (fleet manager -> simulator)
	SubjectTripCreated   = "fleet.trip.created.%s"   // Format: fleet.trip.created.{driver_id}
	SubjectTripCancelled = "fleet.trip.cancelled.%s" // Format: fleet.trip.cancelled.{trip_id}

	// Heartbeats (simulator -> penalty)
	SubjectCarPosition = "fleet.car.position.%s" // Format: fleet.car.position.{driver_id}

	// Penalty event log (estimator -> aggregator)
	SubjectPenaltyPoints = "fleet.penalty.points.%s" // Format: fleet.penalty.points.{driver_id}

	// Driver totals (aggregator -> downstream)
	SubjectDriverPenalty = "fleet.driver.penalty.%s" // Format: fleet.driver.penalty.{driver_id}
)

// Wildcard filters for stream and consumer configuration
const (
	SubjectTripCreatedAll   = "fleet.trip.created.*"
	SubjectTripCancelledAll = "fleet.trip.cancelled.*"
	SubjectCarPositionAll   = "fleet.car.position.*"
	SubjectPenaltyPointsAll = "fleet.penalty.points.*"
	SubjectDriverPenaltyAll = "fleet.driver.penalty.*"
)

// JetStream streams
const (
	StreamTrip          = "TRIP_STREAM"
	StreamPosition      = "POSITION_STREAM"
	StreamPenalty       = "PENALTY_STREAM"
	StreamDriverPenalty = "DRIVER_PENALTY_STREAM"
)

// JetStream durable consumers
const (
	ConsumerSimulatorTripCreated   = "simulator_trip_created"
	ConsumerSimulatorTripCancelled = "simulator_trip_cancelled"
	ConsumerPenaltyPosition        = "penalty_position"
	ConsumerPenaltyAggregator      = "penalty_aggregator"
)

// JetStream key-value buckets
const (
	BucketDriverPenaltyPoints = "driver-penalty-points"
)

// Message headers
const (
	HeaderEventType = "eventType"
	HeaderMsgID     = "Nats-Msg-Id"
)

// Event types carried in HeaderEventType
const (
	EventPositionUpdated    = "position.updated"
	EventTripCreated        = "trip.created"
	EventTripCancelled      = "trip.cancelled"
	EventPenaltyPoints      = "penalty.points"
	EventDriverPenaltyTotal = "driver.penalty.total"
)
