package trace

// LogLevel controls how much a sweep records.
type LogLevel string

const (
	// LogLevelNone records statistics only (zero overhead).
	LogLevelNone LogLevel = "none"
	// LogLevelFull records order logs, inventory snapshots and production/flow/trip logs.
	LogLevelFull LogLevel = "full"
)

// validLogLevels maps accepted log level strings.
var validLogLevels = map[LogLevel]bool{
	LogLevelNone: true,
	LogLevelFull: true,
	"":           true, // empty defaults to none
}

// IsValidLogLevel returns true if the given level string is a recognized log level.
func IsValidLogLevel(level string) bool {
	return validLogLevels[LogLevel(level)]
}

// LogConfig selects which records one replication collects.
type LogConfig struct {
	Orders    bool
	Snapshots bool
	Details   bool // production, product flow
}

// Enabled reports whether any record kind is collected.
func (c LogConfig) Enabled() bool {
	return c.Orders || c.Snapshots || c.Details
}

// SimulationLog collects the records of one replication.
type SimulationLog struct {
	Config     LogConfig
	Orders     []OrderRecord
	Snapshots  []InventorySnapshot
	Production []ProductionRecord
	Flows      []FlowRecord
	Trips      []TripRecord
}

// NewSimulationLog creates a SimulationLog ready for recording.
func NewSimulationLog(config LogConfig) *SimulationLog {
	return &SimulationLog{
		Config:     config,
		Orders:     make([]OrderRecord, 0),
		Snapshots:  make([]InventorySnapshot, 0),
		Production: make([]ProductionRecord, 0),
		Flows:      make([]FlowRecord, 0),
		Trips:      make([]TripRecord, 0),
	}
}

// RecordOrder appends an order record and returns its position, which
// MarkDelivered uses later. Returns -1 when order logging is off.
func (sl *SimulationLog) RecordOrder(record OrderRecord) int {
	if !sl.Config.Orders {
		return -1
	}
	sl.Orders = append(sl.Orders, record)
	return len(sl.Orders) - 1
}

// MarkDelivered completes the order record at pos.
func (sl *SimulationLog) MarkDelivered(pos, day, wait int, onTime bool) {
	if pos < 0 || pos >= len(sl.Orders) {
		return
	}
	o := &sl.Orders[pos]
	o.Delivered = true
	o.DeliveryDay = day
	o.WaitDays = wait
	o.OnTime = onTime
}

// RecordSnapshot appends an inventory snapshot if snapshots are enabled.
func (sl *SimulationLog) RecordSnapshot(record InventorySnapshot) {
	if sl.Config.Snapshots {
		sl.Snapshots = append(sl.Snapshots, record)
	}
}

// RecordProduction appends a production record if details are enabled.
func (sl *SimulationLog) RecordProduction(record ProductionRecord) {
	if sl.Config.Details {
		sl.Production = append(sl.Production, record)
	}
}

// RecordFlow appends a product-flow record if details are enabled.
func (sl *SimulationLog) RecordFlow(record FlowRecord) {
	if sl.Config.Details {
		sl.Flows = append(sl.Flows, record)
	}
}

// RecordTrip appends a trip record if details are enabled.
func (sl *SimulationLog) RecordTrip(record TripRecord) {
	if sl.Config.Details {
		sl.Trips = append(sl.Trips, record)
	}
}
