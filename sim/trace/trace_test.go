package trace

import (
	"testing"
)

func TestSimulationLog_RecordOrder_AppendsRecord(t *testing.T) {
	// GIVEN a log with order logging on
	sl := NewSimulationLog(LogConfig{Orders: true})

	// WHEN an order is recorded and later delivered
	pos := sl.RecordOrder(OrderRecord{OrderID: 1, Customer: "C1", Product: "Widget", OrderDay: 3, Quantity: 40})
	sl.MarkDelivered(pos, 5, 2, true)

	// THEN the log holds one completed record
	if len(sl.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(sl.Orders))
	}
	o := sl.Orders[0]
	if !o.Delivered || o.DeliveryDay != 5 || o.WaitDays != 2 || !o.OnTime {
		t.Errorf("unexpected delivered record: %+v", o)
	}
}

func TestSimulationLog_DisabledKindsAreDropped(t *testing.T) {
	// GIVEN a log with only snapshots enabled
	sl := NewSimulationLog(LogConfig{Snapshots: true})

	// WHEN every record kind is offered
	pos := sl.RecordOrder(OrderRecord{OrderID: 1})
	sl.MarkDelivered(pos, 1, 1, true)
	sl.RecordSnapshot(InventorySnapshot{Day: 0, Facility: "DC1", Product: "Widget", OnHand: 10})
	sl.RecordProduction(ProductionRecord{Day: 0})
	sl.RecordFlow(FlowRecord{ShipmentID: 1})
	sl.RecordTrip(TripRecord{Trips: 2})

	// THEN only the snapshot is kept
	if pos != -1 {
		t.Errorf("expected -1 position for disabled order log, got %d", pos)
	}
	if len(sl.Orders) != 0 || len(sl.Production) != 0 || len(sl.Flows) != 0 || len(sl.Trips) != 0 {
		t.Error("disabled record kinds were recorded")
	}
	if len(sl.Snapshots) != 1 {
		t.Errorf("expected 1 snapshot, got %d", len(sl.Snapshots))
	}
}

func TestSimulationLog_MultipleRecords_PreservesOrder(t *testing.T) {
	sl := NewSimulationLog(LogConfig{Orders: true, Details: true})
	sl.RecordOrder(OrderRecord{OrderID: 1, OrderDay: 0})
	sl.RecordOrder(OrderRecord{OrderID: 2, OrderDay: 4})
	sl.RecordFlow(FlowRecord{ShipmentID: 7, Day: 2})

	if sl.Orders[0].OrderID != 1 || sl.Orders[1].OrderID != 2 {
		t.Error("order log order not preserved")
	}
	if len(sl.Flows) != 1 || sl.Flows[0].ShipmentID != 7 {
		t.Error("flow record mismatch")
	}
}

func TestSimulationLog_MarkDelivered_OutOfRangeIgnored(t *testing.T) {
	sl := NewSimulationLog(LogConfig{Orders: true})
	sl.MarkDelivered(3, 1, 1, true)
	sl.MarkDelivered(-1, 1, 1, true)
	if len(sl.Orders) != 0 {
		t.Error("MarkDelivered must not create records")
	}
}

func TestLogConfig_Enabled(t *testing.T) {
	if (LogConfig{}).Enabled() {
		t.Error("zero LogConfig should be disabled")
	}
	if !(LogConfig{Details: true}).Enabled() {
		t.Error("details-only LogConfig should be enabled")
	}
}

func TestIsValidLogLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"full", true},
		{"", true}, // empty defaults to none
		{"orders", false},
		{"FULL", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidLogLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidLogLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
